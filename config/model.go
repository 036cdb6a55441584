package config

// Model identifies the emulated machine variant.
type Model int

const (
	A500 Model = iota
	A1000
	A2000
)

func (m Model) String() string {
	switch m {
	case A500:
		return "A500"
	case A1000:
		return "A1000"
	case A2000:
		return "A2000"
	default:
		return "unknown model"
	}
}

// Revision distinguishes the OCS chipset from the ECS revision toggle
// mentioned in spec.md §1 ("revision bit toggle"). Only OCS behaviour is
// modelled in depth; ECS flips a handful of named gates (see
// original_source/Amiga supplemented features in SPEC_FULL.md).
type Revision int

const (
	OCS Revision = iota
	ECS
)

// ChipRAMSize enumerates the supported Chip RAM sizes, in bytes.
type ChipRAMSize int

const (
	ChipRAM256K ChipRAMSize = 256 * 1024
	ChipRAM512K ChipRAMSize = 512 * 1024
)

// SlowRAMSize enumerates the supported Slow (Trapdoor) RAM sizes, in bytes.
type SlowRAMSize int

const (
	SlowRAM0   SlowRAMSize = 0
	SlowRAM256 SlowRAMSize = 256 * 1024
	SlowRAM512 SlowRAMSize = 512 * 1024
)

// FastRAMSize is a byte count in the range [0, 8MiB] in 64KiB steps.
type FastRAMSize int

const (
	fastRAMStep = 64 * 1024
	fastRAMMax  = 8 * 1024 * 1024
)

// Valid reports whether the fast RAM size is zero or a positive multiple of
// 64KiB up to 8MiB.
func (f FastRAMSize) Valid() bool {
	return f == 0 || (f > 0 && int(f) <= fastRAMMax && int(f)%fastRAMStep == 0)
}

// CPUSpeed enumerates the supported CPU clock multipliers.
type CPUSpeed int

const (
	CPUSpeed1x CPUSpeed = 1
	CPUSpeed2x CPUSpeed = 2
	CPUSpeed4x CPUSpeed = 4
)

// BlitterAccuracy selects between the cycle-accurate micro-programmed
// Blitter and the fast synchronous-completion path (spec.md §4.f).
type BlitterAccuracy int

const (
	BlitterAccurate BlitterAccuracy = iota
	BlitterFast
)

// DriveType enumerates the floppy drive types a drive slot can be
// configured with.
type DriveType int

const (
	Drive3_5DD DriveType = iota
	Drive3_5HD
	DriveNone
)

// DriveConfig describes one of the four floppy drive slots.
type DriveConfig struct {
	Connected bool
	Type      DriveType
}

// ExtROMBase enumerates the two base addresses at which an extended ROM may
// be mapped.
type ExtROMBase int

const (
	ExtROMBaseE0 ExtROMBase = 0xE0
	ExtROMBaseF0 ExtROMBase = 0xF0
)

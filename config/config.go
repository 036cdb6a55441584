package config

import "github.com/agnusemu/amiga500/errors"

// Config is the enumerated host configuration of spec.md §6. It is
// validated as a whole by Validate, which is the sole source of
// ConfigurationInvalid errors. Fields here can only be changed across a
// power cycle; settings that may change while running live in the Bool/Int
// cells on Live instead.
type Config struct {
	Model      Model
	Revision   Revision
	ChipRAM    ChipRAMSize
	SlowRAM    SlowRAMSize
	FastRAM    FastRAMSize
	RTCPresent bool

	Drives [4]DriveConfig

	KickstartROM []byte // 64KiB or 512KiB
	ExtendedROM  []byte // 0 or 256KiB
	ExtROMBase   ExtROMBase
	BootROM      []byte // A1000 boot ROM, 8KiB or 64KiB; enables WOM shadow

	CPUSpeed CPUSpeed
}

// Live holds the settings a host may change while the machine is running.
type Live struct {
	Warp            *Bool
	BlitterAccuracy *Bool // true == BlitterFast
	DiskFIFO        *Bool
	Sprites         *Bool
	Collisions      *Bool
}

// NewLive returns a Live settings block with the documented defaults:
// accurate blitter, warp off, FIFO on, sprites and collisions enabled.
func NewLive() *Live {
	return &Live{
		Warp:            NewBool(false),
		BlitterAccuracy: NewBool(false),
		DiskFIFO:        NewBool(true),
		Sprites:         NewBool(true),
		Collisions:      NewBool(true),
	}
}

// Default returns a minimal valid configuration: an A500 with 512KiB Chip
// RAM and no expansion RAM. The caller must still supply KickstartROM.
func Default() Config {
	return Config{
		Model:    A500,
		Revision: OCS,
		ChipRAM:  ChipRAM512K,
		SlowRAM:  SlowRAM0,
		FastRAM:  0,
		CPUSpeed: CPUSpeed1x,
	}
}

// Validate checks the configuration for internal consistency, returning a
// ConfigurationInvalid error describing the first problem found. It does
// not check for ROM presence -- that is RomMissing, raised at power-on, not
// at configure-time, per spec.md §7.
func (c Config) Validate() error {
	switch c.Model {
	case A500, A1000, A2000:
	default:
		return errors.New(errors.ConfigurationInvalid, "unknown model")
	}

	switch c.ChipRAM {
	case ChipRAM256K, ChipRAM512K:
	default:
		return errors.New(errors.ConfigurationInvalid, "unsupported chip RAM size")
	}

	switch c.SlowRAM {
	case SlowRAM0, SlowRAM256, SlowRAM512:
	default:
		return errors.New(errors.ConfigurationInvalid, "unsupported slow RAM size")
	}

	if !c.FastRAM.Valid() {
		return errors.New(errors.ConfigurationInvalid, "fast RAM size must be a multiple of 64KiB up to 8MiB")
	}

	switch c.CPUSpeed {
	case CPUSpeed1x, CPUSpeed2x, CPUSpeed4x:
	default:
		return errors.New(errors.ConfigurationInvalid, "unsupported CPU speed")
	}

	if len(c.KickstartROM) != 0 && len(c.KickstartROM) != 64*1024 && len(c.KickstartROM) != 512*1024 {
		return errors.New(errors.ConfigurationInvalid, "kickstart ROM must be 64KiB or 512KiB")
	}

	if len(c.ExtendedROM) != 0 && len(c.ExtendedROM) != 256*1024 {
		return errors.New(errors.ConfigurationInvalid, "extended ROM must be 256KiB")
	}

	if len(c.ExtendedROM) != 0 && c.ExtROMBase != ExtROMBaseE0 && c.ExtROMBase != ExtROMBaseF0 {
		return errors.New(errors.ConfigurationInvalid, "extended ROM base must be $E0 or $F0")
	}

	if len(c.BootROM) != 0 && len(c.BootROM) != 8*1024 && len(c.BootROM) != 64*1024 {
		return errors.New(errors.ConfigurationInvalid, "A1000 boot ROM must be 8KiB or 64KiB")
	}

	return nil
}

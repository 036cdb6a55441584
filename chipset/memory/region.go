// Package memory implements the 24-bit address decoder and the custom
// register file of spec.md §4.a: read8/16/32 and write8/16/32 (plus
// non-side-effecting spy variants), dispatched by a 256-entry region table
// indexed by the top 8 bits of the address, grounded on the teacher's
// hardware/memory/memorymap package (an Area enum plus an origin/memtop
// table) and hardware/memory/bus (the CPUBus/ChipBus/DebuggerBus interface
// split).
package memory

// Area identifies which memory region an address decodes to (spec.md §3).
type Area int

const (
	Unmapped Area = iota
	Chip
	Fast
	Slow
	KickstartROM
	WritableOnceROM
	ExtendedROM
	CIA
	RTC
	Custom
	Autoconfig
)

func (a Area) String() string {
	switch a {
	case Unmapped:
		return "unmapped"
	case Chip:
		return "chip"
	case Fast:
		return "fast"
	case Slow:
		return "slow"
	case KickstartROM:
		return "kickstart-rom"
	case WritableOnceROM:
		return "wom"
	case ExtendedROM:
		return "extended-rom"
	case CIA:
		return "cia"
	case RTC:
		return "rtc"
	case Custom:
		return "custom"
	case Autoconfig:
		return "autoconfig"
	default:
		return "?"
	}
}

// region is one 64KiB page's worth of decode metadata plus a reference to
// its backing store. sizeMask limits addresses to the store's actual size,
// producing the mirroring real hardware exhibits when a region is smaller
// than the address range that maps to it.
type region struct {
	area     Area
	store    []byte // backing bytes for RAM/ROM areas; nil for CIA/RTC/Custom/Autoconfig/Unmapped
	sizeMask uint32
}

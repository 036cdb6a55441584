package memory

import "github.com/agnusemu/amiga500/config"

// Page addresses, expressed as the top 8 bits of a 24-bit address (i.e. the
// index into the 256-entry region table). Chosen to match the real Amiga
// memory map closely enough to exercise every region named in spec.md §3;
// exact byte-for-byte fidelity with a real A500 memory map is not a
// documented invariant.
const (
	pageChipTop      = 0x1F // Chip RAM aperture: pages 0x00-0x1F (2MiB), mirrored
	pageSlowBase     = 0xC0 // Slow (trapdoor) RAM: pages 0xC0-0xC7 (512KiB)
	pageFastBase     = 0x20 // Fast RAM: pages 0x20 upward
	pageCIABase      = 0xA0
	pageCIATop       = 0xBF
	pageRTC          = 0xDC
	pageCustomBase   = 0xDF
	pageAutoconfig   = 0xE8
	pageExtROMLoE0   = 0xE0
	pageExtROMLoF0   = 0xF0
	pageExtROMSpan   = 0x04 // 256KiB / 64KiB
	pageKickstartLo  = 0xF8 // 512KiB kickstart
	pageKickstart256 = 0xFC // 256KiB kickstart
	pageTop          = 0xFF
)

// CIAPortA is the narrow contract memory needs from the external CIA
// collaborator (spec.md §1: CIA is out of scope, only its I/O contract is
// consumed here): bit 0 of port A drives the overlay line.
type CIAPortA interface {
	// ReadPortA returns the current value of CIA-A port A.
	ReadPortA() uint8
}

// Decoder owns the 256-entry region table and the backing RAM/ROM stores.
// It is rebuilt whenever ROM is loaded, RAM is (re)allocated, the WOM is
// locked/unlocked, or the overlay line changes, per spec.md §3.
type Decoder struct {
	table [256]region

	chipRAM []byte
	slowRAM []byte
	fastRAM []byte

	kickstart []byte
	extROM    []byte
	extBase   config.ExtROMBase
	bootROM   []byte // A1000 boot ROM
	wom       []byte // writable-once RAM shadow, present only if bootROM != nil
	womLocked bool

	overlay bool // OVL line state; true maps ROM into low memory
	cia     CIAPortA
}

// NewDecoder builds a Decoder from a validated Config. Callers must call
// SetCIA before the first CPU access that touches page 0 with overlay
// active from a fresh CIA read, though a nil CIA is tolerated (overlay
// simply cannot be re-driven from CIA writes until one is attached).
func NewDecoder(cfg config.Config) *Decoder {
	d := &Decoder{
		chipRAM:   make([]byte, cfg.ChipRAM),
		slowRAM:   make([]byte, cfg.SlowRAM),
		fastRAM:   make([]byte, cfg.FastRAM),
		kickstart: cfg.KickstartROM,
		extROM:    cfg.ExtendedROM,
		extBase:   cfg.ExtROMBase,
		bootROM:   cfg.BootROM,
		overlay:   true, // power-on default: ROM visible at $0 until CIA-A drives OVL low
	}
	if d.bootROM != nil {
		d.wom = make([]byte, 256*1024)
	}
	d.rebuild()
	return d
}

// SetCIA attaches the CIA-A port A collaborator so future overlay changes
// driven by CIA writes can be observed. Memory does not poll the CIA; the
// host or CIA collaborator calls SetOverlay directly when port A changes.
func (d *Decoder) SetCIA(cia CIAPortA) {
	d.cia = cia
}

// SetOverlay updates the OVL line and rebuilds the region table if the
// value changed. Per spec.md §8.7, toggling OVL low->high->low must leave
// all memory contents and the resulting region table identical to before
// the toggle -- true here because rebuild only changes which region table
// entries point at ROM vs Chip RAM; it never touches the underlying bytes.
func (d *Decoder) SetOverlay(high bool) {
	if d.overlay == high {
		return
	}
	d.overlay = high
	d.rebuild()
}

// LockWOM marks the writable-once RAM shadow read-only, mimicking the A1000
// boot ROM's write-once latch, and rebuilds the table.
func (d *Decoder) LockWOM() {
	if d.womLocked {
		return
	}
	d.womLocked = true
	d.rebuild()
}

// LoadKickstart replaces the Kickstart ROM image and rebuilds the table.
func (d *Decoder) LoadKickstart(image []byte) {
	d.kickstart = image
	d.rebuild()
}

func (d *Decoder) rebuild() {
	for i := range d.table {
		d.table[i] = region{area: Unmapped}
	}

	// Chip RAM, mirrored across its 2MiB aperture.
	if len(d.chipRAM) > 0 {
		mask := sizeMask(len(d.chipRAM))
		for p := 0; p <= pageChipTop; p++ {
			d.table[p] = region{area: Chip, store: d.chipRAM, sizeMask: mask}
		}
	}

	// Slow (trapdoor) RAM.
	if len(d.slowRAM) > 0 {
		mask := sizeMask(len(d.slowRAM))
		pages := len(d.slowRAM) / 0x10000
		for p := 0; p < pages; p++ {
			d.table[pageSlowBase+p] = region{area: Slow, store: d.slowRAM, sizeMask: mask}
		}
	}

	// Fast RAM.
	if len(d.fastRAM) > 0 {
		mask := sizeMask(len(d.fastRAM))
		pages := len(d.fastRAM) / 0x10000
		for p := 0; p < pages; p++ {
			d.table[pageFastBase+p] = region{area: Fast, store: d.fastRAM, sizeMask: mask}
		}
	}

	// CIA / RTC / Custom / Autoconfig I/O windows -- no backing store, side
	// effects dispatched elsewhere.
	for p := pageCIABase; p <= pageCIATop; p++ {
		d.table[p] = region{area: CIA}
	}
	d.table[pageRTC] = region{area: RTC}
	d.table[pageCustomBase] = region{area: Custom}
	d.table[pageAutoconfig] = region{area: Autoconfig}

	// Extended ROM.
	if len(d.extROM) > 0 {
		base := pageExtROMLoE0
		if d.extBase == config.ExtROMBaseF0 {
			base = pageExtROMLoF0
		}
		mask := sizeMask(len(d.extROM))
		for p := 0; p < pageExtROMSpan; p++ {
			d.table[base+p] = region{area: ExtendedROM, store: d.extROM, sizeMask: mask}
		}
	}

	// Kickstart ROM (or its WOM shadow while unlocked).
	if len(d.kickstart) > 0 {
		start := pageKickstartLo
		if len(d.kickstart) <= 256*1024 {
			start = pageKickstart256
		}
		mask := sizeMask(len(d.kickstart))
		for p := start; p <= pageTop; p++ {
			d.table[p] = region{area: KickstartROM, store: d.kickstart, sizeMask: mask}
		}
	}

	if d.wom != nil && !d.womLocked {
		mask := sizeMask(len(d.wom))
		for p := pageKickstart256; p <= pageTop; p++ {
			d.table[p] = region{area: WritableOnceROM, store: d.wom, sizeMask: mask}
		}
	}

	// Overlay: ROM visible at page 0 upward, for the length of the ROM
	// image, so reset vectors fetch from ROM regardless of Chip RAM size.
	if d.overlay && len(d.kickstart) > 0 {
		mask := sizeMask(len(d.kickstart))
		pages := len(d.kickstart) / 0x10000
		if pages < 1 {
			pages = 1
		}
		for p := 0; p < pages; p++ {
			d.table[p] = region{area: KickstartROM, store: d.kickstart, sizeMask: mask}
		}
	}
}

func sizeMask(size int) uint32 {
	if size <= 0 {
		return 0
	}
	return uint32(size - 1)
}

// regionAt returns the decode for a 24-bit address.
func (d *Decoder) regionAt(addr uint32) region {
	return d.table[(addr>>16)&0xFF]
}

// AreaAt reports the Area a given address decodes to, for diagnostics.
func (d *Decoder) AreaAt(addr uint32) Area {
	return d.regionAt(addr).area
}

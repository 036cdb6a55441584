package chipset

import "github.com/agnusemu/amiga500/chipset/denise"

// spriteDMA is the agnus.SlotSource that fetches a sprite's DATA/DATB pair
// on every line within its vertical span, per spec.md §4.g. POS/CTL are
// not fetched by DMA: the span comes from CPU or Copper writes to the
// SPRxPOS/SPRxCTL registers. Real hardware interleaves all eight sprites'
// fetches across fixed colour-clock slots near the end of each line; this
// core instead gives each sprite its own fixed slot position (sprite n at
// colour clock n*2 within the sprite DMA window), which is a documented
// simplification of the real fetch-slot table.
type spriteDMA struct {
	mem     bitplaneMemory
	sprites *[4]denise.SpritePair
	beam    Beam

	slotBase int // first colour clock of the sprite DMA window

	pointers [8]uint32
	fetchedThisLine [8]bool
	lastLine        int
}

func newSpriteDMA(mem bitplaneMemory, sprites *[4]denise.SpritePair, beam Beam, slotBase int) *spriteDMA {
	return &spriteDMA{mem: mem, sprites: sprites, beam: beam, slotBase: slotBase, lastLine: -1}
}

func (d *spriteDMA) SetPointerHigh(n int, hi uint16) { d.pointers[n] = (d.pointers[n] &^ 0xFFFF0000) | uint32(hi)<<16 }
func (d *spriteDMA) SetPointerLow(n int, lo uint16)  { d.pointers[n] = (d.pointers[n] &^ 0xFFFF) | uint32(lo) }

func (d *spriteDMA) sprite(n int) *denise.Sprite {
	pair := &d.sprites[n/2]
	if n%2 == 0 {
		return &pair.Lo
	}
	return &pair.Hi
}

func (d *spriteDMA) WantsSlot(v, h int) bool {
	if v != d.lastLine {
		d.fetchedThisLine = [8]bool{}
		d.lastLine = v
	}
	for n := 0; n < 8; n++ {
		if h == d.slotBase+n*2 && !d.fetchedThisLine[n] {
			return true
		}
	}
	return false
}

func (d *spriteDMA) RunSlot() {
	v, h := d.beam.V(), d.beam.H()
	for n := 0; n < 8; n++ {
		if h != d.slotBase+n*2 || d.fetchedThisLine[n] {
			continue
		}
		d.fetchedThisLine[n] = true
		sp := d.sprite(n)
		inSpan := v >= sp.VStart && v < sp.VStop
		if !inSpan {
			sp.Disarm()
			return
		}
		a := d.mem.ReadWord(d.pointers[n])
		b := d.mem.ReadWord(d.pointers[n] + 2)
		d.pointers[n] += 4
		sp.SetData(a, b)
		return
	}
}

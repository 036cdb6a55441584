package denise

import (
	"github.com/agnusemu/amiga500/display"
)

// Denise is the pixel-pipeline container of spec.md §4.g: bitplane
// shifters, playfield translation, sprite pairs, collision detection and
// colourisation, wired into one struct the way hardware/vcs.go wires the
// teacher's TIA alongside its own video sub-packages.
type Denise struct {
	Bitplanes *Bitplanes
	Playfield *Playfield
	Palette   Palette
	Collision Collision
	Sprites   [4]SpritePair

	Log RegisterLog

	buffers *display.Buffers
	line    int
}

// New returns a Denise sized for the given display geometry.
func New(spec display.Spec, buffers *display.Buffers) *Denise {
	width := spec.HTotal * 2 // hires-worst-case pixel count per line
	d := &Denise{
		Bitplanes: NewBitplanes(width),
		Playfield: NewPlayfield(width),
		buffers:   buffers,
	}
	return d
}

// BeginLine resets all per-line accumulators. The orchestrator calls this
// when the beam wraps to a new line.
func (d *Denise) BeginLine(line int) {
	d.line = line
	d.Bitplanes.ResetLine()
	d.Playfield.ResetLine()
	d.Log.Reset()
}

// Tick runs one colour clock's worth of bitplane shifting inside the DIW,
// appending to the line's bBuffer. It does not touch the sprites: EndLine
// composites them pixel by pixel when it colourises the line.
func (d *Denise) Tick(inDIW bool) {
	if inDIW {
		d.Bitplanes.Tick()
	}
}

// RecordChange appends a mid-line register change to the replay log, at
// the given pixel trigger coordinate.
func (d *Denise) RecordChange(trigger int, apply func()) {
	d.Log.Record(trigger, apply)
}

// EndLine replays the register-change log, translating and colourising the
// whole line into the working frame buffer's row `d.line`, per spec.md
// §4.g.
func (d *Denise) EndLine(isShortField bool) {
	bBuffer := d.Bitplanes.Buffer()

	d.Log.Replay(len(bBuffer), func(from, to int) {
		d.Playfield.Translate(bBuffer, from, to)
	})

	frame := d.buffers.Working(isShortField)
	if d.line >= frame.Height {
		return
	}

	iBuffer := d.Playfield.IBuffer()
	zBuffer := d.Playfield.ZBuffer()
	var prevR, prevG, prevB uint8
	for x := range iBuffer {
		if x >= frame.Width {
			break
		}

		idx, z := iBuffer[x], zBuffer[x]

		for pair := range d.Sprites {
			value, opaque := d.Sprites[pair].Composite()
			if !opaque {
				continue
			}
			spriteZ := spritePairZ(pair)
			if spriteZ < z {
				idx = 16 + value // sprites address the upper 16 colour registers
				z = spriteZ
			}
			if z == ZPF1 || z == ZPF2 || z == ZDPF {
				d.Collision.NoteSpritePlayfield(pair)
			}
		}

		r, g, b, a := d.Palette.Resolve(idx, prevR, prevG, prevB)
		prevR, prevG, prevB = r, g, b
		frame.SetRGBA(x, d.line, r, g, b, a)
	}
}

// spritePairZ maps a sprite pair index (0-3, covering sprites 0+1, 2+3,
// 4+5, 6+7) to its Z-buffer priority. Lower-numbered pairs take precedence,
// matching real hardware's fixed sprite priority order.
func spritePairZ(pair int) uint8 {
	switch pair {
	case 0:
		return ZSP0
	case 1:
		return ZSP2
	case 2:
		return ZSP4
	default:
		return ZSP6
	}
}

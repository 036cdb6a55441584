package agnus

import "github.com/agnusemu/amiga500/display"

// Beam tracks the raster position and the Display Window / Data Fetch
// flip-flops of spec.md §4.d. H counts colour clocks across a line; V
// counts lines across a frame. Both wrap according to the active display
// Spec (PAL or NTSC).
type Beam struct {
	spec display.Spec

	h int
	v int

	diwH    bool
	diwV    bool
	diwHOn  int
	diwHOff int
	diwVOn  int
	diwVOff int

	ddfH    bool
	ddfStrt int
	ddfStop int
	hires   bool

	onLineChange  func()
	onFrameChange func()
}

// NewBeam returns a Beam parked at the top-left of spec.
func NewBeam(spec display.Spec) *Beam {
	return &Beam{spec: spec}
}

// SetDIW sets the Display Window flip-flop trigger points, decoded from
// DIWSTRT/DIWSTOP.
func (b *Beam) SetDIW(hStart, hStop, vStart, vStop int) {
	b.diwHOn, b.diwHOff = hStart, hStop
	b.diwVOn, b.diwVOff = vStart, vStop
}

// SetDDF sets the bitplane DMA fetch window, rounding per spec.md §4.d:
// lores windows align to a multiple of 8 colour clocks, hires to a multiple
// of 4.
func (b *Beam) SetDDF(start, stop int, hires bool) {
	b.hires = hires
	step := 8
	if hires {
		step = 4
	}
	b.ddfStrt = roundDown(start, step)
	b.ddfStop = roundUp(stop, step)
}

func roundDown(v, step int) int { return (v / step) * step }
func roundUp(v, step int) int {
	if v%step == 0 {
		return v
	}
	return (v/step + 1) * step
}

// OnLineChange registers a callback fired whenever H wraps to a new line.
func (b *Beam) OnLineChange(f func()) { b.onLineChange = f }

// OnFrameChange registers a callback fired whenever V wraps to a new frame.
func (b *Beam) OnFrameChange(f func()) { b.onFrameChange = f }

// H returns the current horizontal colour clock, in [0, HTotal).
func (b *Beam) H() int { return b.h }

// V returns the current line, in [0, VTotal).
func (b *Beam) V() int { return b.v }

// InDIW reports whether the beam is currently inside both the horizontal
// and vertical Display Window.
func (b *Beam) InDIW() bool { return b.diwH && b.diwV }

// InDDF reports whether the beam is within the bitplane data-fetch window.
func (b *Beam) InDDF() bool { return b.ddfH }

// Advance moves the beam forward one colour clock, updating the DIW/DDF
// flip-flops and firing line/frame-change callbacks at wrap points.
func (b *Beam) Advance() {
	if b.h == b.diwHOn {
		b.diwH = true
	}
	if b.h == b.diwHOff {
		b.diwH = false
	}
	if b.h == b.ddfStrt {
		b.ddfH = true
	}
	if b.h == b.ddfStop {
		b.ddfH = false
	}

	b.h++
	if b.h >= b.spec.HTotal {
		b.h = 0
		b.ddfH = false

		if b.v == b.diwVOn {
			b.diwV = true
		}
		if b.v == b.diwVOff {
			b.diwV = false
		}

		if b.onLineChange != nil {
			b.onLineChange()
		}

		b.v++
		if b.v >= b.spec.VTotal {
			b.v = 0
			if b.onFrameChange != nil {
				b.onFrameChange()
			}
		}
	}
}

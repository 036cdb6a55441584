// Package display holds the frame buffers the pixel pipeline writes into
// and the beam geometry constants that describe them, generalising the
// teacher's television package (a Specification struct plus a
// PixelRenderer/Television split) to the PAL/NTSC geometry of spec.md §3.
package display

// Spec describes the beam geometry of a video standard.
type Spec struct {
	ID string

	// HTotal is the number of horizontal positions per scanline (h in
	// [0, HTotal)), each one color clock.
	HTotal int

	// VTotal is the number of scanlines per frame (v in [0, VTotal)).
	VTotal int

	// LongFrameWidth/Height are the working image dimensions for a long
	// (or progressive) frame.
	LongFrameWidth  int
	LongFrameHeight int
}

// PAL is the 227-horizontal-position, 312-line specification named in
// spec.md §3.
var PAL = Spec{
	ID:              "PAL",
	HTotal:          227,
	VTotal:          312,
	LongFrameWidth:  1024,
	LongFrameHeight: 313,
}

// NTSC is the 227-horizontal-position, 262-line specification.
var NTSC = Spec{
	ID:              "NTSC",
	HTotal:          227,
	VTotal:          262,
	LongFrameWidth:  1024,
	LongFrameHeight: 263,
}

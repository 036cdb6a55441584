package denise

// ColorMode selects how iBuffer indices are resolved into RGBA, spec.md
// §4.g.
type ColorMode int

const (
	ColorNormal ColorMode = iota
	ColorHalfbright
	ColorHAM
)

// Palette holds the 32-entry colour table (12-bit RGB packed into the low
// 12 bits of each uint16, per OCS/ECS hardware convention: 4 bits per
// channel) plus the colourisation mode.
type Palette struct {
	entries [32]uint16
	mode    ColorMode
}

// SetColor applies a COLORxx write (n in [0,31]).
func (p *Palette) SetColor(n int, value uint16) {
	if n < 0 || n >= 32 {
		return
	}
	p.entries[n] = value & 0x0FFF
}

// SetMode selects normal, halfbright or HAM colourisation.
func (p *Palette) SetMode(m ColorMode) { p.mode = m }

func expand4(c uint8) uint8 {
	return c<<4 | c
}

func unpackRGB12(v uint16) (r, g, b uint8) {
	r = expand4(uint8((v >> 8) & 0xF))
	g = expand4(uint8((v >> 4) & 0xF))
	b = expand4(uint8(v & 0xF))
	return
}

// Resolve converts one iBuffer index into RGBA for the working frame
// buffer. prevR/prevG/prevB feed HAM's "replace one channel of the
// previous pixel" rule and are ignored outside HAM mode.
func (p *Palette) Resolve(index uint8, prevR, prevG, prevB uint8) (r, g, b, a uint8) {
	switch p.mode {
	case ColorHalfbright:
		if index&0x20 != 0 {
			rr, gg, bb := unpackRGB12(p.entries[index&0x1F])
			return rr / 2, gg / 2, bb / 2, 0xFF
		}
		rr, gg, bb := unpackRGB12(p.entries[index&0x1F])
		return rr, gg, bb, 0xFF

	case ColorHAM:
		// Bits 5-4 select which channel to hold-and-modify; bits 3-0 supply
		// the new 4-bit value, per spec.md §4.g / the HAM glossary entry.
		selector := (index >> 4) & 0x3
		value := expand4(index & 0xF)
		switch selector {
		case 0: // direct colour register lookup, like normal mode
			rr, gg, bb := unpackRGB12(p.entries[index&0x1F])
			return rr, gg, bb, 0xFF
		case 1: // modify blue
			return prevR, prevG, value, 0xFF
		case 2: // modify red
			return value, prevG, prevB, 0xFF
		case 3: // modify green
			return prevR, value, prevB, 0xFF
		}
	}

	rr, gg, bb := unpackRGB12(p.entries[index&0x1F])
	return rr, gg, bb, 0xFF
}

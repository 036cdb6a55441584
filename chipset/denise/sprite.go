package denise

// Sprite holds one hardware sprite's register-file state, spec.md §3
// ("Sprite state"): position/control, two data shift registers, armed and
// attach bits.
type Sprite struct {
	HStart, VStart, VStop int
	Attached              bool
	Armed                 bool

	ssra, ssrb uint16 // shifting-out pattern for data channels A/B
}

// SetData latches freshly DMA-fetched DATA/DATB words and arms the
// sprite. Writing DATA arms it (spec.md §3); writing CTL (SetControl)
// disarms it.
func (s *Sprite) SetData(a, b uint16) {
	s.ssra, s.ssrb = a, b
	s.Armed = true
}

// Disarm clears the armed bit, as a CTL write does.
func (s *Sprite) Disarm() { s.Armed = false }

// shiftOut advances both data shift registers by one pixel and returns the
// resulting 2-bit colour value (bit1 from data-B, bit0 from data-A).
func (s *Sprite) shiftOut() uint8 {
	a := uint8((s.ssra >> 15) & 1)
	b := uint8((s.ssrb >> 15) & 1)
	s.ssra <<= 1
	s.ssrb <<= 1
	return b<<1 | a
}

// SpritePair composes two adjacent sprites (0+1, 2+3, 4+5, 6+7), per
// spec.md §4.g: iterating across the line combining data-A/data-B into
// 2-bit colour values, or in attached mode forming one 4-bit value.
type SpritePair struct {
	Lo, Hi Sprite
}

// Composite returns the colour value (2-bit normally, 4-bit if Hi.Attached)
// and whether this pair is opaque (non-zero) at the current pixel. Both
// sprites in the pair always shift together, so Composite should be called
// exactly once per pixel regardless of which half is opaque.
func (p *SpritePair) Composite() (value uint8, opaque bool) {
	lo := p.Lo.shiftOut()
	hi := p.Hi.shiftOut()

	if p.Hi.Attached {
		v := hi<<2 | lo
		return v, v != 0
	}

	if lo != 0 {
		return lo, true
	}
	return hi, hi != 0
}

// Package blitter implements the micro-programmed block-transfer engine of
// spec.md §4.f: a copy mode with a 16-entry shape table and a Bresenham
// line mode, grounded on original_source/Amiga/Computer/Agnus/SlowBlitter.cpp
// (the two-level accurate/fast micro-program idiom) and restructured around
// the teacher's hardware/tia/delay event-and-tick style for per-slot
// stepping.
package blitter

// Control holds a decoded BLTCON0/BLTCON1, spec.md §4.f.
type Control struct {
	// BLTCON0 fields.
	ASH       uint8 // bits 15-12: A shift amount
	UseA      bool
	UseB      bool
	UseC      bool
	UseD      bool
	Minterm   uint8 // bits 7-0: LF minterm select

	// BLTCON1 fields.
	BSH        uint8 // bits 15-12: B shift amount
	Descending bool  // DESC
	FillCarry  bool  // FCI: initial fill carry-in
	FillExclusive bool // FILL vs FILL_XOR selection (EFE/IFE)
	FillEnable bool
	Line       bool // LINE: line mode
	Octant     uint8 // SIGN/SUD/SUL/AUL bits for line mode, bits 4-2
	OneDot     bool  // line mode: draw only a single dot per row (SING)
}

// legaliseControl coerces an illegal raw BLTCON0/BLTCON1 pair into the
// nearest value real hardware would settle on, per Supplemented Feature #1:
// line mode and descending mode are mutually exclusive (line mode wins,
// descending is cleared). That is its only coercion; BLTCON0 passes through
// unchanged.
func legaliseControl(con0, con1 uint16) (con0Out, con1Out uint16) {
	con0Out = con0
	con1Out = con1

	if con1&lineBit != 0 && con1&descBit != 0 {
		con1Out &^= descBit
	}

	return con0Out, con1Out
}

const (
	con0ASHShift = 12
	con0UseA     = 1 << 11
	con0UseB     = 1 << 10
	con0UseC     = 1 << 9
	con0UseD     = 1 << 8
	con0MintermMask = 0xFF

	con1BSHShift = 12
	descBit      = 1 << 2
	fillCarryBit = 1 << 2 // shared encoding position with desc in line mode; see DecodeControl
	fillEnableBit = 1 << 3
	fillExclBit   = 1 << 4
	lineBit       = 1 << 0
	lineSingBit   = 1 << 1
	lineOctantShift = 2
	lineOctantMask  = 0x7
)

// DecodeControl builds a Control from raw BLTCON0/BLTCON1 values, after
// passing them through legaliseControl.
func DecodeControl(rawCon0, rawCon1 uint16) Control {
	con0, con1 := legaliseControl(rawCon0, rawCon1)

	c := Control{
		ASH:     uint8(con0 >> con0ASHShift),
		UseA:    con0&con0UseA != 0,
		UseB:    con0&con0UseB != 0,
		UseC:    con0&con0UseC != 0,
		UseD:    con0&con0UseD != 0,
		Minterm: uint8(con0 & con0MintermMask),
		BSH:     uint8(con1 >> con1BSHShift),
		Line:    con1&lineBit != 0,
	}

	if c.Line {
		c.OneDot = con1&lineSingBit != 0
		c.Octant = uint8((con1 >> lineOctantShift) & lineOctantMask)
	} else {
		c.Descending = con1&descBit != 0
		c.FillEnable = con1&fillEnableBit != 0
		c.FillExclusive = con1&fillExclBit != 0
		c.FillCarry = con1&fillCarryBit != 0
	}

	return c
}

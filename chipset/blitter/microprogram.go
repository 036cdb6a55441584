package blitter

// MicroOp is a bitmask of the actions spec.md §4.f says a micro-instruction
// ORs together. Multiple bits may be set on one instruction;
// Blitter.stepAccurate applies them in this order: FETCH_C, FETCH_A,
// FETCH_B, HOLD_A, HOLD_B, HOLD_D, WRITE_D, then REPEAT or BLTDONE. WRITE_D
// therefore comes after the fetches and writes the word HOLD_D produced on
// the same instruction. stepAccurate acquires no bus itself: Agnus has
// already granted the slot when it calls RunSlot.
type MicroOp uint16

const (
	opBusIdle MicroOp = 1 << iota // requires a free bus rather than ownership
	opFetchA
	opFetchB
	opFetchC
	opWriteD
	opHoldA
	opHoldB
	opHoldD
	opRepeat
	opDone
)

// needsBus reports whether op requires holding the Blitter's bus grant
// (FETCH*, WRITE_D) as opposed to merely needing the bus to be free
// (BUSIDLE) or needing nothing at all (the HOLD_*/REPEAT/DONE bookkeeping
// bits, which ride along on whichever slot acquired the bus).
func (op MicroOp) needsBus() bool {
	return op&(opFetchA|opFetchB|opFetchC|opWriteD) != 0
}

// shapeProgram is one entry of the 16-entry copy-blit micro-program table
// (spec.md §4.f, §1 item 2): loop is the per-word body, rewound by REPEAT
// (spec step 7) while columns/rows remain, and tail is the one-shot drain
// that runs once the final REPEAT falls through instead of rewinding bltpc
// to 0, ending on the instruction carrying BLTDONE.
type shapeProgram struct {
	loop []MicroOp
	tail []MicroOp
}

// shapeMask packs BLTCON0's four channel-enable bits into the 4-bit index
// (A<<3 | B<<2 | C<<1 | D) the shape table is indexed by, matching
// original_source/Amiga/Computer/Agnus/SlowBlitter.cpp's copyBlitInstr
// layout.
func shapeMask(c Control) int {
	m := 0
	if c.UseA {
		m |= 0x8
	}
	if c.UseB {
		m |= 0x4
	}
	if c.UseC {
		m |= 0x2
	}
	if c.UseD {
		m |= 0x1
	}
	return m
}

// shapeTable is the 16-entry "full execution, no fill" copy-blit
// micro-program table of spec.md §4.f / §1 item 2. Instruction counts per
// shape (the loop length K and the two-slot tail) are transcribed from
// original_source/Amiga/Computer/Agnus/SlowBlitter.cpp's initSlowBlitter
// (itself derived from HRM Table 6.2, with the source's own documented
// corrections applied -- notably shape 1, D-only, below, which the
// published HRM table under-counts).
//
// FETCH_x loads a channel's raw word; the matching HOLD_x, one instruction
// later in the same word's processing, barrel-shifts it into the channel's
// held register, per spec.md §4.f steps 3-5. C has no HOLD stage of its own
// -- it feeds the minterm directly off FETCH_C. HOLD_D always sits on the
// last instruction of the word, after every other HOLD that feeds it, so
// WRITE_D (sharing that instruction, or on its own right after) always
// writes the word it was just computed for rather than a stale one. The
// tail exists purely to round each shape's bus-slot count up to the real
// table's length -- spec.md §8.3's Blitter length law, K*W*H + tail -- and
// carries no channel traffic of its own; it is two idle slots ending in
// BLTDONE for every shape.
var shapeTable = [16]shapeProgram{
	// 0: no channels. -- -- | -- --
	0x0: {
		loop: []MicroOp{opBusIdle, opBusIdle | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// 1: D only. -- D0 | -- D1 | -- D2
	//
	// The published HRM table gives the naive one-slot "D0 D1 D2..."
	// sequence for this shape; spec.md §9 flags it as wrong. D has no
	// fetch stage to share a slot with the way every other channel does,
	// so it burns an extra idle slot per word instead.
	0x1: {
		loop: []MicroOp{opBusIdle, opWriteD | opHoldA | opHoldB | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// 2: C only. C0 -- | C1 -- | C2 --
	0x2: {
		loop: []MicroOp{opBusIdle, opFetchC | opHoldA | opHoldB | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// 3: C, D. -- C0 D0 | -- C1 D1 | -- C2 D2
	0x3: {
		loop: []MicroOp{opBusIdle, opFetchC | opHoldA | opHoldB, opWriteD | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// 4: B only. -- B0 -- | -- B1 -- | -- B2 --
	0x4: {
		loop: []MicroOp{opBusIdle, opFetchB | opHoldA, opHoldB | opBusIdle | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// 5: B, D. -- B0 D0 | -- B1 D1 | -- B2 D2
	0x5: {
		loop: []MicroOp{opBusIdle, opFetchB | opHoldA, opWriteD | opHoldB | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// 6: B, C. -- B0 C0 | -- B1 C1 | -- B2 C2
	0x6: {
		loop: []MicroOp{opBusIdle, opFetchB | opHoldA, opFetchC | opHoldB | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// 7: B, C, D. -- B0 C0 D0 | -- B1 C1 D1 | -- B2 C2 D2
	0x7: {
		loop: []MicroOp{opBusIdle, opFetchB | opHoldA, opFetchC | opHoldB, opWriteD | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// 8: A only. A0 -- | A1 -- | A2 --
	0x8: {
		loop: []MicroOp{opFetchA, opHoldA | opHoldB | opBusIdle | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// 9: A, D. A0 D0 | A1 D1 | A2 D2
	0x9: {
		loop: []MicroOp{opFetchA, opWriteD | opHoldA | opHoldB | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// A: A, C. A0 C0 | A1 C1 | A2 C2
	0xA: {
		loop: []MicroOp{opFetchA, opFetchC | opHoldA | opHoldB | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// B: A, C, D. A0 C0 D0 | A1 C1 D1 | A2 C2 D2
	0xB: {
		loop: []MicroOp{opFetchA, opFetchC | opHoldA | opHoldB, opWriteD | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// C: A, B. A0 B0 -- | A1 B1 -- | A2 B2 --
	0xC: {
		loop: []MicroOp{opFetchA, opFetchB | opHoldA, opHoldB | opBusIdle | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// D: A, B, D. A0 B0 D0 | A1 B1 D1 | A2 B2 D2
	0xD: {
		loop: []MicroOp{opFetchA, opFetchB | opHoldA, opWriteD | opHoldB | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// E: A, B, C. A0 B0 C0 | A1 B1 C1 | A2 B2 C2
	0xE: {
		loop: []MicroOp{opFetchA, opFetchB | opHoldA, opFetchC | opHoldB | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
	// F: A, B, C, D. A0 B0 C0 D0 | A1 B1 C1 D1 | A2 B2 C2 D2
	0xF: {
		loop: []MicroOp{opFetchA, opFetchB | opHoldA, opFetchC | opHoldB, opWriteD | opHoldD | opRepeat},
		tail: []MicroOp{0, opDone},
	},
}

// buildCopyMicroprogram returns the full micro-instruction sequence (loop
// body followed by the drain tail) for the shape selected by mask, the
// 4-bit A/B/C/D enable index built by shapeMask. stepAccurate runs the loop
// once per word, rewinding bltpc to 0 on REPEAT while columns/rows remain,
// and falls through into the tail on the blit's last word.
func buildCopyMicroprogram(mask int) []MicroOp {
	p := shapeTable[mask&0xF]
	prog := make([]MicroOp, 0, len(p.loop)+len(p.tail))
	prog = append(prog, p.loop...)
	prog = append(prog, p.tail...)
	return prog
}

// shapeCycleCounts returns the per-word loop length K and the one-shot
// drain length tail for mask, per spec.md §8.3's Blitter length law: a copy
// blit of W words by H rows completes in exactly K*W*H + tail color-clock
// pairs. The Fast accuracy path (blitter.go's launchCopy) uses this
// directly instead of stepping micro-instructions one at a time.
func shapeCycleCounts(mask int) (k, tail int) {
	p := shapeTable[mask&0xF]
	return len(p.loop), len(p.tail)
}

package agnus

import "github.com/agnusemu/amiga500/chipset/bus"

// CopperState is the Copper's execution state, spec.md §4.e.
type CopperState int

const (
	Fetch1 CopperState = iota
	Fetch2
	Execute
	Waiting
	Skipped
)

func (s CopperState) String() string {
	switch s {
	case Fetch1:
		return "FETCH1"
	case Fetch2:
		return "FETCH2"
	case Execute:
		return "EXECUTE"
	case Waiting:
		return "WAITING"
	case Skipped:
		return "SKIPPED"
	default:
		return "?"
	}
}

// CopperBus is the narrow memory contract the Copper needs: fetching its
// own instruction stream and writing a decoded MOVE's destination register.
type CopperBus interface {
	FetchWord(addr uint32) uint16
	WriteRegister(dest uint16, value uint16, danger bool) bool
}

// Copper executes the 3-instruction-form micro-program described by
// spec.md §4.e: MOVE, WAIT and SKIP, encoded as pairs of 16-bit words.
type Copper struct {
	state CopperState
	pc    uint32

	word1, word2 uint16
	haveWord1    bool

	waitTarget uint16
	waitMask   uint16
	skipNext   bool

	danger bool

	bus CopperBus
}

// NewCopper returns a Copper parked in FETCH1 at pc.
func NewCopper(bus CopperBus) *Copper {
	return &Copper{state: Fetch1, bus: bus}
}

// Jump restarts the Copper's program counter, as COPJMP1/2 do.
func (c *Copper) Jump(addr uint32) {
	c.pc = addr
	c.state = Fetch1
	c.haveWord1 = false
}

// SetDanger sets the danger bit: when true, MOVE may target registers below
// $80 (normally forbidden to guard against runaway Copper lists clobbering
// the CPU-critical low register block).
func (c *Copper) SetDanger(v bool) { c.danger = v }

// State reports the current FSM state, for diagnostics.
func (c *Copper) State() CopperState { return c.state }

func (c *Copper) waitMaskHi() uint16 { return c.waitMask >> 8 }
func (c *Copper) waitMaskLo() uint16 { return c.waitMask & 0xFF }

// Step advances the Copper by one colour clock if it can acquire the bus
// this slot via arb. beamV/beamH give the current raster position for WAIT
// and SKIP comparisons.
func (c *Copper) Step(arb bus.Arbiter, beamV, beamH int) {
	if c.state == Skipped {
		c.state = Fetch1
	}

	if c.state == Waiting {
		vOK := (uint16(beamV) & c.waitMaskHi()) >= (c.waitTarget & c.waitMaskHi())
		hOK := (uint16(beamH) & c.waitMaskLo()) >= (c.waitTarget & c.waitMaskLo())
		if vOK && hOK {
			c.state = Fetch1
		} else {
			return
		}
	}

	if !arb.TryAllocate(bus.Copper) {
		return
	}

	switch c.state {
	case Fetch1:
		c.word1 = c.bus.FetchWord(c.pc & 0xFFFFFF)
		c.pc += 2
		c.state = Fetch2
	case Fetch2:
		c.word2 = c.bus.FetchWord(c.pc & 0xFFFFFF)
		c.pc += 2
		c.state = Execute
	case Execute:
		c.execute()
	}
}

// execute decodes the fetched instruction pair, per spec.md §4.e's
// MOVE/WAIT/SKIP encoding: bit 0 of the second word's low byte selects
// MOVE (0) vs WAIT/SKIP (1); bit 0 of the first word then distinguishes
// WAIT (0) from SKIP (1) once in that family.
func (c *Copper) execute() {
	isWaitOrSkip := c.word2&1 != 0

	if !isWaitOrSkip {
		dest := c.word1 & 0x1FE
		ok := c.bus.WriteRegister(dest, c.word2, c.danger)
		_ = ok
		c.state = Fetch1
		return
	}

	c.waitTarget = c.word1 & 0xFFFE
	c.waitMask = c.word2 & 0xFFFE
	isSkip := c.word1&1 != 0

	if isSkip {
		c.state = Skipped
		return
	}
	c.state = Waiting
}

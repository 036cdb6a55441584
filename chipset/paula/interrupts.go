// Package paula implements the interrupt aggregator of spec.md §4.h: the
// INTENA/INTREQ set/clear register pair and the fixed 6-group priority
// table the CPU glue consults to raise the pending interrupt level between
// instructions. Grounded on the teacher's riot/CIA bitmask-table idiom
// (hardware/riot/riot.go enumerates a handful of fixed bit meanings rather
// than a generic register), generalised here to the Amiga's 14 named
// interrupt sources.
package paula

// Source bits, matching the real INTENA/INTREQ bit assignment (Amiga
// Hardware Reference Manual). Bit 15 is the write-only SET/CLR control bit
// and is handled separately by PokeINTENA/PokeINTREQ, not listed here.
const (
	SrcTBE     uint16 = 1 << 0 // serial transmit buffer empty
	SrcDSKBLK  uint16 = 1 << 1 // disk block done
	SrcSOFTINT uint16 = 1 << 2 // software-triggered
	SrcPORTS   uint16 = 1 << 3 // CIA-A / parallel+control ports
	SrcCOPER   uint16 = 1 << 4 // copper
	SrcVERTB   uint16 = 1 << 5 // vertical blank
	SrcBLIT    uint16 = 1 << 6 // blitter finished
	SrcAUD0    uint16 = 1 << 7
	SrcAUD1    uint16 = 1 << 8
	SrcAUD2    uint16 = 1 << 9
	SrcAUD3    uint16 = 1 << 10
	SrcRBF     uint16 = 1 << 11 // serial receive buffer full
	SrcDSKSYNC uint16 = 1 << 12 // disk sync pattern found
	SrcEXTER   uint16 = 1 << 13 // CIA-B / external

	setClrBit uint16 = 1 << 15
)

// levelMasks maps each of the six 68000 autovector interrupt levels to the
// set of source bits that request it. Index 0 is unused (level 0 means "no
// interrupt pending"); levelMasks[n] covers level n.
var levelMasks = [7]uint16{
	0,
	SrcSOFTINT | SrcDSKBLK | SrcTBE,
	SrcPORTS,
	SrcCOPER | SrcVERTB | SrcBLIT,
	SrcAUD0 | SrcAUD1 | SrcAUD2 | SrcAUD3,
	SrcRBF | SrcDSKSYNC,
	SrcEXTER,
}

// Interrupts holds INTENA and INTREQ and derives the reported CPU
// interrupt level from them, per spec.md §4.h / §8.5.
type Interrupts struct {
	ena uint16
	req uint16

	onLevelChange func(level int)
}

// OnLevelChange registers a callback fired with the recomputed level after
// every INTENA/INTREQ poke and every Request, whether or not the level
// changed, so the CPU glue can raise it between instructions (spec.md
// §4.h: "Level changes are pushed to the CPU glue").
func (in *Interrupts) OnLevelChange(f func(level int)) { in.onLevelChange = f }

func (in *Interrupts) notify() {
	if in.onLevelChange != nil {
		in.onLevelChange(in.Level())
	}
}

// setClr applies the bit-15 set/clear convention: bit 15 high ORs the
// remaining bits into current; bit 15 low AND-NOTs them out.
func setClr(current, value uint16) uint16 {
	bits := value &^ setClrBit
	if value&setClrBit != 0 {
		return current | bits
	}
	return current &^ bits
}

// PokeINTENA applies an INTENA write.
func (in *Interrupts) PokeINTENA(value uint16) {
	in.ena = setClr(in.ena, value)
	in.notify()
}

// PokeINTREQ applies an INTREQ write.
func (in *Interrupts) PokeINTREQ(value uint16) {
	in.req = setClr(in.req, value)
	in.notify()
}

// Request raises a single interrupt source, as a DMA/peripheral event
// inside the chipset would (distinct from a CPU poke, which can clear
// request bits too).
func (in *Interrupts) Request(source uint16) {
	in.req |= source
	in.notify()
}

// PeekINTENAR and PeekINTREQR return the raw register contents, as exposed
// through the read-only *R mirror addresses.
func (in *Interrupts) PeekINTENAR() uint16 { return in.ena }
func (in *Interrupts) PeekINTREQR() uint16 { return in.req }

// Level returns the reported interrupt level: the highest-numbered group
// (1-6) whose masked bit is set in both INTENA and INTREQ, or 0 if none.
func (in *Interrupts) Level() int {
	masked := in.ena & in.req
	for level := 6; level >= 1; level-- {
		if masked&levelMasks[level] != 0 {
			return level
		}
	}
	return 0
}

package denise

// Z-buffer priority codes, spec.md §4.g. Lower value wins (is drawn on
// top); Z is compared across playfield and sprite layers at each pixel.
const (
	ZPF1 uint8 = iota
	ZPF2
	ZDPF
	ZSP0
	ZSP1
	ZSP2
	ZSP3
	ZSP4
	ZSP5
	ZSP6
	ZSP7
	ZBorder
	ZTransparent
)

// Playfield translates a line's bBuffer (raw 6-bit bitplane indices) into
// iBuffer (colour index), mBuffer (the untranslated 6-bit value, used for
// collision detection) and zBuffer (layer priority), per spec.md §4.g.
type Playfield struct {
	Dual   bool // BPLCON0 PF2PRI-adjacent dual-playfield mode
	PF2Pri bool // PF2 wins over PF1 when both opaque, in dual mode
	Prio2  uint8 // BPLCON2[0:2], single-playfield transparent-vs-opaque priority

	iBuffer []uint8
	mBuffer []uint8
	zBuffer []uint8
}

// NewPlayfield returns a Playfield with buffers sized for width pixels.
func NewPlayfield(width int) *Playfield {
	return &Playfield{
		iBuffer: make([]uint8, 0, width),
		mBuffer: make([]uint8, 0, width),
		zBuffer: make([]uint8, 0, width),
	}
}

// ResetLine clears the output buffers for a new scanline.
func (pf *Playfield) ResetLine() {
	pf.iBuffer = pf.iBuffer[:0]
	pf.mBuffer = pf.mBuffer[:0]
	pf.zBuffer = pf.zBuffer[:0]
}

// Translate appends the playfield translation of bBuffer[from:to] to the
// output buffers, honoring dual-playfield bit deinterleaving (spec.md
// §4.g: "odd bitplanes form playfield-1... even form playfield-2").
func (pf *Playfield) Translate(bBuffer []uint8, from, to int) {
	for x := from; x < to && x < len(bBuffer); x++ {
		raw := bBuffer[x]
		pf.mBuffer = append(pf.mBuffer, raw)

		if !pf.Dual {
			if raw == 0 {
				pf.iBuffer = append(pf.iBuffer, 0)
				pf.zBuffer = append(pf.zBuffer, ZTransparent)
				continue
			}
			pf.iBuffer = append(pf.iBuffer, raw)
			pf.zBuffer = append(pf.zBuffer, ZPF1)
			continue
		}

		pf1 := (raw&1)>>0 | (raw&4)>>1 | (raw&16)>>2
		pf2 := (raw&2)>>1 | (raw&8)>>2 | (raw&32)>>3

		opaque1 := pf1 != 0
		opaque2 := pf2 != 0

		switch {
		case opaque1 && opaque2:
			if pf.PF2Pri {
				pf.iBuffer = append(pf.iBuffer, pf2+8)
				pf.zBuffer = append(pf.zBuffer, ZPF2)
			} else {
				pf.iBuffer = append(pf.iBuffer, pf1)
				pf.zBuffer = append(pf.zBuffer, ZPF1)
			}
		case opaque1:
			pf.iBuffer = append(pf.iBuffer, pf1)
			pf.zBuffer = append(pf.zBuffer, ZPF1)
		case opaque2:
			pf.iBuffer = append(pf.iBuffer, pf2+8)
			pf.zBuffer = append(pf.zBuffer, ZPF2)
		default:
			pf.iBuffer = append(pf.iBuffer, 0)
			pf.zBuffer = append(pf.zBuffer, ZTransparent)
		}
	}
}

// IBuffer, MBuffer and ZBuffer expose the accumulated line buffers.
func (pf *Playfield) IBuffer() []uint8 { return pf.iBuffer }
func (pf *Playfield) MBuffer() []uint8 { return pf.mBuffer }
func (pf *Playfield) ZBuffer() []uint8 { return pf.zBuffer }

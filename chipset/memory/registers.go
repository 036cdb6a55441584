package memory

// Named offsets of the custom register file, spec.md §3 ("~230 named
// 16-bit registers at offsets $000-$1FE"). Only the registers exercised by
// the components this core implements are named; any offset in the
// $000-$1FE range without a RegisterFile.Describe call reads with the
// ReadQuirk semantics (last DMA bus value, else 0xFFFF) and stores writes
// in its raw cell (spec.md §9 open question).
const (
	BLTDDAT = 0x000
	DMACONR = 0x002
	VPOSR   = 0x004
	VHPOSR  = 0x006
	JOY0DAT = 0x00A
	JOY1DAT = 0x00C
	CLXDAT  = 0x00E
	POTGOR  = 0x016

	DSKPTH  = 0x020
	DSKPTL  = 0x022
	DSKLEN  = 0x024
	DSKDATR = 0x008
	DSKSYNC = 0x07E

	COPCON = 0x02E
	POTGO  = 0x034

	VPOSW  = 0x02A
	VHPOSW = 0x02C

	INTENAR = 0x01C
	INTREQR = 0x01E

	COP1LCH = 0x080
	COP1LCL = 0x082
	COP2LCH = 0x084
	COP2LCL = 0x086
	COPJMP1 = 0x088
	COPJMP2 = 0x08A

	DIWSTRT = 0x08E
	DIWSTOP = 0x090
	DDFSTRT = 0x092
	DDFSTOP = 0x094

	DMACON = 0x096
	CLXCON = 0x098

	INTENA = 0x09A
	INTREQ = 0x09C

	ADKCON = 0x09E

	BLTCON0  = 0x040
	BLTCON1  = 0x042
	BLTAFWM  = 0x044
	BLTALWM  = 0x046
	BLTCPTH  = 0x048
	BLTCPTL  = 0x04A
	BLTBPTH  = 0x04C
	BLTBPTL  = 0x04E
	BLTAPTH  = 0x050
	BLTAPTL  = 0x052
	BLTDPTH  = 0x054
	BLTDPTL  = 0x056
	BLTSIZE  = 0x058
	BLTCMOD  = 0x060
	BLTBMOD  = 0x062
	BLTAMOD  = 0x064
	BLTDMOD  = 0x066
	BLTCDAT  = 0x070
	BLTBDAT  = 0x072
	BLTADAT  = 0x074

	AUD0LCH = 0x0A0
	AUD0LCL = 0x0A2
	AUD0LEN = 0x0A4
	AUD0PER = 0x0A6
	AUD0VOL = 0x0A8
	AUD0DAT = 0x0AA
	// AUD1..AUD3 follow at +0x10 per channel; computed via audOffset.

	BPL1PTH = 0x0E0
	BPL1PTL = 0x0E2
	// BPL2PTH..BPL6PTL follow at +4 per plane; computed via bplPtrOffset.

	BPLCON0 = 0x100
	BPLCON1 = 0x102
	BPLCON2 = 0x104
	BPLCON3 = 0x106

	BPL1MOD = 0x108
	BPL2MOD = 0x10A

	COLOR00 = 0x180
	// COLOR01..COLOR31 follow at +2 each.

	SPR0PTH = 0x120
	SPR0PTL = 0x122
	// SPRnPTH/PTL follow at +4 per sprite.

	SPR0POS  = 0x140
	SPR0CTL  = 0x142
	SPR0DATA = 0x144
	SPR0DATB = 0x146
	// SPRnPOS/CTL/DATA/DATB follow at +8 per sprite.
)

// BplPtrOffset returns the register offset of BPLnPTH for plane n (0-5).
func BplPtrOffset(plane int) uint16 {
	return uint16(BPL1PTH + plane*4)
}

// SprPtrOffset returns the register offset of SPRnPTH for sprite n (0-7).
func SprPtrOffset(sprite int) uint16 {
	return uint16(SPR0PTH + sprite*4)
}

// SprDataOffset returns the register offset of SPRnPOS for sprite n (0-7).
func SprDataOffset(sprite int) uint16 {
	return uint16(SPR0POS + sprite*8)
}

// ColorOffset returns the register offset of COLORn for n in [0,31].
func ColorOffset(n int) uint16 {
	return uint16(COLOR00 + n*2)
}

// AudOffset returns the register offset of AUDnLCH+field for channel n
// (0-3), where field is one of the AUD0* register constants (e.g.
// AUD0PER); its distance from AUD0LCH selects the field within the
// channel's block.
func AudOffset(channel int, field uint16) uint16 {
	return uint16(AUD0LCH+channel*0x10) + (field - AUD0LCH)
}

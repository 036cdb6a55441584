package chipset

import "github.com/agnusemu/amiga500/chipset/memory"

// pointerHalves tracks the CPU-written high/low halves of a 32-bit DMA
// pointer register pair (e.g. BLTAPTH/L), combining them the same way
// bitplaneDMA and spriteDMA do for their own pointer registers.
type pointerHalves struct{ v uint32 }

func (p *pointerHalves) setHigh(hi uint16) { p.v = (p.v &^ 0xFFFF0000) | uint32(hi)<<16 }
func (p *pointerHalves) setLow(lo uint16)  { p.v = (p.v &^ 0xFFFF) | uint32(lo) }

// wireRegisters binds every custom register this core implements to the
// subsystem it belongs to, via RegisterFile.Describe/OnWrite/OnRead. This
// is the chipset-level equivalent of hardware/vcs.go wiring its memory map
// to TIA/RIOT register windows, just one register at a time instead of by
// address range, since spec.md §3's custom registers are individually
// named rather than banked.
func (a *Amiga) wireRegisters() {
	regs := a.Bus.Registers()

	a.wireBlitterRegisters(regs)
	a.wireCopperRegisters(regs)
	a.wireBeamRegisters(regs)
	a.wireDMARegisters(regs)
	a.wireBitplaneRegisters(regs)
	a.wireColorRegisters(regs)
	a.wireSpriteRegisters(regs)
	a.wireAudioRegisters(regs)
	a.wireInterruptRegisters(regs)
	a.wireCollisionRegisters(regs)
	a.wireDiskRegisters(regs)
	a.wirePotgoRegisters(regs)
}

func (a *Amiga) wireBlitterRegisters(regs *memory.RegisterFile) {
	var con0, con1 uint16
	var ptrA, ptrB, ptrC, ptrD pointerHalves
	var modA, modB, modC, modD int16

	regs.OnWrite(memory.BLTCON0, func(_, v uint16) { con0 = v; a.Blitter.SetControl(con0, con1) })
	regs.OnWrite(memory.BLTCON1, func(_, v uint16) { con1 = v; a.Blitter.SetControl(con0, con1) })

	setPointers := func() { a.Blitter.SetPointers(ptrA.v, ptrB.v, ptrC.v, ptrD.v) }
	regs.OnWrite(memory.BLTAPTH, func(_, v uint16) { ptrA.setHigh(v); setPointers() })
	regs.OnWrite(memory.BLTAPTL, func(_, v uint16) { ptrA.setLow(v); setPointers() })
	regs.OnWrite(memory.BLTBPTH, func(_, v uint16) { ptrB.setHigh(v); setPointers() })
	regs.OnWrite(memory.BLTBPTL, func(_, v uint16) { ptrB.setLow(v); setPointers() })
	regs.OnWrite(memory.BLTCPTH, func(_, v uint16) { ptrC.setHigh(v); setPointers() })
	regs.OnWrite(memory.BLTCPTL, func(_, v uint16) { ptrC.setLow(v); setPointers() })
	regs.OnWrite(memory.BLTDPTH, func(_, v uint16) { ptrD.setHigh(v); setPointers() })
	regs.OnWrite(memory.BLTDPTL, func(_, v uint16) { ptrD.setLow(v); setPointers() })

	setModulos := func() { a.Blitter.SetModulos(modA, modB, modC, modD) }
	regs.OnWrite(memory.BLTAMOD, func(_, v uint16) { modA = int16(v); setModulos() })
	regs.OnWrite(memory.BLTBMOD, func(_, v uint16) { modB = int16(v); setModulos() })
	regs.OnWrite(memory.BLTCMOD, func(_, v uint16) { modC = int16(v); setModulos() })
	regs.OnWrite(memory.BLTDMOD, func(_, v uint16) { modD = int16(v); setModulos() })

	var first uint16
	regs.OnWrite(memory.BLTAFWM, func(_, v uint16) { first = v; a.Blitter.SetMasks(first, 0xFFFF) })
	regs.OnWrite(memory.BLTALWM, func(_, v uint16) { a.Blitter.SetMasks(first, v) })

	// BLTSIZE strobes the blit: bits 15-6 carry height (0 means 1024),
	// bits 5-0 carry width in words (0 means 64), matching real hardware's
	// BLTSIZE encoding.
	regs.OnWrite(memory.BLTSIZE, func(_, v uint16) {
		height := int(v >> 6)
		if height == 0 {
			height = 1024
		}
		width := int(v & 0x3F)
		if width == 0 {
			width = 64
		}
		a.Blitter.Launch(width, height)
	})
}

func (a *Amiga) wireCopperRegisters(regs *memory.RegisterFile) {
	var lc1, lc2 pointerHalves

	regs.OnWrite(memory.COP1LCH, func(_, v uint16) { lc1.setHigh(v) })
	regs.OnWrite(memory.COP1LCL, func(_, v uint16) { lc1.setLow(v) })
	regs.OnWrite(memory.COP2LCH, func(_, v uint16) { lc2.setHigh(v) })
	regs.OnWrite(memory.COP2LCL, func(_, v uint16) { lc2.setLow(v) })

	regs.Describe(memory.COPJMP1, memory.WriteStrobe, memory.ReadQuirk)
	regs.Describe(memory.COPJMP2, memory.WriteStrobe, memory.ReadQuirk)
	regs.OnWrite(memory.COPJMP1, func(_, _ uint16) { a.Agnus.Copper.Jump(lc1.v) })
	regs.OnWrite(memory.COPJMP2, func(_, _ uint16) { a.Agnus.Copper.Jump(lc2.v) })

	// COPCON bit 1 is CDANG, the Copper "danger mode" gate that lets a
	// Copper list write the otherwise-guarded registers.
	regs.OnWrite(memory.COPCON, func(_, v uint16) { a.Agnus.Copper.SetDanger(v&0x0002 != 0) })
}

func (a *Amiga) wireBeamRegisters(regs *memory.RegisterFile) {
	var diwStrt, diwStop uint16

	// DIWSTRT/DIWSTOP's low bytes are the horizontal start/stop, compared
	// directly against the beam's colour-clock H. DIWSTOP's high byte holds
	// the low eight bits of the vertical stop; as on real hardware, its V8
	// bit is the inverse of bit 7, so $2C stops at line $12C and $F4 at $F4.
	applyDIW := func() {
		hStart, vStart := int(diwStrt&0xFF), int(diwStrt>>8)
		hStop, vStop := int(diwStop&0xFF), int(diwStop>>8)
		if diwStop&0x8000 == 0 {
			vStop += 0x100
		}
		a.Agnus.Beam.SetDIW(hStart, hStop, vStart, vStop)
	}

	regs.OnWrite(memory.DIWSTRT, func(_, v uint16) { diwStrt = v; applyDIW() })
	regs.OnWrite(memory.DIWSTOP, func(_, v uint16) { diwStop = v; applyDIW() })
	regs.OnWrite(memory.DDFSTRT, func(_, v uint16) { a.ddfStrt = v; a.applyDDF() })
	regs.OnWrite(memory.DDFSTOP, func(_, v uint16) { a.ddfStop = v; a.applyDDF() })
}

// applyDDF re-derives the DDF window from the last-written DDFSTRT/STOP and
// the hires bit BPLCON0 carries, since both inputs can change independently.
func (a *Amiga) applyDDF() {
	a.Agnus.Beam.SetDDF(int(a.ddfStrt), int(a.ddfStop), a.hires)
}

func (a *Amiga) wireDMARegisters(regs *memory.RegisterFile) {
	regs.Describe(memory.DMACONR, memory.WriteDirect, memory.ReadDirect)
	regs.OnRead(memory.DMACONR, func() uint16 {
		v := a.Agnus.DMACONR() &^ (1<<14 | 1<<13)
		if a.Blitter.Busy() {
			v |= 1 << 14 // BBUSY
		}
		if a.Blitter.BlitZero() {
			v |= 1 << 13 // BZERO
		}
		return v
	})

	regs.OnWrite(memory.DMACON, func(_, v uint16) {
		a.Agnus.SetDMACON(v)
		con := a.Agnus.DMACONR()
		for n := 0; n < 4; n++ {
			a.Paula.SetChannelEnable(n, con&(1<<uint(n)) != 0)
		}
	})
}

func (a *Amiga) wireBitplaneRegisters(regs *memory.RegisterFile) {
	regs.OnWrite(memory.BPLCON0, func(_, v uint16) {
		planes := int((v >> 12) & 0x7)
		if planes > 6 {
			planes = 6 // an illegal bitplane count is coerced to the maximum
		}
		a.hires = v&0x8000 != 0
		a.bitplaneDMA.Configure(planes, a.hires)
		a.Denise.Playfield.Dual = v&0x0400 != 0
		a.applyDDF()
	})
	regs.OnWrite(memory.BPLCON1, func(_, v uint16) {
		// Fine horizontal scroll of the two playfields (PF1HSTART/PF2HSTART
		// nibbles) is not modelled; this core scrolls in whole bitplane
		// fetches only.
	})
	regs.OnWrite(memory.BPLCON2, func(_, v uint16) {
		a.Denise.Playfield.PF2Pri = v&0x0040 != 0
		a.Denise.Playfield.Prio2 = uint8(v & 0x7)
	})
	regs.OnWrite(memory.BPL1MOD, func(_, v uint16) { a.bitplaneDMA.SetModulo1(int16(v)) })
	regs.OnWrite(memory.BPL2MOD, func(_, v uint16) { a.bitplaneDMA.SetModulo2(int16(v)) })

	for plane := 0; plane < 6; plane++ {
		plane := plane
		hi := memory.BplPtrOffset(plane)
		lo := hi + 2
		regs.OnWrite(hi, func(_, v uint16) { a.bitplaneDMA.SetPointerHigh(plane, v) })
		regs.OnWrite(lo, func(_, v uint16) { a.bitplaneDMA.SetPointerLow(plane, v) })
	}
}

func (a *Amiga) wireColorRegisters(regs *memory.RegisterFile) {
	for n := 0; n < 32; n++ {
		n := n
		off := memory.ColorOffset(n)
		regs.OnWrite(off, func(_, v uint16) { a.Denise.Palette.SetColor(n, v) })
	}
}

func (a *Amiga) wireSpriteRegisters(regs *memory.RegisterFile) {
	for n := 0; n < 8; n++ {
		n := n
		ptrHi := memory.SprPtrOffset(n)
		ptrLo := ptrHi + 2
		regs.OnWrite(ptrHi, func(_, v uint16) { a.spriteDMA.SetPointerHigh(n, v) })
		regs.OnWrite(ptrLo, func(_, v uint16) { a.spriteDMA.SetPointerLow(n, v) })

		base := memory.SprDataOffset(n)
		pos, ctl := base, base+2
		regs.OnWrite(pos, func(_, v uint16) {
			sp := a.spriteDMA.sprite(n)
			sp.HStart = int(v & 0xFF)
			sp.VStart = (sp.VStart &^ 0xFF) | int(v>>8)
		})
		regs.OnWrite(ctl, func(_, v uint16) {
			sp := a.spriteDMA.sprite(n)
			sp.HStart = (sp.HStart &^ 0x1) | int(v&0x1)
			sp.VStart = (sp.VStart & 0xFF) | int(v&0x4)<<6
			sp.VStop = int(v>>8) | int(v&0x2)<<7
			sp.Attached = v&0x0080 != 0
			sp.Disarm()
		})
	}
}

func (a *Amiga) wireAudioRegisters(regs *memory.RegisterFile) {
	for n := 0; n < 4; n++ {
		n := n
		ch := a.Paula.Channels[n]
		var start pointerHalves

		regs.OnWrite(memory.AudOffset(n, memory.AUD0LCH), func(_, v uint16) {
			start.setHigh(v)
			ch.Start = start.v
		})
		regs.OnWrite(memory.AudOffset(n, memory.AUD0LCL), func(_, v uint16) {
			start.setLow(v)
			ch.Start = start.v
		})
		regs.OnWrite(memory.AudOffset(n, memory.AUD0LEN), func(_, v uint16) { ch.Length = v })
		regs.OnWrite(memory.AudOffset(n, memory.AUD0PER), func(_, v uint16) { ch.Period = v })
		regs.OnWrite(memory.AudOffset(n, memory.AUD0VOL), func(_, v uint16) { ch.Volume = uint8(v & 0x7F) })
	}
}

func (a *Amiga) wireInterruptRegisters(regs *memory.RegisterFile) {
	regs.Describe(memory.INTENAR, memory.WriteDirect, memory.ReadDirect)
	regs.Describe(memory.INTREQR, memory.WriteDirect, memory.ReadDirect)
	regs.OnRead(memory.INTENAR, a.Paula.Interrupts.PeekINTENAR)
	regs.OnRead(memory.INTREQR, a.Paula.Interrupts.PeekINTREQR)
	regs.OnWrite(memory.INTENA, func(_, v uint16) { a.Paula.Interrupts.PokeINTENA(v) })
	regs.OnWrite(memory.INTREQ, func(_, v uint16) { a.Paula.Interrupts.PokeINTREQ(v) })
}

func (a *Amiga) wireCollisionRegisters(regs *memory.RegisterFile) {
	regs.Describe(memory.CLXDAT, memory.WriteDirect, memory.ReadDirect)
	regs.OnRead(memory.CLXDAT, a.Denise.Collision.Read)
	regs.OnWrite(memory.CLXCON, func(_, v uint16) { a.Denise.Collision.SetControl(v) })
}

func (a *Amiga) wireDiskRegisters(regs *memory.RegisterFile) {
	regs.OnWrite(memory.DSKPTH, func(_, v uint16) { a.diskDMA.SetPointerHigh(v) })
	regs.OnWrite(memory.DSKPTL, func(_, v uint16) { a.diskDMA.SetPointerLow(v) })
	regs.OnWrite(memory.DSKLEN, func(_, v uint16) { a.diskDMA.SetDSKLEN(v) })
}

func (a *Amiga) wirePotgoRegisters(regs *memory.RegisterFile) {
	regs.Describe(memory.POTGOR, memory.WriteDirect, memory.ReadDirect)
	regs.OnRead(memory.POTGOR, a.Potgo.Read)
	regs.OnWrite(memory.POTGO, func(_, v uint16) { a.Potgo.Write(v) })
}

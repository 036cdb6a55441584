package blitter

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Snapshot serialises the Blitter's control registers and, if a blit is
// in flight, enough progress state to resume it mid-operation -- real
// hardware's own Blitter keeps running across a guest-invisible pause, and
// a snapshot/restore cycle must not be observable as a completed or
// abandoned blit.
func (b *Blitter) Snapshot() []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, b.con0)
	binary.Write(&buf, binary.BigEndian, b.con1)
	binary.Write(&buf, binary.BigEndian, b.ptrA)
	binary.Write(&buf, binary.BigEndian, b.ptrB)
	binary.Write(&buf, binary.BigEndian, b.ptrC)
	binary.Write(&buf, binary.BigEndian, b.ptrD)
	binary.Write(&buf, binary.BigEndian, b.modA)
	binary.Write(&buf, binary.BigEndian, b.modB)
	binary.Write(&buf, binary.BigEndian, b.modC)
	binary.Write(&buf, binary.BigEndian, b.modD)
	binary.Write(&buf, binary.BigEndian, b.firstWordMask)
	binary.Write(&buf, binary.BigEndian, b.lastWordMask)
	binary.Write(&buf, binary.BigEndian, int32(b.width))
	binary.Write(&buf, binary.BigEndian, int32(b.height))
	binary.Write(&buf, binary.BigEndian, int32(b.x))
	binary.Write(&buf, binary.BigEndian, int32(b.y))
	binary.Write(&buf, binary.BigEndian, int32(b.pc))
	binary.Write(&buf, binary.BigEndian, int32(b.busCyclesRemaining))
	var flags uint8
	if b.busy {
		flags |= 0x01
	}
	if b.blitZero {
		flags |= 0x02
	}
	if b.fillCarry {
		flags |= 0x04
	}
	buf.WriteByte(flags)
	return buf.Bytes()
}

// Restore replaces the Blitter's control and in-flight progress state. A
// blit resumed mid-flight replays its micro-program from BLTCON's decode
// rather than restoring the compiled MicroOp slice directly, which is
// deterministic from con0/con1/control so long as Launch is not called
// again before the restored blit's remaining rows finish.
func (b *Blitter) Restore(data []byte) error {
	r := bytes.NewReader(data)
	fields := []interface{}{
		&b.con0, &b.con1, &b.ptrA, &b.ptrB, &b.ptrC, &b.ptrD,
		&b.modA, &b.modB, &b.modC, &b.modD,
		&b.firstWordMask, &b.lastWordMask,
	}
	for _, f := range fields {
		if err := binary.Read(r, binary.BigEndian, f); err != nil {
			return fmt.Errorf("blitter: snapshot: %w", err)
		}
	}
	var width, height, x, y, pc, busCycles int32
	for _, f := range []*int32{&width, &height, &x, &y, &pc, &busCycles} {
		if err := binary.Read(r, binary.BigEndian, f); err != nil {
			return fmt.Errorf("blitter: snapshot: %w", err)
		}
	}
	b.width, b.height, b.x, b.y, b.pc, b.busCyclesRemaining =
		int(width), int(height), int(x), int(y), int(pc), int(busCycles)

	var flags uint8
	if err := binary.Read(r, binary.BigEndian, &flags); err != nil {
		return fmt.Errorf("blitter: snapshot missing flags: %w", err)
	}
	b.busy = flags&0x01 != 0
	b.blitZero = flags&0x02 != 0
	b.fillCarry = flags&0x04 != 0
	b.control = DecodeControl(b.con0, b.con1)
	if b.busy && b.line == (lineParams{}) {
		b.prog = buildCopyMicroprogram(shapeMask(b.control))
	}
	return nil
}

package agnus

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Snapshot serialises the beam position and the DIW/DDF flip-flop state
// derived from the last DIWSTRT/STOP/DDFSTRT/STOP writes, so a restored
// beam resumes mid-line exactly where it left off.
func (b *Beam) Snapshot() []byte {
	var buf bytes.Buffer
	writeInts(&buf, b.h, b.v, b.diwHOn, b.diwHOff, b.diwVOn, b.diwVOff, b.ddfStrt, b.ddfStop)
	var flags uint8
	if b.diwH {
		flags |= 0x01
	}
	if b.diwV {
		flags |= 0x02
	}
	if b.ddfH {
		flags |= 0x04
	}
	if b.hires {
		flags |= 0x08
	}
	buf.WriteByte(flags)
	return buf.Bytes()
}

// Restore replaces the beam's position and flip-flop state.
func (b *Beam) Restore(data []byte) error {
	r := bytes.NewReader(data)
	ints, err := readInts(r, 8)
	if err != nil {
		return fmt.Errorf("agnus: beam snapshot: %w", err)
	}
	b.h, b.v, b.diwHOn, b.diwHOff, b.diwVOn, b.diwVOff, b.ddfStrt, b.ddfStop =
		ints[0], ints[1], ints[2], ints[3], ints[4], ints[5], ints[6], ints[7]
	var flags uint8
	if err := binary.Read(r, binary.BigEndian, &flags); err != nil {
		return fmt.Errorf("agnus: beam snapshot missing flags: %w", err)
	}
	b.diwH = flags&0x01 != 0
	b.diwV = flags&0x02 != 0
	b.ddfH = flags&0x04 != 0
	b.hires = flags&0x08 != 0
	return nil
}

// Snapshot serialises the Copper's program counter and decode state.
func (c *Copper) Snapshot() []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint8(c.state))
	binary.Write(&buf, binary.BigEndian, c.pc)
	binary.Write(&buf, binary.BigEndian, c.word1)
	binary.Write(&buf, binary.BigEndian, c.word2)
	binary.Write(&buf, binary.BigEndian, c.waitTarget)
	binary.Write(&buf, binary.BigEndian, c.waitMask)
	var flags uint8
	if c.haveWord1 {
		flags |= 0x01
	}
	if c.skipNext {
		flags |= 0x02
	}
	if c.danger {
		flags |= 0x04
	}
	buf.WriteByte(flags)
	return buf.Bytes()
}

// Restore replaces the Copper's program counter and decode state.
func (c *Copper) Restore(data []byte) error {
	r := bytes.NewReader(data)
	var state uint8
	if err := binary.Read(r, binary.BigEndian, &state); err != nil {
		return fmt.Errorf("agnus: copper snapshot: %w", err)
	}
	c.state = CopperState(state)
	binary.Read(r, binary.BigEndian, &c.pc)
	binary.Read(r, binary.BigEndian, &c.word1)
	binary.Read(r, binary.BigEndian, &c.word2)
	binary.Read(r, binary.BigEndian, &c.waitTarget)
	binary.Read(r, binary.BigEndian, &c.waitMask)
	var flags uint8
	if err := binary.Read(r, binary.BigEndian, &flags); err != nil {
		return fmt.Errorf("agnus: copper snapshot missing flags: %w", err)
	}
	c.haveWord1 = flags&0x01 != 0
	c.skipNext = flags&0x02 != 0
	c.danger = flags&0x04 != 0
	return nil
}

// Snapshot serialises DMACON plus the Beam and Copper sub-snapshots, in
// leaf-first order (spec.md §5).
func (a *Agnus) Snapshot() []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, a.dmacon)
	writeChunk(&buf, a.Beam.Snapshot())
	writeChunk(&buf, a.Copper.Snapshot())
	return buf.Bytes()
}

// Restore replaces DMACON and the Beam/Copper sub-state.
func (a *Agnus) Restore(data []byte) error {
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.BigEndian, &a.dmacon); err != nil {
		return fmt.Errorf("agnus: snapshot: %w", err)
	}
	beamData, err := readChunk(r)
	if err != nil {
		return err
	}
	if err := a.Beam.Restore(beamData); err != nil {
		return err
	}
	copperData, err := readChunk(r)
	if err != nil {
		return err
	}
	return a.Copper.Restore(copperData)
}

func writeInts(buf *bytes.Buffer, vs ...int) {
	for _, v := range vs {
		binary.Write(buf, binary.BigEndian, int32(v))
	}
}

func readInts(r *bytes.Reader, n int) ([]int, error) {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		var v int32
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return nil, err
		}
		out[i] = int(v)
	}
	return out, nil
}

func writeChunk(buf *bytes.Buffer, data []byte) {
	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.Write(data)
}

func readChunk(r *bytes.Reader) ([]byte, error) {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, err
	}
	data := make([]byte, length)
	if length > 0 {
		if _, err := r.Read(data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

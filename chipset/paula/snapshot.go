package paula

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Snapshot serialises INTENA/INTREQ.
func (in *Interrupts) Snapshot() []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, in.ena)
	binary.Write(&buf, binary.BigEndian, in.req)
	return buf.Bytes()
}

// Restore replaces INTENA/INTREQ and notifies the CPU glue of the
// resulting level, since a restored snapshot may resume with an interrupt
// already pending.
func (in *Interrupts) Restore(data []byte) error {
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.BigEndian, &in.ena); err != nil {
		return fmt.Errorf("paula: interrupts snapshot: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &in.req); err != nil {
		return fmt.Errorf("paula: interrupts snapshot: %w", err)
	}
	in.notify()
	return nil
}

// Snapshot serialises the interrupt aggregator and all four audio
// channels' register-derived state, in leaf-first order.
func (p *Paula) Snapshot() []byte {
	var buf bytes.Buffer
	writeChunk(&buf, p.Interrupts.Snapshot())
	for _, c := range p.Channels {
		writeChunk(&buf, c.snapshot())
	}
	return buf.Bytes()
}

// Restore replaces the interrupt aggregator and all four audio channels.
func (p *Paula) Restore(data []byte) error {
	r := bytes.NewReader(data)
	intData, err := readChunk(r)
	if err != nil {
		return err
	}
	if err := p.Interrupts.Restore(intData); err != nil {
		return err
	}
	for _, c := range p.Channels {
		chData, err := readChunk(r)
		if err != nil {
			return err
		}
		if err := c.restore(chData); err != nil {
			return err
		}
	}
	return nil
}

func (c *AudioChannel) snapshot() []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, c.Pointer)
	binary.Write(&buf, binary.BigEndian, c.Start)
	binary.Write(&buf, binary.BigEndian, c.Length)
	binary.Write(&buf, binary.BigEndian, c.Period)
	binary.Write(&buf, binary.BigEndian, c.Volume)
	binary.Write(&buf, binary.BigEndian, c.remaining)
	binary.Write(&buf, binary.BigEndian, c.countdown)
	var flags uint8
	if c.Enabled {
		flags = 1
	}
	buf.WriteByte(flags)
	return buf.Bytes()
}

func (c *AudioChannel) restore(data []byte) error {
	r := bytes.NewReader(data)
	fields := []interface{}{&c.Pointer, &c.Start, &c.Length, &c.Period, &c.Volume, &c.remaining, &c.countdown}
	for _, f := range fields {
		if err := binary.Read(r, binary.BigEndian, f); err != nil {
			return fmt.Errorf("paula: audio channel snapshot: %w", err)
		}
	}
	flags, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("paula: audio channel snapshot: %w", err)
	}
	c.Enabled = flags != 0
	return nil
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

package memory

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Snapshot serialises the register file's raw storage (spec.md §5 leaf-first
// persistent state), big-endian.
func (r *RegisterFile) Snapshot() []byte {
	buf := make([]byte, len(r.raw)*2)
	for i, v := range r.raw {
		binary.BigEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}

// Restore replaces the register file's raw storage from a previous
// Snapshot. Registered Describe/OnWrite/OnRead handlers are untouched --
// they are wiring, not state.
func (r *RegisterFile) Restore(data []byte) error {
	if len(data) != len(r.raw)*2 {
		return fmt.Errorf("memory: register snapshot has %d bytes, want %d", len(data), len(r.raw)*2)
	}
	for i := range r.raw {
		r.raw[i] = binary.BigEndian.Uint16(data[i*2:])
	}
	return nil
}

// Snapshot serialises the RAM contents and overlay/WOM-lock state a
// snapshot must reproduce exactly (spec.md §8.7: OVL toggling must not
// disturb memory contents). ROM images are not included -- they are
// supplied fresh by the host on load, per spec.md's out-of-scope ROM file
// handling.
func (d *Decoder) Snapshot() []byte {
	var buf bytes.Buffer
	writeChunk(&buf, d.chipRAM)
	writeChunk(&buf, d.slowRAM)
	writeChunk(&buf, d.fastRAM)
	writeChunk(&buf, d.wom)
	var flags uint8
	if d.overlay {
		flags |= 0x01
	}
	if d.womLocked {
		flags |= 0x02
	}
	buf.WriteByte(flags)
	return buf.Bytes()
}

// Restore replaces RAM contents and the overlay/WOM-lock state, then
// rebuilds the region table.
func (d *Decoder) Restore(data []byte) error {
	r := bytes.NewReader(data)
	chip, err := readChunk(r)
	if err != nil {
		return err
	}
	slow, err := readChunk(r)
	if err != nil {
		return err
	}
	fast, err := readChunk(r)
	if err != nil {
		return err
	}
	wom, err := readChunk(r)
	if err != nil {
		return err
	}
	var flags uint8
	if err := binary.Read(r, binary.BigEndian, &flags); err != nil {
		return fmt.Errorf("memory: decoder snapshot missing flags byte: %w", err)
	}

	if len(chip) != len(d.chipRAM) || len(slow) != len(d.slowRAM) || len(fast) != len(d.fastRAM) {
		return fmt.Errorf("memory: decoder snapshot RAM sizes do not match current configuration")
	}
	copy(d.chipRAM, chip)
	copy(d.slowRAM, slow)
	copy(d.fastRAM, fast)
	if d.wom != nil && len(wom) == len(d.wom) {
		copy(d.wom, wom)
	}

	d.overlay = flags&0x01 != 0
	d.womLocked = flags&0x02 != 0
	d.rebuild()
	return nil
}

func writeChunk(buf *bytes.Buffer, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	buf.Write(length[:])
	buf.Write(data)
}

func readChunk(r *bytes.Reader) ([]byte, error) {
	var length [4]byte
	if _, err := r.Read(length[:]); err != nil {
		return nil, fmt.Errorf("memory: truncated snapshot chunk length: %w", err)
	}
	n := binary.BigEndian.Uint32(length[:])
	data := make([]byte, n)
	if n > 0 {
		if _, err := r.Read(data); err != nil {
			return nil, fmt.Errorf("memory: truncated snapshot chunk data: %w", err)
		}
	}
	return data, nil
}

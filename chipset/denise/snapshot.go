package denise

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Snapshot serialises the persistent register-file-derived state: the
// palette, the playfield priority controls, the collision enable mask and
// each sprite's position/attach state. Per-colour-clock scratch buffers
// (bBuffer/iBuffer/mBuffer/zBuffer, the bitplane shift registers) are reset
// at the start of every line and are not part of a snapshot's persistent
// state, matching spec.md §5's "persistent items" framing.
func (d *Denise) Snapshot() []byte {
	var buf bytes.Buffer
	for _, c := range d.Palette.entries {
		binary.Write(&buf, binary.BigEndian, c)
	}
	binary.Write(&buf, binary.BigEndian, uint8(d.Palette.mode))

	var pfFlags uint8
	if d.Playfield.Dual {
		pfFlags |= 0x01
	}
	if d.Playfield.PF2Pri {
		pfFlags |= 0x02
	}
	buf.WriteByte(pfFlags)
	buf.WriteByte(d.Playfield.Prio2)

	binary.Write(&buf, binary.BigEndian, d.Collision.Con)
	binary.Write(&buf, binary.BigEndian, d.Collision.dat)

	for _, pair := range d.Sprites {
		for _, sp := range []Sprite{pair.Lo, pair.Hi} {
			binary.Write(&buf, binary.BigEndian, int32(sp.HStart))
			binary.Write(&buf, binary.BigEndian, int32(sp.VStart))
			binary.Write(&buf, binary.BigEndian, int32(sp.VStop))
			var flags uint8
			if sp.Attached {
				flags |= 0x01
			}
			if sp.Armed {
				flags |= 0x02
			}
			buf.WriteByte(flags)
		}
	}
	return buf.Bytes()
}

// Restore replaces the palette, playfield controls, collision mask and
// sprite position/attach state.
func (d *Denise) Restore(data []byte) error {
	r := bytes.NewReader(data)
	for i := range d.Palette.entries {
		if err := binary.Read(r, binary.BigEndian, &d.Palette.entries[i]); err != nil {
			return fmt.Errorf("denise: snapshot: %w", err)
		}
	}
	var mode uint8
	if err := binary.Read(r, binary.BigEndian, &mode); err != nil {
		return fmt.Errorf("denise: snapshot: %w", err)
	}
	d.Palette.mode = ColorMode(mode)

	pfFlags, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("denise: snapshot: %w", err)
	}
	d.Playfield.Dual = pfFlags&0x01 != 0
	d.Playfield.PF2Pri = pfFlags&0x02 != 0
	prio2, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("denise: snapshot: %w", err)
	}
	d.Playfield.Prio2 = prio2

	if err := binary.Read(r, binary.BigEndian, &d.Collision.Con); err != nil {
		return fmt.Errorf("denise: snapshot: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &d.Collision.dat); err != nil {
		return fmt.Errorf("denise: snapshot: %w", err)
	}

	for i := range d.Sprites {
		for _, sp := range []*Sprite{&d.Sprites[i].Lo, &d.Sprites[i].Hi} {
			var hStart, vStart, vStop int32
			if err := binary.Read(r, binary.BigEndian, &hStart); err != nil {
				return fmt.Errorf("denise: snapshot: %w", err)
			}
			if err := binary.Read(r, binary.BigEndian, &vStart); err != nil {
				return fmt.Errorf("denise: snapshot: %w", err)
			}
			if err := binary.Read(r, binary.BigEndian, &vStop); err != nil {
				return fmt.Errorf("denise: snapshot: %w", err)
			}
			flags, err := r.ReadByte()
			if err != nil {
				return fmt.Errorf("denise: snapshot: %w", err)
			}
			sp.HStart, sp.VStart, sp.VStop = int(hStart), int(vStart), int(vStop)
			sp.Attached = flags&0x01 != 0
			sp.Armed = flags&0x02 != 0
		}
	}
	return nil
}

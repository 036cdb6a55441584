package chipset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/agnusemu/amiga500/message"
)

// Snapshot format version, per spec.md §5: "version mismatch is a hard
// reject." LoadSnapshot accepts only an exact major.minor.subminor match,
// so bumping any of the three makes older snapshots unreadable.
const (
	snapshotMagic          = "A500"
	snapshotVersionMajor    = 1
	snapshotVersionMinor    = 0
	snapshotVersionSubminor = 0
)

// snapshotHeader is the fixed-size header spec.md §5 names: {magic, major,
// minor, subminor, timestamp, image_width, image_height}, followed
// separately by the image_rgba payload since its length depends on the
// display geometry.
type snapshotHeader struct {
	Major, Minor, Subminor   uint16
	Timestamp                int64
	ImageWidth, ImageHeight  uint32
}

// SaveSnapshot serialises the Amiga's full persistent state to w: the
// header, a thumbnail of the current stable frame, and every component's
// own Snapshot() in the fixed leaf-first order Memory -> Agnus -> Blitter
// -> Denise -> Paula -> CPU glue, matching spec.md §5. timestamp is
// supplied by the caller (Unix seconds) rather than taken internally, since
// this core has no wall-clock collaborator of its own.
func (a *Amiga) SaveSnapshot(w io.Writer, timestamp int64) error {
	a.suspend()
	defer a.resume()

	frame := a.Buffers.Stable(false)

	header := snapshotHeader{
		Major:      snapshotVersionMajor,
		Minor:      snapshotVersionMinor,
		Subminor:   snapshotVersionSubminor,
		Timestamp:  timestamp,
		ImageWidth: uint32(frame.Width),
		ImageHeight: uint32(frame.Height),
	}

	var buf bytes.Buffer
	buf.WriteString(snapshotMagic)
	binary.Write(&buf, binary.BigEndian, header)
	buf.Write(frame.Pix)

	writeChunk(&buf, a.Decoder.Snapshot())
	writeChunk(&buf, a.Registers.Snapshot())
	writeChunk(&buf, a.Agnus.Snapshot())
	writeChunk(&buf, a.Blitter.Snapshot())
	writeChunk(&buf, a.Denise.Snapshot())
	writeChunk(&buf, a.Paula.Snapshot())
	writeChunk(&buf, a.Glue.Snapshot())

	_, err := w.Write(buf.Bytes())
	return err
}

// LoadSnapshot replaces the Amiga's full persistent state from r, rejecting
// any header whose version does not match exactly -- spec.md §5 is
// explicit that a version mismatch is a hard reject, not a best-effort
// upgrade.
func (a *Amiga) LoadSnapshot(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("chipset: reading snapshot: %w", err)
	}
	buf := bytes.NewReader(data)

	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(buf, magic); err != nil || string(magic) != snapshotMagic {
		return fmt.Errorf("chipset: not an Amiga chipset snapshot")
	}

	var header snapshotHeader
	if err := binary.Read(buf, binary.BigEndian, &header); err != nil {
		return fmt.Errorf("chipset: truncated snapshot header: %w", err)
	}
	if header.Major != snapshotVersionMajor || header.Minor != snapshotVersionMinor || header.Subminor != snapshotVersionSubminor {
		return fmt.Errorf("chipset: snapshot version %d.%d.%d does not match %d.%d.%d",
			header.Major, header.Minor, header.Subminor,
			snapshotVersionMajor, snapshotVersionMinor, snapshotVersionSubminor)
	}

	thumbnail := make([]byte, header.ImageWidth*header.ImageHeight*4)
	if _, err := io.ReadFull(buf, thumbnail); err != nil {
		return fmt.Errorf("chipset: truncated snapshot thumbnail: %w", err)
	}

	decoderData, err := readSnapshotChunk(buf)
	if err != nil {
		return err
	}
	registersData, err := readSnapshotChunk(buf)
	if err != nil {
		return err
	}
	agnusData, err := readSnapshotChunk(buf)
	if err != nil {
		return err
	}
	blitterData, err := readSnapshotChunk(buf)
	if err != nil {
		return err
	}
	deniseData, err := readSnapshotChunk(buf)
	if err != nil {
		return err
	}
	paulaData, err := readSnapshotChunk(buf)
	if err != nil {
		return err
	}
	glueData, err := readSnapshotChunk(buf)
	if err != nil {
		return err
	}

	a.suspend()
	defer a.resume()

	if err := a.Decoder.Restore(decoderData); err != nil {
		return err
	}
	if err := a.Registers.Restore(registersData); err != nil {
		return err
	}
	if err := a.Agnus.Restore(agnusData); err != nil {
		return err
	}
	if err := a.Blitter.Restore(blitterData); err != nil {
		return err
	}
	if err := a.Denise.Restore(deniseData); err != nil {
		return err
	}
	if err := a.Paula.Restore(paulaData); err != nil {
		return err
	}
	if err := a.Glue.Restore(glueData); err != nil {
		return err
	}

	a.Messages.Post(message.SnapshotTaken)
	return nil
}

func writeChunk(buf *bytes.Buffer, data []byte) {
	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.Write(data)
}

func readSnapshotChunk(r *bytes.Reader) ([]byte, error) {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, fmt.Errorf("chipset: truncated snapshot: %w", err)
	}
	data := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("chipset: truncated snapshot chunk: %w", err)
		}
	}
	return data, nil
}

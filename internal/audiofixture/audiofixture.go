// Package audiofixture round-trips a Paula mix buffer through a real .wav
// encoder/decoder, so Blitter/Paula regression tests can assert against a
// recognisable waveform artifact instead of a bare slice of ints -- and so
// a failing test can be dumped to disk and played back by ear.
package audiofixture

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const audioFormatPCM = 1

// Encode renders buf to a standalone .wav file, PCM, the bit depth already
// recorded on buf.SourceBitDepth. wav.Encoder needs to seek back and patch
// the RIFF/data chunk sizes once the sample count is known, so the output
// is built against an in-memory seekable buffer rather than bytes.Buffer.
func Encode(buf *audio.IntBuffer) ([]byte, error) {
	out := &seekBuffer{}
	enc := wav.NewEncoder(out, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels, audioFormatPCM)
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("audiofixture: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("audiofixture: encode: %w", err)
	}
	return out.data, nil
}

// Decode parses a .wav file previously produced by Encode (or any PCM wav)
// back into an *audio.IntBuffer.
func Decode(data []byte) (*audio.IntBuffer, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audiofixture: decode: %w", err)
	}
	return buf, nil
}

// seekBuffer is a minimal in-memory io.WriteSeeker over a growable []byte,
// the shape wav.Encoder needs to patch its header after streaming samples.
type seekBuffer struct {
	data []byte
	pos  int64
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	end := b.pos + int64(len(p))
	if end > int64(len(b.data)) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:end], p)
	b.pos = end
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = b.pos + offset
	case io.SeekEnd:
		next = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("audiofixture: invalid whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("audiofixture: negative seek position")
	}
	b.pos = next
	return next, nil
}

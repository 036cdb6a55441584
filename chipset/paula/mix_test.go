package paula

import (
	"testing"

	"github.com/agnusemu/amiga500/internal/audiofixture"
	"github.com/agnusemu/amiga500/internal/testhelp"
)

func TestMixBufferRoundTripsThroughWav(t *testing.T) {
	mem := &fakeAudioMemory{words: map[uint32]uint16{0x1000: 0x0042, 0x1002: 0x0080}}
	p := New(mem, 8)

	ch := p.Channels[0]
	ch.Start = 0x1000
	ch.Length = 2
	ch.Period = 4
	ch.Volume = 64
	ch.Enabled = true
	ch.Restart()

	for i := 0; i < 4; i++ {
		if ch.WantsSlot(0, 0) {
			ch.RunSlot()
		}
		p.MixSample()
	}

	encoded, err := audiofixture.Encode(p.MixBuffer())
	testhelp.ExpectSuccess(t, err == nil)

	decoded, err := audiofixture.Decode(encoded)
	testhelp.ExpectSuccess(t, err == nil)

	testhelp.ExpectEquality(t, len(decoded.Data), len(p.MixBuffer().Data))
	for i, want := range p.MixBuffer().Data {
		testhelp.ExpectEquality(t, decoded.Data[i], want)
	}
}

package paula

import (
	"github.com/go-audio/audio"
)

// Paula is the container for spec.md §4.h's interrupt aggregator plus the
// audio and disk DMA dispatch spec.md §4.j lists as things Agnus drives
// "through it": Paula owns the four audio channels and the interrupt
// sources they and the disk controller feed, the way hardware/vcs.go's VCS
// owns RIOT alongside TIA rather than folding it into the CPU glue.
type Paula struct {
	Interrupts Interrupts
	Channels   [4]*AudioChannel

	mixed *audio.IntBuffer
}

// New returns a Paula with its four audio channels wired to mem for
// sample fetches, and a mono 8-bit mix buffer of the given sample capacity.
func New(mem AudioMemory, mixCapacity int) *Paula {
	p := &Paula{
		mixed: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
			Data:           make([]int, 0, mixCapacity),
			SourceBitDepth: 8,
		},
	}
	for i := range p.Channels {
		p.Channels[i] = NewAudioChannel(mem)
	}
	return p
}

// audioSources presents the four channels as one agnus.SlotSource: the
// first channel (in priority order 0-3) that wants the bus gets it,
// mirroring real hardware's fixed per-channel DMA slot assignment within
// the single "audio" priority tier.
type audioSlotSource struct{ p *Paula }

// SlotSource returns the combined agnus.SlotSource for all four channels.
func (p *Paula) SlotSource() interface {
	WantsSlot(v, h int) bool
	RunSlot()
} {
	return audioSlotSource{p}
}

func (s audioSlotSource) WantsSlot(v, h int) bool {
	for _, c := range s.p.Channels {
		if c.WantsSlot(v, h) {
			return true
		}
	}
	return false
}

func (s audioSlotSource) RunSlot() {
	for i, c := range s.p.Channels {
		if !c.WantsSlot(0, 0) {
			continue
		}
		if c.RunSlot() {
			s.p.requestAudioInterrupt(i)
		}
		return
	}
}

// TickCountdowns advances every channel's sample-period countdown by one
// colour clock; the orchestrator calls this unconditionally, since a
// channel's countdown runs whether or not it won this colour clock's bus
// slot.
func (p *Paula) TickCountdowns() {
	for _, c := range p.Channels {
		c.tickCountdown()
	}
}

func (p *Paula) requestAudioInterrupt(channel int) {
	switch channel {
	case 0:
		p.Interrupts.Request(SrcAUD0)
	case 1:
		p.Interrupts.Request(SrcAUD1)
	case 2:
		p.Interrupts.Request(SrcAUD2)
	case 3:
		p.Interrupts.Request(SrcAUD3)
	}
}

// SetChannelEnable applies a DMACON AUDnEN bit transition: enabling a
// channel restarts it from its Start pointer, per real hardware.
func (p *Paula) SetChannelEnable(channel int, enabled bool) {
	if channel < 0 || channel > 3 {
		return
	}
	c := p.Channels[channel]
	wasEnabled := c.Enabled
	c.Enabled = enabled
	if enabled && !wasEnabled {
		c.Restart()
	}
}

// MixSample appends the current mixed sample (sum of all four channels,
// clamped) to the output buffer.
func (p *Paula) MixSample() {
	var sum int32
	for _, c := range p.Channels {
		sum += int32(c.Sample())
	}
	if sum > 127 {
		sum = 127
	}
	if sum < -128 {
		sum = -128
	}
	p.mixed.Data = append(p.mixed.Data, int(sum))
}

// MixBuffer returns the accumulated mix buffer (spec.md §6: "Audio
// samples... mixed").
func (p *Paula) MixBuffer() *audio.IntBuffer { return p.mixed }

// ResetMixBuffer clears the mix buffer, normally called once per frame
// after the host has drained it.
func (p *Paula) ResetMixBuffer() { p.mixed.Data = p.mixed.Data[:0] }

// RequestDiskBlockDone signals DSKBLK, called by the disk controller when
// a sector DMA transfer completes.
func (p *Paula) RequestDiskBlockDone() { p.Interrupts.Request(SrcDSKBLK) }

// RequestDiskSync signals DSKSYNC. No disk sync-word matcher in this core
// calls it.
func (p *Paula) RequestDiskSync() { p.Interrupts.Request(SrcDSKSYNC) }

// RequestVerticalBlank signals VERTB, wired to agnus.Agnus.OnVerticalBlank.
func (p *Paula) RequestVerticalBlank() { p.Interrupts.Request(SrcVERTB) }

// RequestBlitterDone signals BLIT, wired to blitter.Blitter.OnDone.
func (p *Paula) RequestBlitterDone() { p.Interrupts.Request(SrcBLIT) }

// RequestCopperWake signals COPER. Nothing in this core calls it; a Copper
// list raises COPER with a MOVE to INTREQ.
func (p *Paula) RequestCopperWake() { p.Interrupts.Request(SrcCOPER) }

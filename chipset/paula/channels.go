package paula

// AudioMemory is the narrow collaborator an audio channel needs to fetch
// its next sample word, mirroring blitter.Memory's shape (spec.md §9:
// narrow interfaces instead of a concrete memory type).
type AudioMemory interface {
	ReadWord(addr uint32) uint16
}

// AudioChannel is one of Paula's four independent 8-bit-signed DMA-driven
// sample players (spec.md §6: "Audio samples (four 8-bit signed channels,
// mixed)"). Each channel fetches a length-counted block of words from Chip
// RAM, feeding one signed sample out every `Period` colour clocks (the low
// byte of each fetched word; the high byte is not played), and requests
// its AUDn interrupt whenever its
// length counter exhausts and reloads, per the real hardware's "audio
// interrupt on buffer empty" behaviour.
type AudioChannel struct {
	Enabled bool

	Pointer uint32 // BLTAPT-style base pointer, reloaded from Start at each length expiry
	Start   uint32
	Length  uint16 // AUDLEN, in words
	Period  uint16 // AUDPER, colour clocks between samples
	Volume  uint8  // AUDVOL, 0-64

	remaining uint16 // words left in the current block
	countdown uint16 // colour clocks until the next sample

	lastSample int8

	mem AudioMemory
}

// NewAudioChannel returns a channel that fetches through mem.
func NewAudioChannel(mem AudioMemory) *AudioChannel {
	return &AudioChannel{mem: mem}
}

// Restart reloads the channel's pointer and length counter, as happens
// when DMACON's corresponding AUDnEN bit transitions low-to-high, and
// clears the period countdown so the first word is fetched straight away.
func (c *AudioChannel) Restart() {
	c.Pointer = c.Start
	c.remaining = c.Length
	c.countdown = 0
}

// WantsSlot implements agnus.SlotSource: an audio channel wants the bus
// whenever it is enabled, has words left to fetch, and its sample period
// has elapsed.
func (c *AudioChannel) WantsSlot(v, h int) bool {
	return c.Enabled && c.remaining > 0 && c.countdown == 0
}

// RunSlot fetches the next sample word, applies volume scaling and
// advances the pointer/period countdown. It reports whether the block
// exhausted and reloaded on this fetch, so the caller can request the
// matching AUDn interrupt.
func (c *AudioChannel) RunSlot() (exhausted bool) {
	word := c.mem.ReadWord(c.Pointer)
	c.Pointer += 2

	raw := int8(word & 0xFF) // low byte carries the 8-bit signed sample
	c.lastSample = scaleVolume(raw, c.Volume)

	c.remaining--
	if c.Period == 0 {
		c.countdown = 0
	} else {
		c.countdown = c.Period
	}

	if c.remaining == 0 {
		c.Pointer = c.Start
		c.remaining = c.Length
		return true
	}
	return false
}

// tickCountdown advances the sample-period countdown by one colour clock;
// called unconditionally each colour clock regardless of whether this
// channel won the bus.
func (c *AudioChannel) tickCountdown() {
	if c.countdown > 0 {
		c.countdown--
	}
}

// Sample returns the channel's most recently produced signed 8-bit sample.
func (c *AudioChannel) Sample() int8 { return c.lastSample }

func scaleVolume(raw int8, volume uint8) int8 {
	if volume > 64 {
		volume = 64
	}
	return int8((int32(raw) * int32(volume)) / 64)
}

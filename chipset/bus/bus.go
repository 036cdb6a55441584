// Package bus defines the small set of cross-component contracts that let
// memory, agnus, blitter, denise and paula refer to each other without
// importing each other -- the language-neutral restatement, per spec.md §9,
// of the source's bidirectional object pointers: a single owning container
// (chipset.Amiga) holds every subsystem, and each subsystem addresses its
// siblings through a narrow interface like the ones here rather than a
// concrete type, which would create an import cycle.
package bus

// Owner identifies which client currently holds a color clock's bus slot.
// Exactly one owner is recorded per color clock (spec.md §3).
type Owner int

const (
	None Owner = iota
	CPU
	Copper
	Blitter
	Bitplane
	Sprite
	Disk
	Audio
	Refresh
)

func (o Owner) String() string {
	switch o {
	case None:
		return "NONE"
	case CPU:
		return "CPU"
	case Copper:
		return "COPPER"
	case Blitter:
		return "BLITTER"
	case Bitplane:
		return "BITPLANE"
	case Sprite:
		return "SPRITE"
	case Disk:
		return "DISK"
	case Audio:
		return "AUDIO"
	case Refresh:
		return "REFRESH"
	default:
		return "?"
	}
}

// Arbiter is implemented by the DMA arbiter (agnus). TryAllocate attempts to
// claim the current color clock's bus slot for owner, returning true once
// granted. IsFree reports whether the current color clock has no DMA owner
// at all, for clients (BUSIDLE micro-instructions) that only need the bus to
// be quiet rather than owning it themselves.
type Arbiter interface {
	TryAllocate(owner Owner) bool
	IsFree() bool
}

// ClockAdvancer advances the whole machine by one color clock. The memory
// decoder's CPU path uses this to implement the cooperative bus-wait of
// spec.md §5: it loops calling AdvanceOneColorClock until the arbiter grants
// a slot, which is indistinguishable from blocking as far as the guest CPU
// is concerned.
type ClockAdvancer interface {
	AdvanceOneColorClock()
}

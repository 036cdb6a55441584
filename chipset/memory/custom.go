package memory

import "github.com/agnusemu/amiga500/logger"

// WriteSemantics classifies how a custom register reacts to a CPU write.
type WriteSemantics int

const (
	// WriteDirect applies immediately to the register's raw storage, then
	// invokes any registered handler. Most registers behave this way.
	WriteDirect WriteSemantics = iota
	// WriteStrobe ignores the written value and only invokes the handler
	// (e.g. COPJMP1/2, which just restart the Copper from a pointer).
	WriteStrobe
)

// ReadSemantics classifies how a custom register reacts to a CPU read.
type ReadSemantics int

const (
	// ReadDirect returns the register's raw storage, or the handler's
	// result if one is registered.
	ReadDirect ReadSemantics = iota
	// ReadQuirk is the default for write-only or non-existent registers:
	// spec.md §4.a's documented hardware quirk.
	ReadQuirk
)

// BusSnapshot lets the register file implement the read-quirk of spec.md
// §4.a ("the last value that passed on the bus... else 0xFFFF"), without
// memory needing to import agnus.
type BusSnapshot interface {
	// LastBusValue reports the most recent value driven onto the bus by a
	// DMA slot at the current color clock, and whether any DMA owner in
	// fact held the bus at that clock.
	LastBusValue() (value uint16, ownedByDMA bool)
}

type registerDesc struct {
	write WriteSemantics
	read  ReadSemantics
}

// RegisterFile is the ~230-entry custom register file of spec.md §3. All
// offsets are even (16-bit registers at $000-$1FE), so it is indexed
// internally by offset/2.
type RegisterFile struct {
	raw   [0x100]uint16
	descs map[uint16]registerDesc

	writeHandlers map[uint16]func(old, new uint16)
	readHandlers  map[uint16]func() uint16

	bus BusSnapshot

	warnedUnimplemented map[uint16]bool
}

// NewRegisterFile creates an empty register file. Components register
// their own offsets via Describe/OnWrite/OnRead during wiring.
func NewRegisterFile(bus BusSnapshot) *RegisterFile {
	return &RegisterFile{
		descs:               make(map[uint16]registerDesc),
		writeHandlers:       make(map[uint16]func(old, new uint16)),
		readHandlers:        make(map[uint16]func() uint16),
		bus:                 bus,
		warnedUnimplemented: make(map[uint16]bool),
	}
}

// Describe declares the read/write semantics of a register. Registers not
// described default to {WriteDirect, ReadQuirk} -- i.e. writable but
// returning the bus-value quirk on read, matching "write-only or
// non-existent" in spec.md §4.a.
func (r *RegisterFile) Describe(offset uint16, write WriteSemantics, read ReadSemantics) {
	r.descs[offset] = registerDesc{write: write, read: read}
}

// OnWrite registers a side-effect handler invoked after a CPU write reaches
// offset, with the previous and new raw values.
func (r *RegisterFile) OnWrite(offset uint16, f func(old, new uint16)) {
	r.writeHandlers[offset] = f
}

// OnRead registers a handler that computes the value returned for a read of
// offset, overriding raw storage. Used for registers like VPOSR/VHPOSR that
// are not simple storage cells.
func (r *RegisterFile) OnRead(offset uint16, f func() uint16) {
	r.readHandlers[offset] = f
}

// Peek returns the raw stored value without triggering read semantics or
// side effects (spec.md §4.a "spy" variant).
func (r *RegisterFile) Peek(offset uint16) uint16 {
	return r.raw[(offset>>1)&0xFF]
}

// Write performs a CPU write to offset.
func (r *RegisterFile) Write(offset uint16, value uint16) {
	desc := r.descs[offset]
	idx := (offset >> 1) & 0xFF
	old := r.raw[idx]

	if desc.write == WriteDirect {
		r.raw[idx] = value
	}

	if h := r.writeHandlers[offset]; h != nil {
		h(old, value)
	}
}

// Read performs a CPU read of offset, applying the documented quirk for
// write-only/non-existent registers: it returns (and writes back) the last
// DMA bus value if a DMA owner held the bus this color clock, else 0xFFFF.
func (r *RegisterFile) Read(offset uint16) uint16 {
	desc, described := r.descs[offset]
	if !described {
		desc.read = ReadQuirk
	}

	if h := r.readHandlers[offset]; h != nil {
		return h()
	}

	if desc.read == ReadDirect {
		return r.raw[(offset>>1)&0xFF]
	}

	// ReadQuirk.
	var value uint16 = 0xFFFF
	if r.bus != nil {
		if v, owned := r.bus.LastBusValue(); owned {
			value = v
		}
	}

	if !r.warnedUnimplemented[offset] {
		r.warnedUnimplemented[offset] = true
		logger.Logf(logger.Allow, "memory", "read of write-only/unimplemented register %#04x returns bus-value quirk %#04x", offset, value)
	}

	// The quirk also writes the returned value back into the register
	// (spec.md §4.a), which is how guest software sometimes uses reads of
	// write-only registers as a side-channel write.
	idx := (offset >> 1) & 0xFF
	r.raw[idx] = value
	if h := r.writeHandlers[offset]; h != nil {
		h(r.raw[idx], value)
	}

	return value
}

// Package cpuglue is the CPU collaborator glue of spec.md §4.i: it owns
// the pending interrupt level, routes the guest CPU's memory accesses
// through chipset/memory, and keeps a trace buffer for debugging. Grounded
// on hardware/vcs.go's VCS.Step, which drives the teacher's own CPU through
// a callback-shaped memory/video collaborator rather than a monolithic
// struct; here the collaborator is an interface instead of a concrete
// memory.VCSMemory, since the guest CPU type itself is out of scope
// (spec.md §1: "the 68k-family instruction decoder").
package cpuglue

// Executor executes exactly one guest instruction and reports how many
// colour clocks it consumed, per spec.md §4.j step 1. InterruptLevel tells
// the executor the pending interrupt level to honor before fetch (spec.md
// §4.i point 1).
type Executor interface {
	Execute(interruptLevel int) (colorClocks int)
	PC() uint32
	SP() uint32
	Snapshot() []byte
	Restore(data []byte) error
}

// Memory is the subset of chipset/memory.Bus the glue routes CPU accesses
// through (spec.md §4.i point 2).
type Memory interface {
	Read8(addr uint32) uint8
	Write8(addr uint32, v uint8)
	Read16(addr uint32) uint16
	Write16(addr uint32, v uint16)
	Read32(addr uint32) uint32
	Write32(addr uint32, v uint32)
}

// Glue wires an Executor to chipset/memory and to Paula's interrupt level,
// maintaining the trace buffer of spec.md §4.i point 3.
type Glue struct {
	cpu   Executor
	mem   Memory
	trace *Trace

	pendingLevel int
}

// New returns a Glue driving cpu through mem, with a trace buffer holding
// the last traceDepth executed instructions.
func New(cpu Executor, mem Memory, traceDepth int) *Glue {
	return &Glue{
		cpu:   cpu,
		mem:   mem,
		trace: NewTrace(traceDepth),
	}
}

// Memory exposes the routed memory collaborator, for components (disk DMA,
// audio DMA) that share the same Chip-RAM access path as the CPU.
func (g *Glue) Memory() Memory { return g.mem }

// SetInterruptLevel records the pending interrupt level the next Step will
// honor before fetch. The orchestrator calls this whenever
// paula.Interrupts.OnLevelChange fires (spec.md §4.h: "Level changes are
// pushed to the CPU glue, which raises them between instructions").
func (g *Glue) SetInterruptLevel(level int) {
	g.pendingLevel = level
}

// Step executes exactly one guest instruction, honoring the pending
// interrupt level, and records the resulting PC/SP into the trace buffer.
// It returns the number of colour clocks the instruction consumed, which
// the orchestrator uses to advance Agnus by the matching amount (spec.md
// §4.j step 2).
func (g *Glue) Step() (colorClocks int) {
	colorClocks = g.cpu.Execute(g.pendingLevel)
	g.trace.Record(g.cpu.PC(), g.cpu.SP())
	return colorClocks
}

// Snapshot and Restore serialise/restore the CPU's opaque context as a
// byte blob (spec.md §4.i point 4); the glue does not interpret the bytes,
// it only forwards them to the Executor.
func (g *Glue) Snapshot() []byte          { return g.cpu.Snapshot() }
func (g *Glue) Restore(data []byte) error { return g.cpu.Restore(data) }

// Trace returns the glue's trace buffer, for inspection by diagnostics.
func (g *Glue) Trace() *Trace { return g.trace }

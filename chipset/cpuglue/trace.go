package cpuglue

// TraceEntry is one recorded instruction boundary: the PC and SP the CPU
// reported immediately after executing an instruction.
type TraceEntry struct {
	PC uint32
	SP uint32
}

// Trace is a fixed-size ring buffer of the last N executed instructions'
// PC/SP, per spec.md §4.i point 3. Grounded on the teacher's disassembly
// history idiom (a bounded trail kept for the debugger) generalised to a
// plain ring since this core has no debugger UI of its own.
type Trace struct {
	entries []TraceEntry
	next    int
	count   int
}

// NewTrace returns a Trace retaining up to depth entries. depth <= 0
// behaves as a trace of zero capacity (Record is a no-op).
func NewTrace(depth int) *Trace {
	if depth < 0 {
		depth = 0
	}
	return &Trace{entries: make([]TraceEntry, depth)}
}

// Record appends one instruction boundary, overwriting the oldest entry
// once the buffer is full.
func (t *Trace) Record(pc, sp uint32) {
	if len(t.entries) == 0 {
		return
	}
	t.entries[t.next] = TraceEntry{PC: pc, SP: sp}
	t.next = (t.next + 1) % len(t.entries)
	if t.count < len(t.entries) {
		t.count++
	}
}

// Entries returns the retained entries in oldest-to-newest order.
func (t *Trace) Entries() []TraceEntry {
	if t.count < len(t.entries) {
		out := make([]TraceEntry, t.count)
		copy(out, t.entries[:t.count])
		return out
	}
	out := make([]TraceEntry, len(t.entries))
	copy(out, t.entries[t.next:])
	copy(out[len(t.entries)-t.next:], t.entries[:t.next])
	return out
}

// Len returns the number of retained entries.
func (t *Trace) Len() int { return t.count }

// Last returns the most recently recorded PC/SP, or the zero value if
// nothing has been recorded yet.
func (t *Trace) Last() (pc, sp uint32) {
	if t.count == 0 {
		return 0, 0
	}
	idx := (t.next - 1 + len(t.entries)) % len(t.entries)
	e := t.entries[idx]
	return e.PC, e.SP
}

package cpuglue

import (
	"errors"
	"testing"

	"github.com/agnusemu/amiga500/internal/testhelp"
)

type fakeExecutor struct {
	pc, sp      uint32
	lastLevel   int
	clocksEach  int
	snapshotted []byte
}

func (f *fakeExecutor) Execute(interruptLevel int) int {
	f.lastLevel = interruptLevel
	f.pc += 2
	f.sp += 1
	return f.clocksEach
}
func (f *fakeExecutor) PC() uint32 { return f.pc }
func (f *fakeExecutor) SP() uint32 { return f.sp }
func (f *fakeExecutor) Snapshot() []byte {
	return append([]byte(nil), f.snapshotted...)
}
func (f *fakeExecutor) Restore(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty snapshot")
	}
	f.snapshotted = append([]byte(nil), data...)
	return nil
}

type fakeMemory struct{}

func (fakeMemory) Read8(addr uint32) uint8    { return 0 }
func (fakeMemory) Write8(addr uint32, v uint8) {}
func (fakeMemory) Read16(addr uint32) uint16   { return 0 }
func (fakeMemory) Write16(addr uint32, v uint16) {}
func (fakeMemory) Read32(addr uint32) uint32   { return 0 }
func (fakeMemory) Write32(addr uint32, v uint32) {}

func TestStepHonorsPendingInterruptLevelBeforeFetch(t *testing.T) {
	exec := &fakeExecutor{clocksEach: 4}
	g := New(exec, fakeMemory{}, 4)

	g.SetInterruptLevel(3)
	clocks := g.Step()

	testhelp.ExpectEquality(t, exec.lastLevel, 3)
	testhelp.ExpectEquality(t, clocks, 4)
}

func TestStepRecordsPCAndSPIntoTrace(t *testing.T) {
	exec := &fakeExecutor{pc: 0x1000, sp: 0xF000, clocksEach: 4}
	g := New(exec, fakeMemory{}, 4)

	g.Step()
	g.Step()

	entries := g.Trace().Entries()
	testhelp.ExpectEquality(t, len(entries), 2)
	testhelp.ExpectEquality(t, entries[0].PC, uint32(0x1002))
	testhelp.ExpectEquality(t, entries[1].PC, uint32(0x1004))
}

func TestTraceRingBufferEvictsOldest(t *testing.T) {
	trace := NewTrace(2)

	trace.Record(1, 1)
	trace.Record(2, 2)
	trace.Record(3, 3)

	entries := trace.Entries()
	testhelp.ExpectEquality(t, len(entries), 2)
	testhelp.ExpectEquality(t, entries[0].PC, uint32(2))
	testhelp.ExpectEquality(t, entries[1].PC, uint32(3))
}

func TestTraceZeroDepthRecordsNothing(t *testing.T) {
	trace := NewTrace(0)
	trace.Record(1, 1)
	testhelp.ExpectEquality(t, trace.Len(), 0)
}

func TestSnapshotRoundTrip(t *testing.T) {
	exec := &fakeExecutor{snapshotted: []byte{1, 2, 3}}
	g := New(exec, fakeMemory{}, 4)

	blob := g.Snapshot()
	testhelp.ExpectEquality(t, len(blob), 3)

	err := g.Restore(blob)
	testhelp.ExpectSuccess(t, err == nil)
}

func TestRestoreRejectsEmptySnapshot(t *testing.T) {
	exec := &fakeExecutor{}
	g := New(exec, fakeMemory{}, 4)

	err := g.Restore(nil)
	testhelp.ExpectFailure(t, err == nil)
}

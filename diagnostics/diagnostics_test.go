package diagnostics_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agnusemu/amiga500/chipset"
	"github.com/agnusemu/amiga500/config"
	"github.com/agnusemu/amiga500/diagnostics"
	"github.com/agnusemu/amiga500/display"
	"github.com/agnusemu/amiga500/internal/testhelp"
)

type fakeExecutor struct {
	pc, sp uint32
}

func (f *fakeExecutor) Execute(interruptLevel int) int { f.pc += 2; return 4 }
func (f *fakeExecutor) PC() uint32                     { return f.pc }
func (f *fakeExecutor) SP() uint32                     { return f.sp }
func (f *fakeExecutor) Snapshot() []byte               { return nil }
func (f *fakeExecutor) Restore(data []byte) error      { return nil }

func testSpec() display.Spec {
	return display.Spec{ID: "TEST", HTotal: 30, VTotal: 6, LongFrameWidth: 30, LongFrameHeight: 6}
}

func newTestAmiga(t *testing.T) *chipset.Amiga {
	t.Helper()
	a, err := chipset.New(config.Default(), testSpec(), &fakeExecutor{})
	testhelp.ExpectSuccess(t, err == nil)
	return a
}

func TestSnapshotReflectsIdleMachine(t *testing.T) {
	a := newTestAmiga(t)

	info := diagnostics.Snapshot(a)

	testhelp.ExpectEquality(t, info.BeamH, 0)
	testhelp.ExpectEquality(t, info.BeamV, 0)
	testhelp.ExpectEquality(t, info.BlitterBusy, false)
	testhelp.ExpectEquality(t, info.BusOwner, "NONE")
}

func TestDumpWritesGraphvizOfSnapshot(t *testing.T) {
	a := newTestAmiga(t)
	info := diagnostics.Snapshot(a)

	var buf bytes.Buffer
	err := diagnostics.Dump(&buf, info)
	testhelp.ExpectSuccess(t, err == nil)
	testhelp.ExpectEquality(t, strings.Contains(buf.String(), "digraph"), true)
}

func TestMachineInfoStringIsHumanReadable(t *testing.T) {
	a := newTestAmiga(t)
	info := diagnostics.Snapshot(a)

	testhelp.ExpectEquality(t, strings.Contains(info.String(), "beam="), true)
}

package chipset

import (
	"bytes"
	"errors"
	"testing"

	"github.com/agnusemu/amiga500/config"
	"github.com/agnusemu/amiga500/display"
	"github.com/agnusemu/amiga500/internal/testhelp"
	"github.com/agnusemu/amiga500/message"
)

// fakeExecutor is a minimal cpuglue.Executor stand-in, advancing PC by 2
// each step and never faulting.
type fakeExecutor struct {
	pc, sp     uint32
	clocksEach int
	blob       []byte
}

func (f *fakeExecutor) Execute(interruptLevel int) int {
	f.pc += 2
	f.sp += 4
	return f.clocksEach
}
func (f *fakeExecutor) PC() uint32 { return f.pc }
func (f *fakeExecutor) SP() uint32 { return f.sp }
func (f *fakeExecutor) Snapshot() []byte {
	return append([]byte(nil), f.blob...)
}
func (f *fakeExecutor) Restore(data []byte) error {
	if data == nil {
		return errors.New("nil snapshot")
	}
	f.blob = append([]byte(nil), data...)
	return nil
}

func testSpec() display.Spec {
	return display.Spec{ID: "TEST", HTotal: 30, VTotal: 6, LongFrameWidth: 30, LongFrameHeight: 6}
}

func newTestAmiga(t *testing.T) *Amiga {
	t.Helper()
	a, err := New(config.Default(), testSpec(), &fakeExecutor{clocksEach: 4, blob: []byte{0xAA}})
	testhelp.ExpectSuccess(t, err == nil)
	return a
}

func TestNewLeavesAmigaPoweredOff(t *testing.T) {
	a := newTestAmiga(t)
	testhelp.ExpectEquality(t, a.State(), message.PoweredOff)
}

func TestPowerOnTransitionsToPaused(t *testing.T) {
	a := newTestAmiga(t)
	a.PowerOn()
	testhelp.ExpectEquality(t, a.State(), message.Paused)
}

func TestRunRefusedWhilePoweredOff(t *testing.T) {
	a := newTestAmiga(t)
	err := a.Run(nil)
	testhelp.ExpectFailure(t, err == nil)
}

func TestRunStopsWhenContinueCheckErrors(t *testing.T) {
	a := newTestAmiga(t)
	a.PowerOn()

	steps := 0
	stop := errors.New("stop")
	err := a.Run(func() error {
		steps++
		if steps >= 3 {
			return stop
		}
		return nil
	})

	testhelp.ExpectEquality(t, err, stop)
	testhelp.ExpectEquality(t, steps, 3)
	testhelp.ExpectEquality(t, a.State(), message.Paused)
}

func TestPauseStopsRunLoop(t *testing.T) {
	a := newTestAmiga(t)
	a.PowerOn()

	steps := 0
	err := a.Run(func() error {
		steps++
		if steps == 2 {
			a.Pause()
		}
		return nil
	})

	testhelp.ExpectSuccess(t, err == nil)
	testhelp.ExpectEquality(t, steps, 2)
	testhelp.ExpectEquality(t, a.State(), message.Paused)
}

func TestSuspendResumeNestsCorrectly(t *testing.T) {
	a := newTestAmiga(t)
	a.PowerOn()
	a.state = message.Running

	a.suspend()
	a.suspend()
	testhelp.ExpectEquality(t, a.State(), message.Paused)

	a.resume()
	testhelp.ExpectEquality(t, a.State(), message.Paused)

	a.resume()
	testhelp.ExpectEquality(t, a.State(), message.Running)
}

func TestResetRestoresDMACONToZero(t *testing.T) {
	a := newTestAmiga(t)
	a.Agnus.SetDMACON(0x8200)
	testhelp.ExpectSuccess(t, a.Agnus.DMACONR()&0x0200 != 0)

	err := a.Reset()
	testhelp.ExpectSuccess(t, err == nil)
	testhelp.ExpectEquality(t, a.Agnus.DMACONR()&0x0200, uint16(0))
}

func TestSaveLoadSnapshotRoundTrip(t *testing.T) {
	a := newTestAmiga(t)
	a.Agnus.SetDMACON(0x8200)

	var buf bytes.Buffer
	err := a.SaveSnapshot(&buf, 1234567890)
	testhelp.ExpectSuccess(t, err == nil)

	b := newTestAmiga(t)
	err = b.LoadSnapshot(bytes.NewReader(buf.Bytes()))
	testhelp.ExpectSuccess(t, err == nil)
	testhelp.ExpectEquality(t, b.Agnus.DMACONR()&0x0200, a.Agnus.DMACONR()&0x0200)
}

func TestLoadSnapshotRejectsBadMagic(t *testing.T) {
	a := newTestAmiga(t)
	err := a.LoadSnapshot(bytes.NewReader([]byte("not a snapshot at all")))
	testhelp.ExpectFailure(t, err == nil)
}

func TestLoadSnapshotRejectsVersionMismatch(t *testing.T) {
	a := newTestAmiga(t)
	var buf bytes.Buffer
	testhelp.ExpectSuccess(t, a.SaveSnapshot(&buf, 0) == nil)

	corrupted := buf.Bytes()
	// major version lives immediately after the 4-byte magic.
	corrupted[4] = 0xFF
	err := a.LoadSnapshot(bytes.NewReader(corrupted))
	testhelp.ExpectFailure(t, err == nil)
}

func TestInspectReportsBeamPosition(t *testing.T) {
	a := newTestAmiga(t)
	insp := a.Inspect()
	testhelp.ExpectEquality(t, insp.BeamH, 0)
	testhelp.ExpectEquality(t, insp.BeamV, 0)
}

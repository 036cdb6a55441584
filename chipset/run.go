package chipset

import (
	"fmt"

	"github.com/agnusemu/amiga500/chipset/agnus"
	"github.com/agnusemu/amiga500/chipset/blitter"
	"github.com/agnusemu/amiga500/chipset/denise"
	"github.com/agnusemu/amiga500/chipset/memory"
	"github.com/agnusemu/amiga500/chipset/paula"
	"github.com/agnusemu/amiga500/message"
)

// PowerOn transitions a freshly-built Amiga from PoweredOff to Paused,
// per spec.md §6. Powering on an already-powered Amiga is a no-op, since
// New already leaves every subsystem in its reset state.
func (a *Amiga) PowerOn() {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	if a.state != message.PoweredOff {
		return
	}
	a.state = message.Paused
	a.Messages.Post(message.PowerOn)
}

// PowerOff transitions the Amiga back to PoweredOff, stopping the run loop
// if it is currently executing.
func (a *Amiga) PowerOff() {
	a.stopRequested.Store(true)
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	a.state = message.PoweredOff
	a.Messages.Post(message.PowerOff)
}

// Reset reinitialises every chipset-owned subsystem's persistent state to
// its power-on values, by constructing a throwaway instance of each
// subsystem and restoring its snapshot into the live one -- this way reset
// values live in exactly one place, the subsystem's own constructor,
// rather than being duplicated into a second hand-written reset path. The
// 68k-family instruction decoder itself is out of scope (spec.md §1), so
// resetting the CPU's own registers/PC is the host Executor's
// responsibility; only chipset state is touched here.
func (a *Amiga) Reset() error {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()

	spec := a.Buffers.Spec()

	freshDecoder := memory.NewDecoder(a.Config)
	if err := a.Decoder.Restore(freshDecoder.Snapshot()); err != nil {
		return fmt.Errorf("chipset: reset: %w", err)
	}

	freshRegisters := memory.NewRegisterFile(a.Bus)
	if err := a.Registers.Restore(freshRegisters.Snapshot()); err != nil {
		return fmt.Errorf("chipset: reset: %w", err)
	}

	freshAgnus := agnus.New(spec, a.Bus)
	if err := a.Agnus.Restore(freshAgnus.Snapshot()); err != nil {
		return fmt.Errorf("chipset: reset: %w", err)
	}

	freshBlitter := blitter.New(a.Bus)
	if err := a.Blitter.Restore(freshBlitter.Snapshot()); err != nil {
		return fmt.Errorf("chipset: reset: %w", err)
	}

	freshDenise := denise.New(spec, a.Buffers)
	if err := a.Denise.Restore(freshDenise.Snapshot()); err != nil {
		return fmt.Errorf("chipset: reset: %w", err)
	}

	freshPaula := paula.New(a.Bus, 0)
	if err := a.Paula.Restore(freshPaula.Snapshot()); err != nil {
		return fmt.Errorf("chipset: reset: %w", err)
	}

	a.Messages.Post(message.Reset)
	return nil
}

// suspend pauses the run loop and records the pre-suspend state, so a
// caller can safely mutate guest state (e.g. to load a snapshot) without
// racing the run loop. Nested suspend()/resume() pairs are supported: only
// the outermost pair actually changes state, per spec.md §5's "a monotonic
// suspendCounter makes these reentrant."
func (a *Amiga) suspend() {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	if a.suspendCounter == 0 {
		a.preSuspendState = a.state
		if a.state == message.Running {
			a.stopRequested.Store(true)
		}
		a.state = message.Paused
	}
	a.suspendCounter++
}

// resume reverses the innermost suspend(). The Amiga only returns to its
// pre-suspend state once every nested suspend() call has a matching
// resume().
func (a *Amiga) resume() {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	if a.suspendCounter == 0 {
		return
	}
	a.suspendCounter--
	if a.suspendCounter == 0 {
		a.state = a.preSuspendState
		a.stopRequested.Store(false)
	}
}

// Run drives the CPU/Agnus co-routine described in spec.md §4.j until
// Pause, PowerOff or suspend() is called from another goroutine, or the
// supplied continueCheck rejects continuation. It is grounded on
// hardware/run.go's VCS.Run: a videoCycle-style callback would be
// overkill here since Agnus already owns every collaborator that would
// otherwise need callback access, so the loop instead advances Agnus one
// colour clock at a time for every colour clock the CPU step consumed.
func (a *Amiga) Run(continueCheck func() error) error {
	a.stateMu.Lock()
	if a.state == message.PoweredOff {
		a.stateMu.Unlock()
		return fmt.Errorf("chipset: cannot run while powered off")
	}
	a.state = message.Running
	a.stateMu.Unlock()
	a.stopRequested.Store(false)
	a.Messages.Post(message.Run)

	for {
		if a.stopRequested.Load() {
			break
		}

		a.runMu.Lock()
		colorClocks := a.Glue.Step()
		for i := 0; i < colorClocks; i++ {
			a.Agnus.AdvanceOneColorClock()
			a.Paula.TickCountdowns()
			a.Perf.NoteSlot(a.Agnus.Arbiter.Owner())
		}
		a.runMu.Unlock()

		if continueCheck != nil {
			if err := continueCheck(); err != nil {
				a.Pause()
				return err
			}
		}
	}

	a.stopRequested.Store(false)
	return nil
}

// Pause stops a running Run loop after its current instruction completes.
func (a *Amiga) Pause() {
	a.stopRequested.Store(true)
	a.stateMu.Lock()
	if a.state == message.Running {
		a.state = message.Paused
	}
	a.stateMu.Unlock()
	a.Messages.Post(message.Pause)
}

// State reports the orchestrator's current run state.
func (a *Amiga) State() message.State {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	return a.state
}

// Inspection is a point-in-time, host-safe copy of the state a debugger or
// overlay wants to read without racing the run loop: the beam position and
// the executed-instruction trace (spec.md §5's "inspect snapshot
// structures").
type Inspection struct {
	BeamH, BeamV int
	PC, SP       uint32
}

// Inspect takes a consistent snapshot of debugger-visible state. It is
// safe to call from any goroutine while Run is executing: runMu is held
// only long enough to read the beam position and the CPU's last recorded
// PC/SP, never across a full colour clock or instruction step.
func (a *Amiga) Inspect() Inspection {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	pc, sp := a.Glue.Trace().Last()
	return Inspection{
		BeamH: a.Agnus.Beam.H(),
		BeamV: a.Agnus.Beam.V(),
		PC:    pc,
		SP:    sp,
	}
}

// Package agnus implements the DMA arbiter, colour-clock event scheduler,
// raster beam and Copper of spec.md §4.b-e, grounded on the teacher's
// hardware/tia/future package: a Ticker holding a pool of reusable Events,
// each counting down a remainingCycles field once per tick until it fires
// its payload. Here a single Scheduler plays the Ticker's role, generalised
// from "TIA signal changes arrive one cycle after being written" to the
// wider set of pipeline-delayed effects spec.md §9 calls out: register
// writes that only take effect several colour clocks after the CPU write
// that caused them, and DMA channel completions.
package agnus

import "container/list"

// Event is a single pending action, counting down once per colour clock.
type Event struct {
	label           string
	remainingCycles int
	payload         func()
	active          bool
}

// RemainingCycles reports how many colour clocks remain before payload
// fires.
func (e *Event) RemainingCycles() int { return e.remainingCycles }

// AboutToFire is true if the event resolves on the next Tick.
func (e *Event) AboutToFire() bool { return e.remainingCycles == 0 }

// Drop cancels the event without running its payload.
func (e *Event) Drop() { e.active = false }

// Scheduler holds every pending delayed event. Components call Schedule
// when a register write's effect must be deferred; Agnus calls Tick once
// per colour clock.
type Scheduler struct {
	events list.List
}

// NewScheduler returns an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule arranges for payload to run after delay colour clocks. A delay
// of 0 runs payload on the very next Tick; a negative delay runs it
// immediately and returns nil.
func (s *Scheduler) Schedule(delay int, label string, payload func()) *Event {
	if delay < 0 {
		payload()
		return nil
	}
	e := &Event{label: label, remainingCycles: delay, payload: payload, active: true}
	s.events.PushBack(e)
	return e
}

// Tick advances every pending event by one colour clock, running and
// removing any whose countdown reaches zero.
func (s *Scheduler) Tick() {
	el := s.events.Front()
	for el != nil {
		next := el.Next()
		e := el.Value.(*Event)
		if !e.active {
			s.events.Remove(el)
			el = next
			continue
		}
		if e.remainingCycles == 0 {
			e.payload()
			e.active = false
			s.events.Remove(el)
		} else {
			e.remainingCycles--
		}
		el = next
	}
}

// Pending reports how many events are still queued, for diagnostics and
// snapshot consistency checks.
func (s *Scheduler) Pending() int {
	return s.events.Len()
}

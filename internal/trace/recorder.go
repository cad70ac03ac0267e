package trace

import (
	"github.com/roach88/odo/internal/counter"
	"github.com/roach88/odo/internal/event"
)

// EventKind distinguishes trace event types.
type EventKind string

const (
	// EventAdvance records one chain-level step and the snapshot the
	// chain settled on after the step's whole cascade completed.
	EventAdvance EventKind = "advance"

	// EventCarry records a digit wrapping during a step's cascade.
	EventCarry EventKind = "carry"

	// EventCycle records the chain's own reset: every digit wrapped.
	EventCycle EventKind = "cycle"
)

// Event is a single entry in a recorded trace.
//
// Cascade events (carry, cycle) carry lower seq numbers than the advance
// event of their step: the cascade completes before the step does.
type Event struct {
	Seq  int64
	Kind EventKind

	// Step is the 1-based chain advance this event belongs to.
	Step int

	// Digit is the wrapped digit's index (carry events only).
	Digit int

	// Value is the wrapped digit's post-wrap value (carry events only).
	Value int

	// Snapshot holds digit values, least-significant first (advance and
	// cycle events).
	Snapshot []int
}

// Trace is a completed recording: a run token plus the ordered events.
type Trace struct {
	Token  string
	Events []Event
}

// Cycles returns the number of chain-level resets in the trace.
func (t Trace) Cycles() int {
	n := 0
	for _, e := range t.Events {
		if e.Kind == EventCycle {
			n++
		}
	}
	return n
}

// Carries returns per-digit wrap counts, least-significant first.
func (t Trace) Carries(digits int) []int {
	counts := make([]int, digits)
	for _, e := range t.Events {
		if e.Kind == EventCarry && e.Digit < digits {
			counts[e.Digit]++
		}
	}
	return counts
}

// Recorder drives a chain and records every observable event.
//
// The recorder subscribes one listener per digit (for carries) and one
// on the chain itself (for cycles). Detach removes them all; a detached
// recorder leaves the chain's subscriber sets exactly as it found them.
type Recorder struct {
	chain     *counter.Chain
	clock     *Clock
	token     string
	step      int
	events    []Event
	listeners []func()
}

// NewRecorder attaches a recorder to ch. The run token is drawn from
// gen once, at attach time.
func NewRecorder(ch *counter.Chain, gen TokenGenerator) *Recorder {
	r := &Recorder{
		chain: ch,
		clock: NewClock(),
		token: gen.Generate(),
	}

	for i := 0; i < ch.Len(); i++ {
		digit := i
		l := event.Func(func(value int) {
			r.events = append(r.events, Event{
				Seq:   r.clock.Next(),
				Kind:  EventCarry,
				Step:  r.step,
				Digit: digit,
				Value: value,
			})
		})
		d := ch.Digit(i)
		_ = d.OnReset(l)
		r.listeners = append(r.listeners, func() { d.OffReset(l) })
	}

	cycle := event.Func(func(snapshot []int) {
		r.events = append(r.events, Event{
			Seq:      r.clock.Next(),
			Kind:     EventCycle,
			Step:     r.step,
			Snapshot: snapshot,
		})
	})
	_ = ch.OnReset(cycle)
	r.listeners = append(r.listeners, func() { ch.OffReset(cycle) })

	return r
}

// Token returns the run token.
func (r *Recorder) Token() string {
	return r.token
}

// Step advances the chain once, recording the cascade it causes and the
// snapshot it settles on.
func (r *Recorder) Step() {
	r.step++
	r.chain.Advance()
	r.events = append(r.events, Event{
		Seq:      r.clock.Next(),
		Kind:     EventAdvance,
		Step:     r.step,
		Snapshot: r.chain.Current(),
	})
}

// Run advances the chain n times.
func (r *Recorder) Run(n int) {
	for i := 0; i < n; i++ {
		r.Step()
	}
}

// Trace returns the recording so far.
func (r *Recorder) Trace() Trace {
	events := make([]Event, len(r.events))
	copy(events, r.events)
	return Trace{Token: r.token, Events: events}
}

// Detach removes every subscription the recorder installed. Further
// chain advances are no longer recorded.
func (r *Recorder) Detach() {
	for _, remove := range r.listeners {
		remove()
	}
	r.listeners = nil
}

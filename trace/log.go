// Package trace records what a solver did as an ordered list of typed
// events: pivots, relaxations, branches, prunes, cuts, incumbent updates.
//
// Engines append to a *Log; they never format text. A nil *Log is valid and
// discards everything, so engines emit unconditionally. Rendering is a
// separate concern (Format), as is mirroring events into a structured logger
// (SlogSink).
package trace

import (
	"github.com/google/uuid"
)

// Sink receives every event as it is emitted.
type Sink func(runID uuid.UUID, e Event)

// Log is an append-only event list for one solver run.
type Log struct {
	runID  uuid.UUID
	method string
	events []Event
	sinks  []Sink
}

// NewLog starts a log for one run of method ("simplex", "branch-and-bound",
// ...). Every log gets a fresh random run id.
func NewLog(method string, sinks ...Sink) *Log {
	return &Log{runID: uuid.New(), method: method, sinks: sinks}
}

// RunID identifies the run across log lines and metrics exemplars.
func (l *Log) RunID() uuid.UUID {
	if l == nil {
		return uuid.Nil
	}

	return l.runID
}

// Method returns the name given to NewLog.
func (l *Log) Method() string {
	if l == nil {
		return ""
	}

	return l.method
}

// Emit appends e and forwards it to every sink.
func (l *Log) Emit(e Event) {
	if l == nil {
		return
	}
	l.events = append(l.events, e)
	for _, s := range l.sinks {
		s(l.runID, e)
	}
}

// Events returns the recorded events in order. The slice is shared.
func (l *Log) Events() []Event {
	if l == nil {
		return nil
	}

	return l.events
}

// Len is the number of recorded events.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}

	return len(l.events)
}

// Filter returns the events of kind k, in order.
func (l *Log) Filter(k Kind) []Event {
	var out []Event
	for _, e := range l.Events() {
		if e.Kind() == k {
			out = append(out, e)
		}
	}

	return out
}

// Count returns how many events of kind k were recorded.
func (l *Log) Count(k Kind) int {
	var c int
	for _, e := range l.Events() {
		if e.Kind() == k {
			c++
		}
	}

	return c
}

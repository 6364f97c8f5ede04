package timekeeper

import "time"

// Phase is one half of the 20-20-20 alternation.
type Phase string

const (
	PhaseContinuous Phase = "continuous"
	PhaseBreak      Phase = "break"
)

// Next returns the phase that follows when a countdown completes.
func (phase Phase) Next() Phase {
	if phase == PhaseBreak {
		return PhaseContinuous
	}
	return PhaseBreak
}

// Label returns the text shown next to the remaining time.
func (phase Phase) Label() string {
	if phase == PhaseBreak {
		return "Look 20 feet away"
	}
	return "Keep working"
}

// State is a snapshot of the timer. Remaining and Total are only meaningful
// while Running is true.
type State struct {
	Phase       Phase
	Remaining   time.Duration
	Total       time.Duration
	Running     bool
	CountdownID string
	Cycle       int
}

// StoppedState returns the canonical idle state.
func StoppedState() State {
	return State{Phase: PhaseContinuous}
}

// Progress returns the elapsed fraction of the active countdown in [0, 1].
func (state State) Progress() float64 {
	if !state.Running || state.Total <= 0 {
		return 0
	}
	progress := 1 - float64(state.Remaining)/float64(state.Total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventSnapshot    EventType = "snapshot"
	EventStarted     EventType = "started"
	EventTick        EventType = "tick"
	EventPhaseChange EventType = "phase_change"
	EventStopped     EventType = "stopped"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type  EventType
	State State
	At    time.Time
}

// Sink receives every event the TimeKeeper emits. Publish is called with the
// TimeKeeper lock held, so it must not block or call back into the TimeKeeper.
type Sink interface {
	Publish(event Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Event)

// Publish calls the function.
func (fn SinkFunc) Publish(event Event) { fn(event) }

type discardSink struct{}

func (discardSink) Publish(Event) {}

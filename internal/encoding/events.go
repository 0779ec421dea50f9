package encoding

import (
	"vencode/internal/progress"
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	EventProgress EventKind = iota
	EventLog
	EventDone
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventLog:
		return "log"
	case EventDone:
		return "done"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one observation from a run. Every run ends with exactly one Done
// or Error event.
type Event struct {
	Kind     EventKind
	RunID    string
	JobIndex int
	Input    string

	// Progress is set for EventProgress.
	Progress progress.Snapshot
	// Line is the verbatim diagnostic line for EventLog.
	Line string
	// Message describes the failure for EventError.
	Message string
	// Err is the classified error behind an EventError.
	Err error
}

// Terminal reports whether the event ends its run.
func (e Event) Terminal() bool {
	return e.Kind == EventDone || e.Kind == EventError
}

// Emitter receives run events. Send must not block.
type Emitter interface {
	Send(Event)
}

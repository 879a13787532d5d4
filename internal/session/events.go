package session

// EventKind identifies an asynchronous port event.
type EventKind int

const (
	// EventOpened is informational: the port finished opening.
	EventOpened EventKind = iota
	// EventData carries raw bytes read from the port.
	EventData
	// EventErrored signals a runtime port failure; the session must
	// force-disconnect when it handles this event.
	EventErrored
	// EventClosed signals the port went away; handled like EventErrored
	// except no error is reported.
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventOpened:
		return "opened"
	case EventData:
		return "data"
	case EventErrored:
		return "errored"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is a single port event. All events are funneled through one
// channel so the consumer never observes concurrent state mutation.
type Event struct {
	Kind EventKind
	Data []byte
	Err  error
}

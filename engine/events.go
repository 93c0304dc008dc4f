package engine

// EventType enumerates the side effects the engine surfaces to its host.
// The engine queues them during a tick; the host drains them from the Frame.
type EventType uint8

const (
	// EventItemGrant reports a chest yielding its item. Consumed by the
	// host's inventory collaborator.
	EventItemGrant EventType = iota
	// EventRoomChanged reports a completed room transition.
	EventRoomChanged
	// EventScriptMessage reports a named trigger-volume event. Exit is false
	// on entry, true on exit.
	EventScriptMessage
	// EventDiagnostic reports a non-fatal engine fault, such as a warp whose
	// target room does not exist.
	EventDiagnostic
)

func (t EventType) String() string {
	switch t {
	case EventItemGrant:
		return "item-grant"
	case EventRoomChanged:
		return "room-changed"
	case EventScriptMessage:
		return "script-message"
	case EventDiagnostic:
		return "diagnostic"
	}
	return "unknown"
}

// Event is one side effect surfaced to the host.
type Event struct {
	Type   EventType
	Entity ID

	// EventItemGrant
	Item int

	// EventRoomChanged
	OldRoom, NewRoom int

	// EventScriptMessage and EventDiagnostic
	Message string
	Exit    bool
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

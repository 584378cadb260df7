package pool

import "time"

// EventKind names a state change in the pool.
type EventKind string

const (
	EventAdded     EventKind = "added"
	EventViewed    EventKind = "viewed"
	EventReacted   EventKind = "reacted"
	EventCommented EventKind = "commented"
	EventUpdated   EventKind = "updated"
	EventRemoved   EventKind = "removed"
)

// RemovalReason tells why an entry left the pool.
type RemovalReason string

const (
	RemovedByOwner RemovalReason = "deleted"
	RemovedExpired RemovalReason = "expired"
)

// Event describes one change. Entry is a snapshot taken inside the critical
// section right after the change was applied.
type Event struct {
	Kind    EventKind
	Entry   Entry
	ActorID string
	Reason  RemovalReason
	At      time.Time
}

// Listener receives events after the pool lock has been released.
// Implementations must not block: anything slow belongs on the listener's
// own goroutine.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) HandleEvent(e Event) { f(e) }

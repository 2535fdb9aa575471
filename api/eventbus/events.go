package eventbus

import (
	"github.com/google/uuid"
	"github.com/phoneconnect/dial/api/callaudio"
)

// EventID describes a published event stream.
type EventID interface {
	Value() uint
	String() string
}

type eventID uint

const (
	// SessionStateEvent is published on every call-audio session state transition.
	SessionStateEvent eventID = iota + 1
)

// Value returns the numeric topic of the event.
func (e eventID) Value() uint {
	return uint(e)
}

// String returns the name of the event.
func (e eventID) String() string {
	switch e {
	case SessionStateEvent:
		return "session-state"
	}

	return "unknown"
}

// SessionStateData describes a session state transition.
type SessionStateData struct {
	SessionID uuid.UUID       `json:"session_id"`
	Card      string          `json:"card"`
	State     callaudio.State `json:"state"`
	Codec     callaudio.Codec `json:"codec,omitempty"`
}

// SubscriberID holds a subscription to an event stream.
type SubscriberID struct {
	C <-chan any

	active bool
	unsub  func()
}

// IsActive reports whether the subscription is still receiving events.
func (s *SubscriberID) IsActive() bool {
	return s.active
}

// Unsubscribe stops the subscription. Calling it more than once is a no-op.
func (s *SubscriberID) Unsubscribe() {
	if !s.active {
		return
	}

	s.active = false
	if s.unsub != nil {
		s.unsub()
	}
}

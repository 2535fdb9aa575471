package callaudio

import (
	"context"

	"github.com/google/uuid"
)

// State describes a session lifecycle state.
type State string

const (
	StateIdle        State = "idle"
	StateActivating  State = "activating"
	StateActive      State = "active"
	StateTearingDown State = "tearing-down"
	StateReleased    State = "released"
)

// Backend describes the platform's call-audio routing capability.
type Backend interface {
	// ListEndpoints returns the Bluetooth audio endpoints known to the audio server.
	// It never fails; an unavailable audio server or Bluetooth stack yields an empty list.
	ListEndpoints(ctx context.Context) []Endpoint

	// Activate switches the card to a telephony profile and opens the voice channel.
	// The returned session must be released by the caller.
	Activate(ctx context.Context, card string) (Session, error)

	// SwitchToTelephony switches the card profile only, without opening the voice channel.
	SwitchToTelephony(ctx context.Context, card string) (Codec, error)

	// SwitchToMusic switches the card back to the best available stereo profile.
	SwitchToMusic(ctx context.Context, card string) error

	// ReleaseAll releases every session that is still live.
	ReleaseAll()
}

// Session describes a live call-audio session.
type Session interface {
	// ID returns the session identifier.
	ID() uuid.UUID

	// Card returns the card handle the session was activated on.
	Card() string

	// Codec returns the activated codec.
	Codec() Codec

	// State returns the current lifecycle state.
	State() State

	// Release tears the session down. Calling it more than once is a no-op.
	Release()
}

// WithSession activates a session on the card, invokes fn with it and
// releases it on every return path, including a panic in fn.
func WithSession(ctx context.Context, b Backend, card string, fn func(Session) error) error {
	session, err := b.Activate(ctx, card)
	if err != nil {
		return err
	}
	defer session.Release()

	return fn(session)
}

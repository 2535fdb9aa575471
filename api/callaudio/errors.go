package callaudio

import (
	"fmt"
	"strings"

	"github.com/phoneconnect/dial/api/errorkinds"
)

// ProfileError is returned when no suitable profile could be set on a card.
type ProfileError struct {
	Card      string
	Available []string

	// Kind is errorkinds.ErrNoTelephonyProfile or errorkinds.ErrNoMusicProfile.
	Kind error
}

func (e *ProfileError) Error() string {
	available := "[" + strings.Join(quoteAll(e.Available), ", ") + "]"

	if e.Kind == errorkinds.ErrNoMusicProfile {
		return fmt.Sprintf(
			"Could not switch %s back to A2DP.\nAvailable profiles: %s",
			e.Card, available,
		)
	}

	return fmt.Sprintf(
		"Could not switch %s to HFP.\n"+
			"Make sure the device is paired, connected, and Bluetooth is on.\n"+
			"Available profiles: %s",
		e.Card, available,
	)
}

func (e *ProfileError) Unwrap() error {
	return e.Kind
}

// Bridge names.
const (
	MicBridge     = "mic"
	SpeakerBridge = "speaker"
)

// BridgeError is returned when one of the two loopback bridges cannot be spawned.
type BridgeError struct {
	// Bridge is MicBridge or SpeakerBridge.
	Bridge string
	Err    error
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("Failed to start %s-loopback: %v", e.Bridge, e.Err)
}

func (e *BridgeError) Unwrap() []error {
	return []error{errorkinds.ErrBridgeSpawnFailed, e.Err}
}

// NodeError is returned when the voice nodes of a card do not appear in time.
type NodeError struct {
	Source string
	Sink   string
}

func (e *NodeError) Error() string {
	return fmt.Sprintf(
		"HFP audio nodes did not appear in time\n  Expected: source=%s / sink=%s\n"+
			"  Make sure the headset is paired, powered, and within range.",
		e.Source, e.Sink,
	)
}

func (e *NodeError) Unwrap() error {
	return errorkinds.ErrNodeTimeout
}

func quoteAll(values []string) []string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, `"`+v+`"`)
	}

	return quoted
}

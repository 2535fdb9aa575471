package platform

import "runtime"

type AudioStack string

const (
	PipeWireStack    AudioStack = "PipeWire/PulseAudio (pactl)"
	UnsupportedStack AudioStack = "unsupported"
)

// Info describes platform-specific information.
type Info struct {
	OS    string     `json:"os,omitempty"`
	Stack AudioStack `json:"audio_stack,omitempty"`
}

// NewInfo returns a new Info.
func NewInfo(stack AudioStack) Info {
	return Info{
		OS:    runtime.GOOS + " (" + runtime.GOARCH + ")",
		Stack: stack,
	}
}

// Supported reports whether call audio can be routed automatically.
func (i Info) Supported() bool {
	return i.Stack != UnsupportedStack
}

// String converts an AudioStack to a string.
func (a AudioStack) String() string {
	return string(a)
}

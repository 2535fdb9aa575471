package config

import "time"

const (
	// DefaultPollInterval is the interval between audio node checks.
	DefaultPollInterval = 200 * time.Millisecond

	// DefaultNodeTimeout bounds the wait for voice nodes to appear.
	DefaultNodeTimeout = 4 * time.Second

	// DefaultRunningTimeout bounds the wait for voice nodes to start running.
	DefaultRunningTimeout = 4 * time.Second

	// DefaultSettleDelay is the pause between stopping the bridges and
	// changing the card profile back.
	DefaultSettleDelay = 200 * time.Millisecond

	// DefaultDiscoveryTimeout bounds gateway discovery on the local network.
	DefaultDiscoveryTimeout = 5 * time.Second
)

// Tools holds the names (or paths) of the external audio tools.
type Tools struct {
	Pactl        string
	Wpctl        string
	PwLoopback   string
	Bluetoothctl string
}

// Configuration describes the call-audio runtime configuration.
type Configuration struct {
	// PollInterval holds the interval between node state checks.
	PollInterval time.Duration

	// NodeTimeout holds the timeout for the voice nodes to appear.
	// Timing out aborts activation.
	NodeTimeout time.Duration

	// RunningTimeout holds the timeout for the voice nodes to enter
	// the running state. Timing out is only logged.
	RunningTimeout time.Duration

	// SettleDelay holds the delay between stopping the loopback bridges
	// and restoring the music profile.
	SettleDelay time.Duration

	// Tools holds the external tool names.
	Tools Tools
}

// New returns a new configuration with the default timings and tool names.
func New() Configuration {
	return Configuration{
		PollInterval:   DefaultPollInterval,
		NodeTimeout:    DefaultNodeTimeout,
		RunningTimeout: DefaultRunningTimeout,
		SettleDelay:    DefaultSettleDelay,
		Tools: Tools{
			Pactl:        "pactl",
			Wpctl:        "wpctl",
			PwLoopback:   "pw-loopback",
			Bluetoothctl: "bluetoothctl",
		},
	}
}

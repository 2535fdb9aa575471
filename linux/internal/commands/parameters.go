package commands

type Argument string

const (
	NameArgument          Argument = "--name"
	CaptureArgument       Argument = "--capture"
	PlaybackArgument      Argument = "--playback"
	CapturePropsArgument  Argument = "--capture-props"
	PlaybackPropsArgument Argument = "--playback-props"
)

// AutoswitchSetting is the WirePlumber setting that reverts a headset
// profile when no capture stream is attached.
const AutoswitchSetting = "bluetooth.autoswitch-to-headset-profile"

func (a Argument) String() string {
	return string(a)
}

func StateArgumentValue(enable bool) string {
	if !enable {
		return "false"
	}

	return "true"
}

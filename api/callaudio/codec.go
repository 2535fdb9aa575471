package callaudio

// Codec describes which telephony mode a profile switch achieved.
type Codec string

const (
	// WidebandVoice is mSBC, 16 kHz.
	WidebandVoice Codec = "wideband-voice"

	// NarrowbandVoice is CVSD, 8 kHz.
	NarrowbandVoice Codec = "narrowband-voice"

	// RemoteGateway means the paired device is itself the audio gateway,
	// and no local voice channel is opened.
	RemoteGateway Codec = "remote-gateway"
)

// Label returns a human-readable description of the codec.
func (c Codec) Label() string {
	switch c {
	case WidebandVoice:
		return "mSBC (16 kHz wideband)"
	case NarrowbandVoice:
		return "CVSD (8 kHz narrowband)"
	case RemoteGateway:
		return "Audio Gateway (phone HFP mode)"
	}

	return string(c)
}

// OpensVoiceChannel reports whether a session with this codec keeps a local
// voice channel open.
func (c Codec) OpensVoiceChannel() bool {
	return c == WidebandVoice || c == NarrowbandVoice
}

// String converts a Codec to a string.
func (c Codec) String() string {
	return string(c)
}

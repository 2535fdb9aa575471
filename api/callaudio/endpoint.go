package callaudio

import "strings"

// CardPrefix is the prefix of Bluetooth card names exposed by the audio server.
const CardPrefix = "bluez_card."

// Endpoint describes a Bluetooth audio card visible to the audio server.
type Endpoint struct {
	// Name is the card handle, for example "bluez_card.AA_BB_CC_DD_EE_FF".
	Name string `json:"name"`

	// Address is the device address, for example "AA:BB:CC:DD:EE:FF".
	Address string `json:"address"`

	// DisplayName is the alias reported by the Bluetooth daemon, if any.
	DisplayName string `json:"display_name,omitempty"`

	// ActiveProfile is the last known card profile, if any.
	ActiveProfile string `json:"active_profile,omitempty"`
}

// MacToCardName converts "AA:BB:CC:DD:EE:FF" (or "AA_BB_...") to a card name.
func MacToCardName(mac string) string {
	return CardPrefix + strings.ReplaceAll(strings.TrimSpace(mac), ":", "_")
}

// CardNameToMac converts a card name back to "AA:BB:CC:DD:EE:FF".
func CardNameToMac(name string) string {
	return strings.ReplaceAll(strings.TrimPrefix(name, CardPrefix), "_", ":")
}

// SourceNodeName returns the voice-capture node created for a card in telephony mode.
func SourceNodeName(card string) string {
	return "bluez_input." + CardNameToMac(card)
}

// SinkNodeName returns the voice-playback node created for a card in telephony mode.
func SinkNodeName(card string) string {
	return "bluez_output." + CardNameToMac(card)
}

// ProfileLabel returns a short description of a card profile.
func ProfileLabel(profile string) string {
	switch {
	case profile == "headset-head-unit-msbc":
		return "HFP mSBC (16 kHz)"
	case profile == "headset-head-unit":
		return "HFP call audio"
	case profile == "headset-head-unit-cvsd":
		return "HFP CVSD (8 kHz)"
	case profile == "audio-gateway":
		return "HFP Audio Gateway"
	case strings.HasPrefix(profile, "a2dp"):
		return "A2DP stereo"
	case profile == "off", profile == "":
		return "off"
	}

	return profile
}

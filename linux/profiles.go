package linux

import (
	"context"
	"strings"

	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/api/errorkinds"
	"github.com/phoneconnect/dial/linux/internal/commands"
	"github.com/rs/zerolog"
)

// Card profile names.
const (
	profileHeadset     = "headset-head-unit"
	profileHeadsetCvsd = "headset-head-unit-cvsd"
	profileHeadsetMsbc = "headset-head-unit-msbc"
	profileGateway     = "audio-gateway"
)

// musicProfiles is the priority order for restoring stereo playback.
var musicProfiles = []string{
	"a2dp-sink",
	"a2dp-sink-aac",
	"a2dp-sink-sbc_xq",
	"a2dp-sink-sbc",
}

// profileSwitcher queries and sets card profiles.
type profileSwitcher struct {
	runner commands.Runner
	tools  config.Tools
	log    zerolog.Logger
}

// available returns the profiles advertised for the card.
// An unknown card or a failing audio server yields an empty list.
func (p *profileSwitcher) available(ctx context.Context, card string) []string {
	out, err := commands.ListCards(p.tools).OutputWith(ctx, p.runner)
	if err != nil {
		return nil
	}

	c, _ := findCard(parseCards(out), card)

	return c.profiles
}

// set requests a profile change. The exit status decides success.
func (p *profileSwitcher) set(ctx context.Context, card, profile string) bool {
	err := commands.SetCardProfile(p.tools, card, profile).RunWith(ctx, p.runner)
	if err != nil {
		p.log.Debug().Err(err).Str("card", card).Str("profile", profile).Msg("profile rejected")
		return false
	}

	p.log.Debug().Str("card", card).Str("profile", profile).Msg("profile set")

	return true
}

// toTelephony switches the card to the best telephony profile.
//
// PipeWire names the wideband profile "headset-head-unit" and its fallback
// "headset-head-unit-cvsd"; PulseAudio names them "headset-head-unit-msbc"
// and "headset-head-unit". The presence of the "-cvsd" profile tells them apart.
func (p *profileSwitcher) toTelephony(ctx context.Context, card string) (callaudio.Codec, error) {
	profiles := p.available(ctx, card)

	var hasCvsd, hasHeadset, hasGateway bool
	for _, name := range profiles {
		switch {
		case name == profileHeadsetCvsd:
			hasCvsd = true
		case name == profileGateway:
			hasGateway = true
		}
		if strings.HasPrefix(name, profileHeadset) {
			hasHeadset = true
		}
	}

	if hasHeadset {
		wideband, narrowband := profileHeadsetMsbc, profileHeadset
		if hasCvsd {
			wideband, narrowband = profileHeadset, profileHeadsetCvsd
		}

		if p.set(ctx, card, wideband) {
			return callaudio.WidebandVoice, nil
		}
		if p.set(ctx, card, narrowband) {
			return callaudio.NarrowbandVoice, nil
		}
	}

	if hasGateway && p.set(ctx, card, profileGateway) {
		return callaudio.RemoteGateway, nil
	}

	return "", &callaudio.ProfileError{
		Card:      card,
		Available: profiles,
		Kind:      errorkinds.ErrNoTelephonyProfile,
	}
}

// toMusic switches the card back to the best stereo profile. When the profile
// list cannot be read, every candidate is attempted.
func (p *profileSwitcher) toMusic(ctx context.Context, card string) error {
	profiles := p.available(ctx, card)

	for _, candidate := range musicProfiles {
		if len(profiles) > 0 && !contains(profiles, candidate) {
			continue
		}
		if p.set(ctx, card, candidate) {
			return nil
		}
	}

	return &callaudio.ProfileError{
		Card:      card,
		Available: profiles,
		Kind:      errorkinds.ErrNoMusicProfile,
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}

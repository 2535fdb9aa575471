package linux

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/api/errorkinds"
)

const testCard = "bluez_card.AA_BB_CC_DD_EE_FF"

func newTestBackend(f *fakeAudio) *Backend {
	cfg := config.New()
	cfg.SettleDelay = 0
	cfg.PollInterval = 20 * time.Millisecond
	cfg.NodeTimeout = 400 * time.Millisecond
	cfg.RunningTimeout = 400 * time.Millisecond

	return New(cfg, WithRunner(f), WithAliasResolver(staticAliases{}))
}

func TestSwitchToTelephony(t *testing.T) {
	tests := []struct {
		name     string
		profiles []string
		rejects  map[string]bool
		want     callaudio.Codec
		active   string
	}{
		{
			name:     "pipewire wideband",
			profiles: []string{"a2dp-sink", "headset-head-unit", "headset-head-unit-cvsd", "off"},
			want:     callaudio.WidebandVoice,
			active:   "headset-head-unit",
		},
		{
			name:     "pipewire narrowband fallback",
			profiles: []string{"a2dp-sink", "headset-head-unit", "headset-head-unit-cvsd"},
			rejects:  map[string]bool{"headset-head-unit": true},
			want:     callaudio.NarrowbandVoice,
			active:   "headset-head-unit-cvsd",
		},
		{
			name:     "pulseaudio wideband",
			profiles: []string{"a2dp-sink", "headset-head-unit", "headset-head-unit-msbc"},
			want:     callaudio.WidebandVoice,
			active:   "headset-head-unit-msbc",
		},
		{
			name:     "pulseaudio narrowband only",
			profiles: []string{"a2dp-sink", "headset-head-unit"},
			want:     callaudio.NarrowbandVoice,
			active:   "headset-head-unit",
		},
		{
			name:     "phone as audio gateway",
			profiles: []string{"a2dp-source", "audio-gateway", "off"},
			want:     callaudio.RemoteGateway,
			active:   "audio-gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeAudio(&fakeCard{name: testCard, profiles: tt.profiles, active: "a2dp-sink", rejects: tt.rejects})
			b := newTestBackend(f)

			codec, err := b.SwitchToTelephony(context.Background(), testCard)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if codec != tt.want {
				t.Errorf("expected codec %s, got %s", tt.want, codec)
			}
			if got := f.activeProfile(testCard); got != tt.active {
				t.Errorf("expected active profile %s, got %s", tt.active, got)
			}
		})
	}
}

func TestSwitchToTelephonyPulseAudioNamingOrder(t *testing.T) {
	f := newFakeAudio(&fakeCard{name: testCard, profiles: []string{"headset-head-unit", "a2dp-sink"}, active: "a2dp-sink"})
	b := newTestBackend(f)

	codec, err := b.SwitchToTelephony(context.Background(), testCard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if codec != callaudio.NarrowbandVoice {
		t.Errorf("expected narrowband voice, got %s", codec)
	}

	var attempts []string
	for _, call := range f.callsSince(0) {
		if strings.HasPrefix(call, "pactl set-card-profile") {
			attempts = append(attempts, call[strings.LastIndex(call, " ")+1:])
		}
	}

	want := []string{"headset-head-unit-msbc", "headset-head-unit"}
	if !reflect.DeepEqual(attempts, want) {
		t.Errorf("expected attempts %v, got %v", want, attempts)
	}
}

func TestSwitchToTelephonyNoProfile(t *testing.T) {
	f := newFakeAudio(&fakeCard{name: testCard, profiles: []string{"a2dp-sink", "off"}, active: "a2dp-sink"})
	b := newTestBackend(f)

	_, err := b.SwitchToTelephony(context.Background(), testCard)
	if !errors.Is(err, errorkinds.ErrNoTelephonyProfile) {
		t.Fatalf("expected ErrNoTelephonyProfile, got %v", err)
	}

	var perr *callaudio.ProfileError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a ProfileError, got %T", err)
	}
	if !reflect.DeepEqual(perr.Available, []string{"a2dp-sink", "off"}) {
		t.Errorf("unexpected available profiles %v", perr.Available)
	}

	msg := perr.Error()
	if !strings.Contains(msg, "Could not switch "+testCard+" to HFP") || !strings.Contains(msg, `"a2dp-sink"`) {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestSwitchToMusic(t *testing.T) {
	f := newFakeAudio(&fakeCard{
		name:     testCard,
		profiles: []string{"a2dp-sink-aac", "a2dp-sink-sbc", "headset-head-unit"},
		active:   "headset-head-unit",
	})
	b := newTestBackend(f)

	if err := b.SwitchToMusic(context.Background(), testCard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.activeProfile(testCard); got != "a2dp-sink-aac" {
		t.Errorf("expected a2dp-sink-aac, got %s", got)
	}

	// Unlisted candidates are not attempted while the list is known.
	for _, call := range f.callsSince(0) {
		if call == "pactl set-card-profile "+testCard+" a2dp-sink" {
			t.Errorf("did not expect an attempt of an unlisted profile: %s", call)
		}
	}
}

func TestSwitchToMusicPermissiveWhenListingFails(t *testing.T) {
	f := newFakeAudio(&fakeCard{
		name:     testCard,
		profiles: []string{"a2dp-sink", "headset-head-unit"},
		active:   "headset-head-unit",
	})
	f.listCardsDown = true
	b := newTestBackend(f)

	if err := b.SwitchToMusic(context.Background(), testCard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.activeProfile(testCard); got != "a2dp-sink" {
		t.Errorf("expected a2dp-sink, got %s", got)
	}
}

func TestSwitchToMusicNoProfile(t *testing.T) {
	f := newFakeAudio(&fakeCard{name: testCard, profiles: []string{"headset-head-unit", "off"}, active: "off"})
	b := newTestBackend(f)

	err := b.SwitchToMusic(context.Background(), testCard)
	if !errors.Is(err, errorkinds.ErrNoMusicProfile) {
		t.Fatalf("expected ErrNoMusicProfile, got %v", err)
	}
	if !strings.Contains(err.Error(), "back to A2DP") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAvailableProfilesUnknownCard(t *testing.T) {
	f := newFakeAudio(&fakeCard{name: testCard, profiles: []string{"a2dp-sink"}})
	b := newTestBackend(f)

	if got := b.AvailableProfiles(context.Background(), "bluez_card.00_00_00_00_00_00"); len(got) != 0 {
		t.Errorf("expected no profiles, got %v", got)
	}
}

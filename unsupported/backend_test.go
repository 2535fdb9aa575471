package unsupported

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Southclaws/fault/fmsg"
	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/errorkinds"
)

const card = "bluez_card.AA_BB_CC_DD_EE_FF"

func TestOperationsAreUnsupported(t *testing.T) {
	b := New()
	ctx := context.Background()

	_, activateErr := b.Activate(ctx, card)
	_, telephonyErr := b.SwitchToTelephony(ctx, card)
	musicErr := b.SwitchToMusic(ctx, card)

	for name, err := range map[string]error{
		"activate":  activateErr,
		"telephony": telephonyErr,
		"music":     musicErr,
	} {
		if !errors.Is(err, errorkinds.ErrPlatformUnsupported) {
			t.Errorf("%s: expected ErrPlatformUnsupported, got %v", name, err)
			continue
		}
		if issue := fmsg.GetIssue(err); !strings.Contains(issue, "Default Communications Device") {
			t.Errorf("%s: expected guidance in %q", name, issue)
		}
	}
}

func TestListEndpointsIsEmpty(t *testing.T) {
	if got := New().ListEndpoints(context.Background()); len(got) != 0 {
		t.Errorf("expected no endpoints, got %v", got)
	}
}

func TestWithSessionFails(t *testing.T) {
	called := false
	err := callaudio.WithSession(context.Background(), New(), card, func(callaudio.Session) error {
		called = true
		return nil
	})
	if !errors.Is(err, errorkinds.ErrPlatformUnsupported) {
		t.Errorf("expected ErrPlatformUnsupported, got %v", err)
	}
	if called {
		t.Error("expected the callback not to run")
	}

	New().ReleaseAll()
}

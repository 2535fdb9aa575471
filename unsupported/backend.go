// Package unsupported provides the call-audio backend for platforms where
// profile switching cannot be automated.
package unsupported

import (
	"context"
	"runtime"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/errorkinds"
)

// Guidance tells the user how to route call audio by hand.
const Guidance = "On Windows: set the headset as Default Communications Device in Sound settings.\n" +
	"On macOS: select the headset as input/output in System Settings → Sound."

// Backend is a call-audio backend that rejects every routing request.
type Backend struct{}

var _ callaudio.Backend = Backend{}

// New returns a new Backend.
func New() Backend {
	return Backend{}
}

// ListEndpoints always returns an empty list.
func (Backend) ListEndpoints(context.Context) []callaudio.Endpoint {
	return nil
}

// Activate always fails with errorkinds.ErrPlatformUnsupported.
func (Backend) Activate(ctx context.Context, card string) (callaudio.Session, error) {
	return nil, unsupported(ctx, card, "activate")
}

// SwitchToTelephony always fails with errorkinds.ErrPlatformUnsupported.
func (Backend) SwitchToTelephony(ctx context.Context, card string) (callaudio.Codec, error) {
	return "", unsupported(ctx, card, "switch-telephony")
}

// SwitchToMusic always fails with errorkinds.ErrPlatformUnsupported.
func (Backend) SwitchToMusic(ctx context.Context, card string) error {
	return unsupported(ctx, card, "switch-music")
}

// ReleaseAll does nothing.
func (Backend) ReleaseAll() {}

func unsupported(ctx context.Context, card, op string) error {
	ctx = fctx.WithMeta(ctx, "card", card, "os", runtime.GOOS, "error_at", op)

	return fault.Wrap(errorkinds.ErrPlatformUnsupported,
		fctx.With(ctx),
		ftag.With(ftag.InvalidArgument),
		fmsg.WithDesc(op+" unsupported on "+runtime.GOOS,
			"Automatic Bluetooth audio switching is only supported on Linux.\n"+Guidance),
	)
}

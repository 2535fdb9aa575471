package linux

import (
	"context"
	"sync"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/google/uuid"
	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/api/errorkinds"
	"github.com/phoneconnect/dial/linux/internal/commands"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
)

// Backend routes call audio through PipeWire or PulseAudio using pactl,
// wpctl and pw-loopback.
type Backend struct {
	cfg    config.Configuration
	runner commands.Runner
	log    zerolog.Logger

	aliases  AliasResolver
	inv      *inventory
	profiles *profileSwitcher
	nodes    *nodeWatcher
	guard    *policyGuard

	cardLocks   *xsync.MapOf[string, *sync.Mutex]
	sessions    *xsync.MapOf[uuid.UUID, *hfpSession]
	liveBridges *xsync.Counter
}

var _ callaudio.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithRunner sets the external command runner.
func WithRunner(r commands.Runner) Option {
	return func(b *Backend) {
		b.runner = r
	}
}

// WithAliasResolver sets the friendly-name resolver.
func WithAliasResolver(a AliasResolver) Option {
	return func(b *Backend) {
		b.aliases = a
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Backend) {
		b.log = l
	}
}

// New returns a new Backend. By default commands run as local processes and
// aliases are read from BlueZ, falling back to bluetoothctl.
func New(cfg config.Configuration, opts ...Option) *Backend {
	b := &Backend{
		cfg:         cfg,
		runner:      commands.ExecRunner{},
		log:         zerolog.Nop(),
		cardLocks:   xsync.NewMapOf[string, *sync.Mutex](),
		sessions:    xsync.NewMapOf[uuid.UUID, *hfpSession](),
		liveBridges: xsync.NewCounter(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.aliases == nil {
		b.aliases = chainedAliases{
			NewBluezAliases(),
			&bluetoothctlAliases{runner: b.runner, tools: cfg.Tools},
		}
	}

	b.inv = &inventory{runner: b.runner, tools: cfg.Tools, aliases: b.aliases}
	b.profiles = &profileSwitcher{runner: b.runner, tools: cfg.Tools, log: b.log}
	b.nodes = &nodeWatcher{runner: b.runner, tools: cfg.Tools}
	b.guard = &policyGuard{runner: b.runner, tools: cfg.Tools, log: b.log}

	return b
}

// ListEndpoints returns the Bluetooth audio endpoints known to the audio server.
func (b *Backend) ListEndpoints(ctx context.Context) []callaudio.Endpoint {
	return b.inv.list(ctx)
}

// AvailableProfiles returns the profiles advertised for the card.
func (b *Backend) AvailableProfiles(ctx context.Context, card string) []string {
	return b.profiles.available(ctx, card)
}

// SwitchToTelephony switches the card profile without opening the voice channel.
func (b *Backend) SwitchToTelephony(ctx context.Context, card string) (callaudio.Codec, error) {
	codec, err := b.profiles.toTelephony(ctx, card)
	if err != nil {
		return "", wrapActivation(ctx, err, card, "switch-telephony")
	}

	return codec, nil
}

// SwitchToMusic switches the card back to the best stereo profile.
func (b *Backend) SwitchToMusic(ctx context.Context, card string) error {
	if err := b.profiles.toMusic(ctx, card); err != nil {
		return wrapActivation(ctx, err, card, "switch-music")
	}

	return nil
}

// Activate switches the card to telephony and keeps the voice channel open
// with two loopback bridges. Activations and releases of the same card are
// serialised, and a card holds at most one live session.
func (b *Backend) Activate(ctx context.Context, card string) (callaudio.Session, error) {
	lock := b.cardLock(card)
	lock.Lock()
	defer lock.Unlock()

	if live, ok := b.liveSession(card); ok {
		return nil, cardBusy(ctx, card, live)
	}

	s := &hfpSession{
		id:      uuid.New(),
		card:    card,
		backend: b,
		state:   callaudio.StateIdle,
	}
	s.setState(callaudio.StateActivating)

	s.acquireGuard(ctx)

	codec, err := b.profiles.toTelephony(ctx, card)
	if err != nil {
		s.abort()
		return nil, wrapActivation(ctx, err, card, "switch-telephony")
	}
	s.codec = codec

	// The phone manages the audio path itself; no capture stream is held,
	// so the policy can be restored right away.
	if !codec.OpensVoiceChannel() {
		s.releaseGuard(ctx)
		return b.register(s), nil
	}

	source, sink := callaudio.SourceNodeName(card), callaudio.SinkNodeName(card)

	if err := WaitFor(ctx, b.cfg.PollInterval, b.cfg.NodeTimeout, func() bool {
		return b.nodes.exist(ctx, source, sink)
	}); err != nil {
		s.abort()
		if ctx.Err() != nil {
			return nil, wrapActivation(ctx, err, card, "wait-nodes")
		}

		return nil, wrapActivation(ctx, &callaudio.NodeError{Source: source, Sink: sink}, card, "wait-nodes")
	}

	bridges, err := startBridges(b.runner, b.cfg.Tools, b.liveBridges, b.log, source, sink)
	if err != nil {
		s.abort()
		return nil, wrapActivation(ctx, err, card, "start-bridges")
	}
	s.bridges = bridges

	if err := WaitFor(ctx, b.cfg.PollInterval, b.cfg.RunningTimeout, func() bool {
		return b.nodes.running(ctx, source, sink)
	}); err != nil {
		b.log.Warn().Str("card", card).
			Msg("HFP SCO stream not yet confirmed RUNNING; call may still work within 1-2 s")
	}

	return b.register(s), nil
}

// ReleaseAll releases every session that is still live.
func (b *Backend) ReleaseAll() {
	b.sessions.Range(func(_ uuid.UUID, s *hfpSession) bool {
		s.Release()
		return true
	})
}

// cardLock returns the mutex serialising activation and release of card.
func (b *Backend) cardLock(card string) *sync.Mutex {
	lock, _ := b.cardLocks.LoadOrCompute(card, func() *sync.Mutex { return &sync.Mutex{} })
	return lock
}

// liveSession returns the registered session of card, if any.
func (b *Backend) liveSession(card string) (*hfpSession, bool) {
	var found *hfpSession
	b.sessions.Range(func(_ uuid.UUID, s *hfpSession) bool {
		if s.card == card {
			found = s
			return false
		}
		return true
	})

	return found, found != nil
}

// LiveBridges returns the number of loopback processes that are running.
func (b *Backend) LiveBridges() int64 {
	return b.liveBridges.Value()
}

func (b *Backend) register(s *hfpSession) *hfpSession {
	b.sessions.Store(s.id, s)
	s.setState(callaudio.StateActive)

	b.log.Info().
		Str("session", s.id.String()).
		Str("card", s.card).
		Str("codec", s.codec.Label()).
		Msg("call audio active")

	return s
}

func cardBusy(ctx context.Context, card string, live *hfpSession) error {
	ctx = fctx.WithMeta(ctx, "card", card, "session", live.id.String())

	return fault.Wrap(errorkinds.ErrCardBusy,
		fctx.With(ctx),
		ftag.With(ftag.AlreadyExists),
		fmsg.WithDesc("card busy",
			"Call audio is already active on "+card+". Release it before activating again."),
	)
}

func wrapActivation(ctx context.Context, err error, card, step string) error {
	ctx = fctx.WithMeta(ctx, "card", card, "error_at", step)

	return fault.Wrap(err,
		fctx.With(ctx),
		ftag.With(ftag.Internal),
		fmsg.WithDesc(step, err.Error()),
	)
}

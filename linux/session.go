package linux

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/eventbus"
)

// teardownTimeout bounds every external command issued during release.
const teardownTimeout = 10 * time.Second

// hfpSession is a live call-audio session. It exclusively owns its bridges
// and holds at most one reference on the backend's policy guard.
type hfpSession struct {
	id    uuid.UUID
	card  string
	codec callaudio.Codec

	bridges    *bridgePair
	holdsGuard bool

	backend *Backend

	state    callaudio.State
	stateMu  sync.RWMutex
	released atomic.Bool
}

var _ callaudio.Session = (*hfpSession)(nil)

func (s *hfpSession) ID() uuid.UUID {
	return s.id
}

func (s *hfpSession) Card() string {
	return s.card
}

func (s *hfpSession) Codec() callaudio.Codec {
	return s.codec
}

func (s *hfpSession) State() callaudio.State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	return s.state
}

func (s *hfpSession) setState(state callaudio.State) {
	s.stateMu.Lock()
	s.state = state
	s.stateMu.Unlock()

	s.backend.log.Debug().
		Str("session", s.id.String()).
		Str("card", s.card).
		Str("state", string(state)).
		Msg("session state")

	eventbus.PublishSessionState(eventbus.SessionStateData{
		SessionID: s.id,
		Card:      s.card,
		State:     state,
		Codec:     s.codec,
	})
}

// Release stops the bridges, restores the music profile and drops the
// session's hold on the autoswitch policy. Only the first call has any
// effect. The card stays locked until teardown completes, so a new
// activation of the same card waits for it.
func (s *hfpSession) Release() {
	if !s.released.CompareAndSwap(false, true) {
		return
	}

	lock := s.backend.cardLock(s.card)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
	defer cancel()

	s.setState(callaudio.StateTearingDown)

	if s.bridges != nil {
		s.bridges.stop()

		// Give the audio server time to deregister the bridge streams,
		// otherwise it may reject the profile change.
		time.Sleep(s.backend.cfg.SettleDelay)
	}

	if err := s.backend.profiles.toMusic(ctx, s.card); err != nil {
		s.backend.log.Warn().Err(err).Str("card", s.card).Msg("cannot restore music profile")
	}

	s.releaseGuard(ctx)
	s.backend.sessions.Delete(s.id)

	s.setState(callaudio.StateReleased)
}

// abort rolls back a failed activation. Only the resources acquired so far
// are released; the card profile is left as is. It does not use the
// activation context, which may be the reason activation failed.
func (s *hfpSession) abort() {
	ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
	defer cancel()

	s.released.Store(true)
	s.setState(callaudio.StateTearingDown)

	s.bridges.stop()
	s.releaseGuard(ctx)

	s.setState(callaudio.StateReleased)
}

func (s *hfpSession) acquireGuard(ctx context.Context) {
	s.backend.guard.acquire(ctx)
	s.holdsGuard = true
}

// releaseGuard drops the session's hold on the policy guard, if it has one.
// Callers hold the card lock.
func (s *hfpSession) releaseGuard(ctx context.Context) {
	if !s.holdsGuard {
		return
	}

	s.holdsGuard = false
	s.backend.guard.release(ctx)
}

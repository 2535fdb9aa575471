package linux

import (
	"context"
	"sync"

	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/linux/internal/commands"
	"github.com/rs/zerolog"
)

// policyGuard suspends WirePlumber's automatic headset-profile switching
// while any session needs it. Without it, WirePlumber reverts the card to
// A2DP as soon as it sees a headset profile with no capture stream attached,
// which races the loopback bridges.
//
// The setting is global to the audio server, so one guard is shared by all
// sessions of a Backend: the first holder suspends the policy and the last
// one to let go resumes it. Toggle failures are logged and otherwise ignored.
type policyGuard struct {
	runner commands.Runner
	tools  config.Tools
	log    zerolog.Logger

	holders int
	mu      sync.Mutex
}

// acquire registers a holder, suspending the policy for the first one.
func (g *policyGuard) acquire(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.holders == 0 {
		g.toggle(ctx, false)
	}
	g.holders++
}

// release drops a holder, resuming the policy after the last one.
// It does nothing when there are no holders.
func (g *policyGuard) release(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.holders == 0 {
		return
	}

	g.holders--
	if g.holders == 0 {
		g.toggle(ctx, true)
	}
}

// held returns the number of current holders.
func (g *policyGuard) held() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.holders
}

func (g *policyGuard) toggle(ctx context.Context, enable bool) {
	if err := commands.SetAutoswitch(g.tools, enable).RunWith(ctx, g.runner); err != nil {
		g.log.Warn().Err(err).
			Bool("enable", enable).
			Msg("cannot toggle " + commands.AutoswitchSetting + "; the profile switch may race")
	}
}

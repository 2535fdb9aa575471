package linux

import (
	"context"
	"time"

	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/api/errorkinds"
	"github.com/phoneconnect/dial/linux/internal/commands"
)

// WaitFor polls condition every interval until it returns true or timeout
// elapses. The last check happens at the deadline, so WaitFor never blocks
// longer than timeout plus one check. It returns errorkinds.ErrWaitTimedOut
// on timeout, or the context error if ctx ends first.
func WaitFor(ctx context.Context, interval, timeout time.Duration, condition func() bool) error {
	deadline := time.Now().Add(timeout)

	for {
		if condition() {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return errorkinds.ErrWaitTimedOut
		}

		timer := time.NewTimer(min(interval, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case <-timer.C:
		}
	}
}

// nodeWatcher observes the voice nodes created by a telephony profile.
type nodeWatcher struct {
	runner commands.Runner
	tools  config.Tools
}

func (n *nodeWatcher) sources(ctx context.Context) []byte {
	out, _ := commands.ListSourcesShort(n.tools).OutputWith(ctx, n.runner)
	return out
}

func (n *nodeWatcher) sinks(ctx context.Context) []byte {
	out, _ := commands.ListSinksShort(n.tools).OutputWith(ctx, n.runner)
	return out
}

// exist reports whether both nodes are registered.
func (n *nodeWatcher) exist(ctx context.Context, source, sink string) bool {
	return len(nodeLines(n.sources(ctx), source)) > 0 &&
		len(nodeLines(n.sinks(ctx), sink)) > 0
}

// running reports whether both nodes have left the SUSPENDED state.
func (n *nodeWatcher) running(ctx context.Context, source, sink string) bool {
	return anyNotSuspended(nodeLines(n.sources(ctx), source)) &&
		anyNotSuspended(nodeLines(n.sinks(ctx), sink))
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/eventbus"
)

// hold keeps the session open until ctx ends, logging its state changes,
// then releases it.
func (a *app) hold(ctx context.Context, out io.Writer, session callaudio.Session) {
	sub := eventbus.Subscribe(eventbus.SessionStateEvent)
	defer sub.Unsubscribe()

	go func() {
		for ev := range sub.C {
			data, ok := ev.(eventbus.SessionStateData)
			if !ok || data.SessionID != session.ID() {
				continue
			}

			a.log.Info().
				Str("card", data.Card).
				Str("codec", data.Codec.Label()).
				Msg("call audio " + string(data.State))
		}
	}()

	<-ctx.Done()

	fmt.Fprintln(out, "\n♫ Restoring music audio…")
	session.Release()
	fmt.Fprintln(out, "  done")
}

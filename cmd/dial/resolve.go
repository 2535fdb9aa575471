package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/api/errorkinds"
	"github.com/phoneconnect/dial/discover"
	"github.com/rs/zerolog"
)

// finder locates the gateway on the local network.
type finder func(ctx context.Context, timeout time.Duration) (discover.Gateway, error)

// resolveConfig loads the configuration file, creating it on first use.
// A placeholder gateway URL is replaced by a discovered one, which is
// saved for the next run.
func resolveConfig(
	ctx context.Context, path string, timeout time.Duration, find finder, out io.Writer, log zerolog.Logger,
) (config.File, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, errorkinds.ErrConfigNotFound) {
		if err := config.WriteDefault(path); err != nil {
			return config.File{}, err
		}
		cfg, err = config.Load(path)
	}
	if err != nil {
		return config.File{}, err
	}

	if cfg.IsPlaceholder() {
		fmt.Fprintf(out, "◎ No gateway URL configured, scanning LAN (%s)…\n", timeout)

		gw, err := find(ctx, timeout)
		if err != nil {
			fmt.Fprintln(out, "  Start the gateway on your laptop, or run `dial config init` and set the URL manually.")
			return config.File{}, err
		}

		fmt.Fprintf(out, "✓ Gateway found at %s:%d, saving to config\n", gw.Host, gw.Port)

		cfg.ServerURL = gw.URL
		if err := cfg.Save(path); err != nil {
			log.Warn().Err(err).Msg("could not save config")
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.File{}, err
	}

	return cfg, nil
}

func (a *app) find(ctx context.Context, timeout time.Duration) (discover.Gateway, error) {
	return discover.Find(ctx, timeout, discover.WithLogger(a.log))
}

func (a *app) resolveConfig(ctx context.Context, out io.Writer) (config.File, error) {
	return resolveConfig(ctx, a.configPath, a.discoveryTimeout(), a.find, out, a.log)
}

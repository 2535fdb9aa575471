package main

import (
	"errors"
	"fmt"

	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/api/errorkinds"
	"github.com/phoneconnect/dial/gateway"
	"github.com/spf13/cobra"
)

func (a *app) devicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List devices currently connected to the gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			cfg, err := a.resolveConfig(cmd.Context(), out)
			if err != nil {
				return err
			}

			resp, err := gateway.New(cfg.ServerURL, cfg.Token, gateway.WithLogger(a.log)).Devices(cmd.Context())
			if err != nil {
				return err
			}

			if len(resp.Devices) == 0 {
				fmt.Fprintln(out, "○ No devices currently connected.")
				return nil
			}

			fmt.Fprintf(out, "● %d device(s) connected\n\n", resp.Count)
			for _, d := range resp.Devices {
				fmt.Fprintf(out, "  ─ %s  (connected since %s)\n", d.DeviceID, d.ConnectedAt)
			}

			return nil
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check gateway health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			cfg, err := a.resolveConfig(cmd.Context(), out)
			if err != nil {
				return err
			}

			health, err := gateway.New(cfg.ServerURL, cfg.Token, gateway.WithLogger(a.log)).Health(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "✓ Gateway is reachable")
			fmt.Fprintf(out, "  URL:               %s\n", cfg.ServerURL)
			if uptime, ok := health.Uptime(); ok {
				fmt.Fprintf(out, "  Uptime:            %.0fs\n", uptime)
			}
			if n, ok := health.ConnectedDevices(); ok {
				fmt.Fprintf(out, "  Connected devices: %d\n", n)
			}
			fmt.Fprintf(out, "  Platform:          %s\n", a.info.OS)
			fmt.Fprintf(out, "  Call audio:        %s\n", a.info.Stack)

			return nil
		},
	}
}

func (a *app) discoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Scan the LAN for a PhoneConnect gateway and save its URL to config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			timeout := a.discoveryTimeout()

			fmt.Fprintf(out, "◎ Scanning for PhoneConnect gateway (%s)…\n", timeout)

			gw, err := a.find(cmd.Context(), timeout)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "✓ Gateway found!\n  Host: %s\n  Port: %d\n  URL:  %s\n", gw.Host, gw.Port, gw.URL)

			cfg, err := config.Load(a.configPath)
			switch {
			case errors.Is(err, errorkinds.ErrConfigNotFound):
				if err := config.WriteDefault(a.configPath); err != nil {
					return err
				}
				if cfg, err = config.Load(a.configPath); err != nil {
					return err
				}
				fmt.Fprintf(out, "↳ Config created at %s\n", a.configPath)

			case err != nil:
				return err

			default:
				fmt.Fprintf(out, "↳ Saved to %s\n", a.configPath)
			}

			cfg.ServerURL = gw.URL

			return cfg.Save(a.configPath)
		},
	}
}

package main

import (
	"fmt"

	"github.com/phoneconnect/dial/api/config"
	"github.com/spf13/cobra"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create a default config file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := config.WriteDefault(a.configPath); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Created config at %s\n", a.configPath)
				fmt.Fprintln(out, "  server_url is set to the placeholder; run `dial discover` to auto-detect the gateway.")

				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the path to the config file",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), a.configPath)
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show current config values",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.Load(a.configPath)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "server_url = %q\n", cfg.ServerURL)
				fmt.Fprintln(out, `token      = "***"`)
				if cfg.BtMac != "" {
					fmt.Fprintf(out, "bt_mac     = %q\n", cfg.BtMac)
				} else {
					fmt.Fprintln(out, "bt_mac     = (not set) (set to auto-switch BT on every call)")
				}

				return nil
			},
		},
		&cobra.Command{
			Use:     "set-bt-mac <MAC>",
			Short:   "Save a Bluetooth MAC so `dial call` routes call audio automatically",
			Example: "  dial config set-bt-mac B8:EA:98:EF:B4:A5",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load(a.configPath)
				if err != nil {
					return err
				}

				cfg.BtMac = args[0]
				if err := cfg.Save(a.configPath); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Saved bt_mac = %s to config\n", args[0])
				fmt.Fprintln(out, "  `dial call` will now route call audio over BT HFP before every call.")

				return nil
			},
		},
	)

	return cmd
}

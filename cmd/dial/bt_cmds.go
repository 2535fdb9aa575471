package main

import (
	"fmt"
	"io"

	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/internal/serde"
	"github.com/spf13/cobra"
)

func (a *app) btCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bt",
		Short: "Bluetooth audio helpers (Linux: PipeWire / PulseAudio)",
	}

	cmd.AddCommand(a.btListCmd(), a.btHfpCmd(), a.btA2dpCmd(), a.btCallAudioCmd())

	return cmd
}

func (a *app) btListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Bluetooth audio devices visible to the audio server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			endpoints := a.backend.ListEndpoints(cmd.Context())
			out := cmd.OutOrStdout()

			if asJSON {
				if endpoints == nil {
					endpoints = []callaudio.Endpoint{}
				}

				data, err := serde.MarshalJsonIndent(endpoints)
				if err != nil {
					return err
				}
				_, err = out.Write(data)

				return err
			}

			printEndpoints(out, endpoints, a.info.Supported())

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the endpoints as JSON")

	return cmd
}

func printEndpoints(out io.Writer, endpoints []callaudio.Endpoint, supported bool) {
	if len(endpoints) == 0 {
		if supported {
			fmt.Fprintln(out, "○ No Bluetooth audio devices found.\n  Make sure your phone is paired and BT is enabled.")
		} else {
			fmt.Fprintln(out, "! `dial bt list` only works on Linux (pactl required).\n  On Windows / macOS, open Sound settings to view BT devices.")
		}

		return
	}

	fmt.Fprintf(out, "● %d Bluetooth device(s) found\n\n", len(endpoints))
	for _, ep := range endpoints {
		name := ep.DisplayName
		if name == "" {
			name = "(unknown)"
		}

		profile := "unknown"
		if ep.ActiveProfile != "" {
			profile = callaudio.ProfileLabel(ep.ActiveProfile)
		}

		fmt.Fprintf(out, "  ─ %s  %s  (%s)\n", ep.Address, name, profile)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Switch to call audio : dial bt hfp <MAC>")
	fmt.Fprintln(out, "  Switch back to music : dial bt a2dp <MAC>")
}

func (a *app) btHfpCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "hfp <MAC>",
		Short:   "Switch a paired phone to the HFP call-audio profile",
		Example: "  dial bt hfp AA:BB:CC:DD:EE:FF",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			mac := args[0]

			fmt.Fprintf(out, "♫ Switching %s to HFP call-audio mode… ", mac)

			codec, err := a.backend.SwitchToTelephony(cmd.Context(), callaudio.MacToCardName(mac))
			if err != nil {
				fmt.Fprintln(out, "failed")
				return err
			}

			if codec == callaudio.RemoteGateway {
				fmt.Fprintln(out, "done")
				fmt.Fprintln(out, "  ✓ Phone is in Audio Gateway mode, laptop is the HF unit.")
				fmt.Fprintln(out, "  Audio will be bridged to your laptop as soon as a call is active.")

				return nil
			}

			fmt.Fprintf(out, "done (%s)\n", codec.Label())
			fmt.Fprintln(out, "  ✓ Audio will now route to your laptop when a call is active.")
			fmt.Fprintf(out, "  To restore music audio after the call: dial bt a2dp %s\n", mac)

			return nil
		},
	}
}

func (a *app) btA2dpCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "a2dp <MAC>",
		Short:   "Switch a phone back to the A2DP stereo (music) profile",
		Example: "  dial bt a2dp AA:BB:CC:DD:EE:FF",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "♫ Switching %s back to A2DP stereo… ", args[0])

			if err := a.backend.SwitchToMusic(cmd.Context(), callaudio.MacToCardName(args[0])); err != nil {
				fmt.Fprintln(out, "failed")
				return err
			}

			fmt.Fprintln(out, "done")

			return nil
		},
	}
}

func (a *app) btCallAudioCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "call-audio <MAC>",
		Short:   "Route call audio to this computer until Ctrl+C, without placing a call",
		Example: "  dial bt call-audio AA:BB:CC:DD:EE:FF",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "♫ Activating call audio on %s…\n", args[0])

			session, err := a.backend.Activate(cmd.Context(), callaudio.MacToCardName(args[0]))
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "  done (%s). Press Ctrl+C to restore music audio.\n", session.Codec().Label())
			a.hold(cmd.Context(), out, session)

			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/errorkinds"
	"github.com/phoneconnect/dial/gateway"
	"github.com/spf13/cobra"
)

func (a *app) callCmd() *cobra.Command {
	var (
		btMac  string
		noHold bool
	)

	cmd := &cobra.Command{
		Use:   "call <device_id> <number>",
		Short: "Initiate a phone call via a connected Android device",
		Long: `Initiate a phone call via a connected Android device.

With a Bluetooth MAC (--bt-mac, or bt_mac in the config file) the call audio
is routed to this computer over HFP and held until Ctrl+C. Pass --no-hold to
only switch the profile and return right away.`,
		Example: "  dial call android_fd9de1fb +919876543210 --bt-mac AA:BB:CC:DD:EE:FF",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], btMac, noHold)
		},
	}

	cmd.Flags().StringVar(&btMac, "bt-mac", "", "Bluetooth MAC of your phone (AA:BB:CC:DD:EE:FF)")
	cmd.Flags().BoolVar(&noHold, "no-hold", false, "switch to HFP without holding the call-audio session")

	return cmd
}

func (a *app) call(ctx context.Context, out io.Writer, deviceID, number, btMac string, noHold bool) error {
	if strings.TrimSpace(deviceID) == "" {
		return fault.Wrap(errorkinds.ErrEmptyDeviceID,
			ftag.With(ftag.InvalidArgument),
			fmsg.WithDesc("empty device id", "Device ID must not be empty"),
		)
	}
	if err := gateway.ValidatePhone(number); err != nil {
		return err
	}

	cfg, err := a.resolveConfig(ctx, out)
	if err != nil {
		return err
	}
	if btMac == "" {
		btMac = cfg.BtMac
	}

	var session callaudio.Session
	if btMac != "" {
		card := callaudio.MacToCardName(btMac)

		if noHold {
			fmt.Fprint(out, "♫ Switching Bluetooth to HFP call-audio mode… ")
			if codec, err := a.backend.SwitchToTelephony(ctx, card); err != nil {
				a.warnAudio(out, err)
			} else {
				fmt.Fprintf(out, "done (%s)\n", codec.Label())
			}
		} else {
			fmt.Fprintln(out, "♫ Activating Bluetooth call audio…")
			if session, err = a.backend.Activate(ctx, card); err != nil {
				a.warnAudio(out, err)
			} else {
				defer session.Release()
				fmt.Fprintf(out, "  done (%s)\n", session.Codec().Label())
			}
		}
	}

	client := gateway.New(cfg.ServerURL, cfg.Token, gateway.WithLogger(a.log))

	fmt.Fprintf(out, "→ Dispatching call to %s → %s\n", deviceID, number)

	result, err := client.Call(ctx, deviceID, number)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "✓ Call command sent!")
	fmt.Fprintf(out, "  Device : %s\n", result.DeviceID)
	fmt.Fprintf(out, "  Command: %s\n", result.CommandID)

	switch {
	case session != nil:
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ♫ Audio is routed to this computer. Press Ctrl+C when the call ends.")
		a.hold(ctx, out, session)

	case btMac != "" && noHold:
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ♫ Audio is now routed to your laptop via BT HFP.")
		fmt.Fprintf(out, "  When the call ends, run: dial bt a2dp %s\n", btMac)
	}

	return nil
}

func (a *app) warnAudio(out io.Writer, err error) {
	fmt.Fprintln(out)
	a.log.Warn().Err(err).Msg("BT switch failed")

	msg := fmsg.GetIssue(err)
	if msg == "" {
		msg = err.Error()
	}
	fmt.Fprintln(out, "warn: BT switch failed: "+msg)
	fmt.Fprintln(out, "  Continuing, audio will stay on the phone speaker.")
}

// Command dial triggers phone calls through a paired Android device and
// routes the call audio over Bluetooth.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Southclaws/fault/fmsg"
	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/platform"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

// app holds the state shared by all commands.
type app struct {
	timeout int
	verbose bool

	configPath string

	log     zerolog.Logger
	backend callaudio.Backend
	info    platform.Info
}

func main() {
	a := &app{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := a.rootCmd().ExecuteContext(ctx)

	if a.backend != nil {
		a.backend.ReleaseAll()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dial",
		Short: "PhoneConnect CLI: trigger phone calls through your Android device",
		Long: `dial asks the PhoneConnect gateway to place a call on a connected Android
device and, on Linux, routes the call audio to this computer over Bluetooth HFP.

Place a call:          dial call <device_id> <number>
Route audio only:      dial bt call-audio <MAC>
Configuration:         dial config show`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}

	root.PersistentFlags().IntVar(&a.timeout, "timeout", 5, "gateway discovery timeout in seconds")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		a.callCmd(),
		a.devicesCmd(),
		a.statusCmd(),
		a.discoverCmd(),
		a.configCmd(),
		a.btCmd(),
	)

	return root
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	level := zerolog.InfoLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}

	a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	a.configPath = config.Path()
	a.backend, a.info = platform.Backend(config.New(), a.log)

	a.log.Debug().
		Str("os", a.info.OS).
		Str("audio_stack", a.info.Stack.String()).
		Str("config", a.configPath).
		Msg("dial started")

	return nil
}

func (a *app) discoveryTimeout() time.Duration {
	if a.timeout <= 0 {
		return config.DefaultDiscoveryTimeout
	}

	return time.Duration(a.timeout) * time.Second
}

func printError(err error) {
	msg := fmsg.GetIssue(err)
	if msg == "" {
		msg = err.Error()
	}
	if errors.Is(err, context.Canceled) {
		msg = "interrupted"
	}

	fmt.Fprintln(os.Stderr, "error: "+msg)
}

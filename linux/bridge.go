package linux

import (
	"sync"

	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/linux/internal/commands"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
)

// Loopback stream names and properties.
const (
	micBridgeName     = "phoneconnect-hfp-mic"
	speakerBridgeName = "phoneconnect-hfp-speaker"

	monoPhoneProps = "audio.channels=1 audio.position=[MONO] media.role=Phone"
	phoneRoleProps = "media.role=Phone"
)

// micBridge captures from the voice source and plays to the default output.
// Capturing from the source opens the inbound voice socket.
func micBridge(t config.Tools, source string) *commands.Command {
	return commands.Loopback(t, micBridgeName).
		WithArgument(commands.CaptureArgument, source).
		WithArgument(commands.CapturePropsArgument, monoPhoneProps).
		WithArgument(commands.PlaybackPropsArgument, phoneRoleProps+" node.description=PhoneConnect-call-audio")
}

// speakerBridge captures from the default input and plays into the voice sink.
// Playing into the sink opens the outbound voice socket.
func speakerBridge(t config.Tools, sink string) *commands.Command {
	return commands.Loopback(t, speakerBridgeName).
		WithArgument(commands.PlaybackArgument, sink).
		WithArgument(commands.PlaybackPropsArgument, monoPhoneProps+" node.description=PhoneConnect-call-mic").
		WithArgument(commands.CapturePropsArgument, phoneRoleProps)
}

// bridgePair holds the two loopback processes of a session.
type bridgePair struct {
	mic     commands.Process
	speaker commands.Process

	live *xsync.Counter
	log  zerolog.Logger
	once sync.Once
}

// startBridges launches both loopback bridges. If the second one fails, the
// first is killed and reaped before the error is returned.
func startBridges(
	runner commands.Runner, tools config.Tools, live *xsync.Counter, log zerolog.Logger,
	source, sink string,
) (*bridgePair, error) {
	mic, err := micBridge(tools, source).StartWith(runner)
	if err != nil {
		return nil, &callaudio.BridgeError{Bridge: callaudio.MicBridge, Err: err}
	}
	live.Inc()
	log.Debug().Int("pid", mic.Pid()).Str("capture", source).Msg("mic-loopback started")

	speaker, err := speakerBridge(tools, sink).StartWith(runner)
	if err != nil {
		stopProcess(mic, live, log, micBridgeName)
		return nil, &callaudio.BridgeError{Bridge: callaudio.SpeakerBridge, Err: err}
	}
	live.Inc()
	log.Debug().Int("pid", speaker.Pid()).Str("playback", sink).Msg("speaker-loopback started")

	return &bridgePair{
		mic:     mic,
		speaker: speaker,
		live:    live,
		log:     log,
	}, nil
}

// stop kills and reaps both bridges. It never fails and runs only once.
func (b *bridgePair) stop() {
	if b == nil {
		return
	}

	b.once.Do(func() {
		stopProcess(b.mic, b.live, b.log, micBridgeName)
		stopProcess(b.speaker, b.live, b.log, speakerBridgeName)
	})
}

func stopProcess(p commands.Process, live *xsync.Counter, log zerolog.Logger, name string) {
	if p == nil {
		return
	}

	// Either call fails if the process already exited; that is fine.
	if err := p.Kill(); err != nil {
		log.Debug().Err(err).Str("bridge", name).Msg("kill")
	}
	if err := p.Wait(); err != nil {
		log.Debug().Err(err).Str("bridge", name).Msg("wait")
	}

	live.Dec()
}

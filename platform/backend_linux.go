//go:build linux

package platform

import (
	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/linux"
	"github.com/rs/zerolog"
)

// Backend returns the platform-specific call-audio backend.
func Backend(cfg config.Configuration, log zerolog.Logger) (callaudio.Backend, Info) {
	return linux.New(cfg, linux.WithLogger(log)), NewInfo(PipeWireStack)
}

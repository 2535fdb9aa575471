//go:build !linux

package platform

import (
	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/unsupported"
	"github.com/rs/zerolog"
)

// Backend returns the platform-specific call-audio backend.
func Backend(_ config.Configuration, _ zerolog.Logger) (callaudio.Backend, Info) {
	return unsupported.New(), NewInfo(UnsupportedStack)
}

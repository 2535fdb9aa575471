package errorkinds

import "errors"

// Call-audio errors.
var (
	ErrNoTelephonyProfile  = errors.New("no telephony profile could be activated")
	ErrNoMusicProfile      = errors.New("no music profile could be activated")
	ErrNodeTimeout         = errors.New("voice nodes did not appear in time")
	ErrBridgeSpawnFailed   = errors.New("loopback bridge could not be started")
	ErrPlatformUnsupported = errors.New("call-audio activation is not supported on this platform")
	ErrWaitTimedOut        = errors.New("wait timed out")
	ErrCardBusy            = errors.New("call audio is already active on this card")
)

// Gateway and configuration errors.
var (
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrEmptyDeviceID      = errors.New("device ID must not be empty")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDeviceOffline      = errors.New("device is not connected to the gateway")
	ErrGateway            = errors.New("gateway returned an error")
	ErrGatewayNotFound    = errors.New("gateway not found")
	ErrConfigNotFound     = errors.New("config file not found")
)

package config

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/phoneconnect/dial/api/errorkinds"
)

// PlaceholderURL is the factory-default gateway URL written by WriteDefault.
// A file still holding it triggers gateway discovery.
const PlaceholderURL = "http://10.61.214.187:3000"

const defaultToken = "change-me-secret"

// File describes the contents of the user configuration file, a TOML
// document at Path.
type File struct {
	// ServerURL holds the gateway HTTP base URL.
	ServerURL string `toml:"server_url"`

	// Token holds the bearer token accepted by the gateway.
	Token string `toml:"token"`

	// BtMac holds the Bluetooth address used for call audio, if set.
	BtMac string `toml:"bt_mac,omitempty"`
}

// Path returns the path of the configuration file.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}

	return filepath.Join(dir, "phoneconnect", "config.toml")
}

// Load reads and parses the configuration file at path.
func Load(path string) (File, error) {
	ctx := fctx.WithMeta(context.Background(), "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, fault.Wrap(errorkinds.ErrConfigNotFound,
				fctx.With(ctx),
				ftag.With(ftag.NotFound),
				fmsg.WithDesc("config not found",
					"Config file not found at "+path+".\nRun `dial config init` to create one."),
			)
		}

		return File{}, fault.Wrap(err,
			fctx.With(ctx),
			ftag.With(ftag.Internal),
			fmsg.With("Failed to read config file"),
		)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fault.Wrap(err,
			fctx.With(ctx),
			ftag.With(ftag.InvalidArgument),
			fmsg.With("Failed to parse config file"),
		)
	}

	return f, nil
}

// WriteDefault writes a default configuration file to path, creating
// parent directories as needed.
func WriteDefault(path string) error {
	return File{
		ServerURL: PlaceholderURL,
		Token:     defaultToken,
	}.Save(path)
}

// Save writes the configuration back to path.
func (f File) Save(path string) error {
	ctx := fctx.WithMeta(context.Background(), "path", path)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return fault.Wrap(err, fctx.With(ctx), ftag.With(ftag.Internal))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fault.Wrap(err,
			fctx.With(ctx),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot create config directory"),
		)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fault.Wrap(err,
			fctx.With(ctx),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot write config file"),
		)
	}

	return nil
}

// IsPlaceholder reports whether the gateway URL is blank or the factory default.
func (f File) IsPlaceholder() bool {
	return strings.TrimSpace(f.ServerURL) == "" || f.ServerURL == PlaceholderURL
}

// Validate checks that the required fields are set.
func (f File) Validate() error {
	if strings.TrimSpace(f.Token) == "" {
		return fault.Wrap(errorkinds.ErrUnauthorized,
			ftag.With(ftag.Unauthenticated),
			fmsg.WithDesc("empty token", "Unauthorized — check the token in your config file"),
		)
	}

	return nil
}

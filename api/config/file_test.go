package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phoneconnect/dial/api/errorkinds"
)

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errorkinds.ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestWriteDefaultThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phoneconnect", "config.toml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("write default: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !f.IsPlaceholder() {
		t.Errorf("expected default file to hold the placeholder URL, got %q", f.ServerURL)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("expected default file to validate, got %v", err)
	}
}

func TestSavePersistsBtMac(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	in := File{ServerURL: "http://192.168.1.5:3000", Token: "secret", BtMac: "AA:BB:CC:DD:EE:FF"}
	if err := in.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out != in {
		t.Errorf("expected %+v, got %+v", in, out)
	}
	if out.IsPlaceholder() {
		t.Error("expected a configured URL not to be a placeholder")
	}
}

func TestLoadHandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	raw := "# written by hand\n" +
		"server_url = \"http://10.61.214.187:3000\"\n" +
		"token = \"change-me-secret\"\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := File{ServerURL: PlaceholderURL, Token: "change-me-secret"}
	if f != want {
		t.Errorf("expected %+v, got %+v", want, f)
	}
}

func TestSaveWritesToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("write default: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	text := string(data)
	for _, line := range []string{
		`server_url = "http://10.61.214.187:3000"`,
		`token = "change-me-secret"`,
	} {
		if !strings.Contains(text, line) {
			t.Errorf("expected %q in\n%s", line, text)
		}
	}
	if strings.Contains(text, "bt_mac") {
		t.Errorf("expected an unset address to be omitted, got\n%s", text)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`{"server_url": "http://x", "token": "t"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || errors.Is(err, errorkinds.ErrConfigNotFound) {
		t.Errorf("expected a parse error, got %v", err)
	}
}

func TestPathIsToml(t *testing.T) {
	if want := filepath.Join("phoneconnect", "config.toml"); !strings.HasSuffix(Path(), want) {
		t.Errorf("expected a path ending in %s, got %s", want, Path())
	}
}

func TestValidateRejectsEmptyToken(t *testing.T) {
	err := File{ServerURL: "http://x", Token: "  "}.Validate()
	if !errors.Is(err, errorkinds.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestNewDefaults(t *testing.T) {
	cfg := New()
	if cfg.PollInterval != DefaultPollInterval || cfg.NodeTimeout != DefaultNodeTimeout {
		t.Errorf("unexpected default timings: %+v", cfg)
	}
	if cfg.Tools.Pactl != "pactl" || cfg.Tools.PwLoopback != "pw-loopback" {
		t.Errorf("unexpected default tools: %+v", cfg.Tools)
	}
}

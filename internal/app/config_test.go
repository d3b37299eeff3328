package app_test

import (
	"testing"

	"onyx/internal/app"
)

func TestLoadFile_EmptyPathDefaults(t *testing.T) {
	cfg, err := app.LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Relay.Address != "127.0.0.1:8888" {
		t.Fatalf("default address = %q", cfg.Relay.Address)
	}
	if cfg.Logging.Level != "NOTICE" {
		t.Fatalf("default level = %q", cfg.Logging.Level)
	}
}

func TestLoad_TOML(t *testing.T) {
	cfg, err := app.Load([]byte(`
[Relay]
Address = "10.0.0.5:7000"

[Logging]
Level = "debug"
File = "/tmp/onyx.log"
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Relay.Address != "10.0.0.5:7000" {
		t.Fatalf("address = %q", cfg.Relay.Address)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Fatalf("level not forced uppercase: %q", cfg.Logging.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	if _, err := app.Load([]byte("[Logging]\nLevel = \"LOUD\"\n")); err == nil {
		t.Fatal("expected error for invalid log level")
	}
	if _, err := app.Load([]byte("[Relay]\nAddress = \"nohostport\"\n")); err == nil {
		t.Fatal("expected error for bad address")
	}
}

package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultAddress  = "127.0.0.1:8888"
	defaultLogLevel = "NOTICE"
)

// Relay is the relay connection configuration.
type Relay struct {
	// Address is the host:port the client dials (or the daemon binds).
	Address string
}

func (rCfg *Relay) validate() error {
	if rCfg.Address == "" {
		rCfg.Address = defaultAddress
	}
	if !strings.Contains(rCfg.Address, ":") {
		return fmt.Errorf("config: Relay: Address %q is not host:port", rCfg.Address)
	}
	return nil
}

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file; if omitted, stderr is used.
	File string

	// Level specifies the log level.
	Level string
}

func (lCfg *Logging) validate() error {
	lvl := strings.ToUpper(lCfg.Level)
	switch lvl {
	case "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG":
	case "":
		lvl = defaultLogLevel
	default:
		return fmt.Errorf("config: Logging: Level %q is invalid", lCfg.Level)
	}
	lCfg.Level = lvl
	return nil
}

// Config is the onyx configuration.
type Config struct {
	Relay   Relay
	Logging Logging
}

// FixupAndValidate applies defaults and checks the configuration.
func (cfg *Config) FixupAndValidate() error {
	if err := cfg.Relay.validate(); err != nil {
		return err
	}
	return cfg.Logging.validate()
}

// Load parses a TOML configuration from b.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads and validates the configuration at path. An empty path
// yields the defaults.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		cfg := new(Config)
		if err := cfg.FixupAndValidate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(b)
}

package app

import (
	"onyx/internal/log"
)

// Wire bundles the pieces both binaries need before domain objects exist:
// validated configuration and the logging backend.
type Wire struct {
	Cfg        *Config
	LogBackend *log.Backend
}

// NewWire loads the configuration and builds the logging backend.
func NewWire(configPath string) (*Wire, error) {
	cfg, err := LoadFile(configPath)
	if err != nil {
		return nil, err
	}
	backend, err := log.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
	if err != nil {
		return nil, err
	}
	return &Wire{Cfg: cfg, LogBackend: backend}, nil
}

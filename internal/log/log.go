// Package log provides the leveled logging backend, built on the go-logging
// package. Output goes to a file when one is configured, otherwise stderr:
// the client owns the terminal for chat, so logs must stay off stdout.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/op/go-logging.v1"
)

// Backend is the shared logging backend; per-module loggers attach to it.
type Backend struct {
	backend logging.LeveledBackend
	w       io.Writer
}

// New initializes a backend writing to file f (stderr if empty) at the given
// level. disable routes everything to io.Discard.
func New(f string, level string, disable bool) (*Backend, error) {
	lvl, err := levelFromString(level)
	if err != nil {
		return nil, err
	}

	b := new(Backend)
	switch {
	case disable:
		b.w = io.Discard
	case f == "":
		b.w = os.Stderr
	default:
		w, err := os.OpenFile(f, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("log: open %s: %w", f, err)
		}
		b.w = w
	}

	format := logging.MustStringFormatter("%{time:15:04:05.000} %{level:.4s} %{module}: %{message}")
	base := logging.NewLogBackend(b.w, "", 0)
	b.backend = logging.AddModuleLevel(logging.NewBackendFormatter(base, format))
	b.backend.SetLevel(lvl, "")
	return b, nil
}

// GetLogger returns a per-module logger attached to the backend.
func (b *Backend) GetLogger(module string) *logging.Logger {
	l := logging.MustGetLogger(module)
	l.SetBackend(b.backend)
	return l
}

func levelFromString(l string) (logging.Level, error) {
	switch strings.ToUpper(l) {
	case "ERROR":
		return logging.ERROR, nil
	case "WARNING":
		return logging.WARNING, nil
	case "NOTICE", "":
		return logging.NOTICE, nil
	case "INFO":
		return logging.INFO, nil
	case "DEBUG":
		return logging.DEBUG, nil
	default:
		return 0, fmt.Errorf("log: invalid level %q", l)
	}
}

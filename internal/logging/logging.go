// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/logbook/internal/config"
	"github.com/sirupsen/logrus"
)

// New builds a logger from cfg. When cfg.File is set, entries go to that
// file; otherwise they go to fallback. The returned closer releases the
// file and is never nil.
//
// The TUI passes io.Discard as fallback so log lines never land on the
// alternate screen.
func New(cfg config.LoggingConfig, fallback io.Writer) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()

	out := fallback
	var closer io.Closer = nopCloser{}
	if path := strings.TrimSpace(cfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closer = f, f
	}
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.Warnf("Invalid log level '%s', defaulting to 'info'", cfg.Level)
	} else {
		log.SetLevel(level)
	}

	if strings.ToLower(cfg.Format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   true,
		})
	}

	log.Debugf("Log level set to: %s", log.GetLevel().String())
	return log, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

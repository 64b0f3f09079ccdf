// Package config handles application configuration and setup
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings. If output is nil
// the logger writes to stderr, stdout is reserved for the listing.
func CreateLogger(debug, quiet bool, output io.Writer) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	if output == nil {
		output = os.Stderr
	}
	cfg.Output = output
	return log.NewWithConfig(cfg)
}

// OpenLogSink creates the log file, an existing file is truncated.
// Missing parent directories are created.
func OpenLogSink(fileName string) (*os.File, error) {
	if dir := filepath.Dir(fileName); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory '%s': %w", dir, err)
		}
	}

	file, err := os.Create(fileName)
	if err != nil {
		return nil, fmt.Errorf("creating log file '%s': %w", fileName, err)
	}
	return file, nil
}

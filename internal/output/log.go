// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package output provides logging and the YAML manifests printed by the
// command line tool.
//
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{})

// LogConfig configures the global logger.
//
type LogConfig struct {
	// Level is one of debug, info, warn or error. Defaults to info.
	Level string
	// Verbose forces the debug level and enables caller reporting.
	Verbose    bool
	Timestamps bool
}

// SetupLogging configures the global logger to write to w, or os.Stderr if w
// is nil.
//
func SetupLogging(cfg LogConfig, w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}
	level := log.InfoLevel
	if cfg.Level != "" {
		l, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return errors.Wrap(err, "log level")
		}
		level = l
	}
	if cfg.Verbose {
		level = log.DebugLevel
	}
	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: cfg.Timestamps || cfg.Verbose,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
	logger.SetStyles(logStyles())
	return nil
}

// Logger returns the global logger.
//
func Logger() *log.Logger { return logger }

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) { logger.Helper(); logger.Debug(msg, keyvals...) }

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) { logger.Helper(); logger.Info(msg, keyvals...) }

// Warn logs a warning.
func Warn(msg string, keyvals ...interface{}) { logger.Helper(); logger.Warn(msg, keyvals...) }

// Error logs an error.
func Error(msg string, keyvals ...interface{}) { logger.Helper(); logger.Error(msg, keyvals...) }

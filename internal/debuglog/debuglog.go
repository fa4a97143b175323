// ABOUTME: Structured debug logger that writes JSON lines to a log file
// ABOUTME: Keeps the terminal free for command output and the TUI

package debuglog

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// FileName is the log file inside the config directory
const FileName = "debug.log"

var (
	logFile *os.File
	logger  = zerolog.Nop()
	mu      sync.Mutex
)

// Init opens <configDir>/debug.log at the given level.
// If configDir is empty, logging is disabled.
func Init(configDir, level string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	if configDir == "" {
		return nil
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(configDir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	logFile = f
	logger = zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return nil
}

// Close closes the log file and disables logging
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = zerolog.Nop()
}

// Logger returns the current logger; a no-op logger when disabled
func Logger() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Error logs an error with context
func Error(context string, err error) {
	if err == nil {
		return
	}
	l := Logger()
	l.Error().Err(err).Str("context", context).Send()
}

// Info logs an informational message
func Info(format string, args ...interface{}) {
	l := Logger()
	l.Info().Msgf(format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	l := Logger()
	l.Warn().Msgf(format, args...)
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	l := Logger()
	l.Debug().Msgf(format, args...)
}

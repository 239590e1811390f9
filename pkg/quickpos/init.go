// Package quickpos is the core of the QuickPOS terminal: the pricing engine
// for customizable catalog items and the mode-aware navigation router that
// keeps cashier and kiosk screens apart.
//
// The subpackages do the work. This package sets up the process-wide logger
// and holds the errors shared by the configuration and catalog loaders.
package quickpos

import (
	"log/slog"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/internal"
)

// Options configures process-wide logging.
type Options struct {
	LogPath  string // Full path for log file including filename (creates parent directories)
	LogLevel string // debug, info, warn or error; ENVIRONMENT=DEV forces debug
}

// Init configures logging. Call it once, before the first GetLogger.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	if constants.IsDevMode() {
		internal.SetLogLevel(slog.LevelDebug)
	} else {
		internal.SetRawLogLevel(options.LogLevel)
	}
}

// Close flushes and closes the log file, if any.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

package logging

import (
	"log/slog"
	"os"
	"strings"
)

// LevelEnv names the environment variable holding the log level.
const LevelEnv = "LOG_LEVEL"

// ParseLevel maps a level name to a slog level.
//
// Supported values (case-insensitive):
//   - DEBUG: slog.LevelDebug
//   - INFO: slog.LevelInfo
//   - WARN or WARNING: slog.LevelWarn
//   - ERROR: slog.LevelError
//
// Anything else yields slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLogLevel returns the log level from LOG_LEVEL, defaulting to Info.
func GetLogLevel() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

// Package logger provides the zerolog logger used by the monitor.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const TimeFormat = "2006-01-02 15:04:05"

// Init creates a logger writing lines of the form
// "<timestamp> - <LEVEL> - <message>" to w.
// Supported levels: debug, info, warn, error. Defaults to info.
func Init(w io.Writer, level string) zerolog.Logger {
	var lvl zerolog.Level
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(
		zerolog.ConsoleWriter{
			Out:         w,
			NoColor:     true,
			TimeFormat:  TimeFormat,
			PartsOrder:  []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName},
			FormatLevel: formatLevel,
		},
	).Level(lvl).With().Timestamp().Logger()
}

// OpenFile opens path for appending, creating its directory when needed.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, nil
}

func formatLevel(i interface{}) string {
	level, _ := i.(string)
	switch level {
	case zerolog.LevelWarnValue:
		level = "WARNING"
	case zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		level = "CRITICAL"
	case "":
		level = "NOTSET"
	default:
		level = strings.ToUpper(level)
	}
	return "- " + level + " -"
}

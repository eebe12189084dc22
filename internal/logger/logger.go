// File: internal/logger/logger.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide leveled logger for hioload-tcp backed by zerolog.

package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Output formats accepted by SetFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	mu     sync.RWMutex
	out    io.Writer = os.Stdout
	format           = FormatText
	level            = zerolog.InfoLevel
	logger           = build()
)

func build() zerolog.Logger {
	w := out
	if format == FormatText {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SetLevel sets the minimum level: debug, info, warn or error. Unknown
// values leave the level unchanged.
func SetLevel(name string) {
	var l zerolog.Level
	switch strings.ToUpper(name) {
	case "DEBUG":
		l = zerolog.DebugLevel
	case "INFO":
		l = zerolog.InfoLevel
	case "WARN":
		l = zerolog.WarnLevel
	case "ERROR":
		l = zerolog.ErrorLevel
	default:
		return
	}
	mu.Lock()
	level = l
	logger = build()
	mu.Unlock()
}

// SetFormat switches between human-readable text and JSON lines.
// Unknown values leave the format unchanged.
func SetFormat(name string) {
	name = strings.ToLower(name)
	if name != FormatText && name != FormatJSON {
		return
	}
	mu.Lock()
	format = name
	logger = build()
	mu.Unlock()
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	logger = build()
	mu.Unlock()
}

// Enabled reports whether messages at the named level are emitted.
func Enabled(name string) bool {
	l, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return false
	}
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func current() *zerolog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	return &l
}

func Debug(format string, v ...any) {
	current().Debug().Msgf(format, v...)
}

func Info(format string, v ...any) {
	current().Info().Msgf(format, v...)
}

func Warn(format string, v ...any) {
	current().Warn().Msgf(format, v...)
}

func Error(format string, v ...any) {
	current().Error().Msgf(format, v...)
}

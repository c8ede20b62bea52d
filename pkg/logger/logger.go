package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// SetLevel adjusts the global log level. Accepts "debug", "info",
// "warn", "error"; anything else leaves the level unchanged.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(level) {
	case "debug":
		log = log.Level(zerolog.DebugLevel)
	case "info":
		log = log.Level(zerolog.InfoLevel)
	case "warn":
		log = log.Level(zerolog.WarnLevel)
	case "error":
		log = log.Level(zerolog.ErrorLevel)
	}
}

func emit(ev *zerolog.Event, component, msg string, fields map[string]interface{}) {
	if component != "" {
		ev = ev.Str("component", component)
	}
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

// Info logs a message with no component or fields.
func Info(msg string) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info().Msg(msg)
}

// InfoCF logs at info level with a component tag and structured fields.
func InfoCF(component, msg string, fields map[string]interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	emit(log.Info(), component, msg, fields)
}

// DebugCF logs at debug level with a component tag and structured fields.
func DebugCF(component, msg string, fields map[string]interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	emit(log.Debug(), component, msg, fields)
}

// WarnCF logs at warn level with a component tag and structured fields.
func WarnCF(component, msg string, fields map[string]interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	emit(log.Warn(), component, msg, fields)
}

// ErrorCF logs at error level with a component tag and structured fields.
func ErrorCF(component, msg string, fields map[string]interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	emit(log.Error(), component, msg, fields)
}

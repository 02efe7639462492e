// Package logger is the process-wide structured logger.
//
// Calls take a message followed by alternating key/value pairs:
//
//	logger.Info("Server starting", "address", addr)
//
// A lone trailing error is attached as the "error" field, so
// logger.Error("Failed to load artifacts", err) works as expected.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	log = newLogger(os.Stderr, "development", "")
}

// Init configures the global logger for the given environment.
// Development gets console output, every other environment JSON.
// LOG_LEVEL overrides the default level.
func Init(environment string) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(os.Stderr, environment, os.Getenv("LOG_LEVEL"))
}

// SetOutput redirects the logger, used by tests to capture lines.
func SetOutput(w io.Writer, environment string) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(w, environment, "")
}

func newLogger(w io.Writer, environment, level string) zerolog.Logger {
	out := w
	if strings.EqualFold(environment, "development") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
		if strings.EqualFold(environment, "development") {
			lvl = zerolog.DebugLevel
		}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func Debug(msg string, args ...any) { emit(current().Debug(), msg, args) }
func Info(msg string, args ...any)  { emit(current().Info(), msg, args) }
func Warn(msg string, args ...any)  { emit(current().Warn(), msg, args) }
func Error(msg string, args ...any) { emit(current().Error(), msg, args) }

// Fatal logs and exits the process.
func Fatal(msg string, args ...any) { emit(current().Fatal(), msg, args) }

func emit(e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}
	for i := 0; i < len(args); i++ {
		if isError(args, i) {
			e = e.Err(args[i].(error))
			continue
		}
		if i == len(args)-1 {
			e = e.Interface("arg", args[i])
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		e = e.Interface(key, args[i+1])
		i++
	}
	e.Msg(msg)
}

// isError reports whether args[i] is an error standing in a key position,
// as in logger.Error("msg", err, "user_id", 1).
func isError(args []any, i int) bool {
	_, ok := args[i].(error)
	return ok && (len(args)-i)%2 == 1
}

// Package logx wraps zerolog behind the small leveled API the rest of the
// tool uses. Output goes to stderr so result JSON on stdout stays clean.
package logx

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

type Level uint8

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var (
	mu     sync.RWMutex
	logger = newConsoleLogger(os.Stderr)
)

func newConsoleLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger()
}

// SetVerbosity maps the -v flag to a level: 0/1=info, 2=debug, 3+=trace.
func SetVerbosity(v int) {
	switch {
	case v <= 1:
		SetLevel(LevelInfo)
	case v == 2:
		SetLevel(LevelDebug)
	default:
		SetLevel(LevelTrace)
	}
}

func SetLevel(l Level) {
	var zlevel zerolog.Level
	switch l {
	case LevelError:
		zlevel = zerolog.ErrorLevel
	case LevelWarn:
		zlevel = zerolog.WarnLevel
	case LevelInfo:
		zlevel = zerolog.InfoLevel
	case LevelDebug:
		zlevel = zerolog.DebugLevel
	default:
		zlevel = zerolog.TraceLevel
	}
	zerolog.SetGlobalLevel(zlevel)
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	logger = newConsoleLogger(w)
}

func Errorf(format string, a ...any) { get().Error().Msgf(format, a...) }
func Warnf(format string, a ...any)  { get().Warn().Msgf(format, a...) }
func Infof(format string, a ...any)  { get().Info().Msgf(format, a...) }
func Debugf(format string, a ...any) { get().Debug().Msgf(format, a...) }
func Tracef(format string, a ...any) { get().Trace().Msgf(format, a...) }

func get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

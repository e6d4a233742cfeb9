// Package diag defines the diagnostic log stream the ecs core reports
// through. The core never chooses a concrete logging backend for the
// host application; it only calls this narrow interface at a handful of
// sites: a failed App.WithEntity, a system that returns an error, a system
// that panics inside a multi-system wave, and an operation-queue drain
// that fails. Refused cyclic action
// edges, duplicate singleton creation and system registration conflicts
// are returned as typed errors and are not logged.
package diag

import (
	"fmt"
	"log"
	"os"

	"github.com/TheBitDrifter/bark"
)

// Level is one of the usual five-level taxonomy.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
	Fatal
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger is the contract the core calls into. A host application is free
// to adapt it onto whatever structured logger it already runs.
type Logger interface {
	Log(level Level, msg string, args ...any)
}

// StdLogger is the default Logger, a thin adapter over the standard
// library logger. bark only surfaces stack-trace enrichment on errors
// (see Trace), not a leveled log API, so level-tagged text is carried on
// log.Logger the way the teacher keeps its own footprint minimal.
type StdLogger struct {
	out *log.Logger
}

// NewStdLogger creates a Logger writing to stderr, prefixed per level.
func NewStdLogger() *StdLogger {
	return &StdLogger{out: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *StdLogger) Log(level Level, msg string, args ...any) {
	l.out.Printf("[%s] %s", level, fmt.Sprintf(msg, args...))
}

// NopLogger discards everything; useful in tests that don't want noise.
type NopLogger struct{}

func (NopLogger) Log(Level, string, ...any) {}

// Trace wraps err with bark's stack trace, the same helper the teacher
// calls at its two panic sites.
func Trace(err error) error {
	if err == nil {
		return nil
	}
	return bark.AddTrace(err)
}

package engine

import (
	"fmt"
	"log"
	"os"
)

// Logger is the small logging seam handed explicitly to an Engine, instead
// of calling a package-level singleton. The world loader and the renderer
// do not take a Logger. Grounded on Gekko3D-gekko's logging.go Logger interface.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes to the standard log package, prefixed by level.
type DefaultLogger struct {
	out *log.Logger
	err *log.Logger
}

// NewDefaultLogger builds a Logger writing to stdout (debug/info) and
// stderr (warn/error), matching the teacher corpus's preference for
// the standard library's log package over a third-party logger for a
// single-process real-time loop.
func NewDefaultLogger() *DefaultLogger {
	flags := log.LstdFlags
	return &DefaultLogger{
		out: log.New(os.Stdout, "", flags),
		err: log.New(os.Stderr, "", flags),
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.out.Print("DEBUG: " + fmt.Sprintf(format, args...)) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.out.Print("INFO: " + fmt.Sprintf(format, args...)) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.err.Print("WARN: " + fmt.Sprintf(format, args...)) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.err.Print("ERROR: " + fmt.Sprintf(format, args...)) }

type nopLogger struct{}

// NewNopLogger returns a Logger that discards everything, for tests.
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

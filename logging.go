package letterbox

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes info and debug lines to one writer and warnings and
// errors to another. Once a frame source is attached every line carries the
// frame it was logged in.
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	frame  func() uint64
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewWriterLogger(prefix, debug, os.Stdout, os.Stderr, log.LstdFlags|log.Lmicroseconds)
}

func NewWriterLogger(prefix string, debug bool, out, errOut io.Writer, flags int) *DefaultLogger {
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

// SetFrameSource attaches the frame counter printed on each line.
func (l *DefaultLogger) SetFrameSource(frame func() uint64) {
	l.mu.Lock()
	l.frame = frame
	l.mu.Unlock()
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) line(level string, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	frame := l.frame
	l.mu.Unlock()
	if frame != nil {
		msg = fmt.Sprintf("frame=%d %s", frame(), msg)
	}
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, msg)
	}
	return fmt.Sprintf("%s: %s", level, msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.line("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.line("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.line("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.line("ERROR", format, args...))
}

// LoggingModule installs a default logger as a resource. Lines logged while
// frames run are tagged with the frame number.
type LoggingModule struct {
	Prefix string
	Debug  bool
	// Out and Err default to stdout and stderr.
	Out io.Writer
	Err io.Writer
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	out, errOut := m.Out, m.Err
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	logger := NewWriterLogger(m.Prefix, m.Debug, out, errOut, log.LstdFlags|log.Lmicroseconds)
	logger.SetFrameSource(app.Frame)
	app.addResources(logger)
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) SetDebug(enabled bool)             {}
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}

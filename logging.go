package gekko

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

// DefaultLogger writes DEBUG and INFO lines to one writer and WARN and ERROR
// lines to another. Loggers returned by Named share the debug switch with
// their parent.
type DefaultLogger struct {
	state  *loggerState
	prefix string
}

type loggerState struct {
	mu    sync.Mutex
	debug bool
	out   *log.Logger
	err   *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewLogger(os.Stdout, os.Stderr, prefix, debug)
}

func NewLogger(out, err io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		prefix: prefix,
		state: &loggerState{
			debug: debug,
			out:   log.New(out, "", flags),
			err:   log.New(err, "", flags),
		},
	}
}

// Named returns a logger whose prefix is extended with "/name".
func (l *DefaultLogger) Named(name string) *DefaultLogger {
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "/" + name
	}
	return &DefaultLogger{state: l.state, prefix: prefix}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	return l.state.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.state.mu.Lock()
	l.state.debug = enabled
	l.state.mu.Unlock()
}

func (l *DefaultLogger) line(level string, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.state.out.Print(l.line("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.state.out.Print(l.line("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.state.err.Print(l.line("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.state.err.Print(l.line("ERROR", format, args...))
}

// namedLogger prefixes messages for loggers that cannot be forked.
type namedLogger struct {
	Logger
	name string
}

func (n namedLogger) Debugf(format string, args ...any) {
	n.Logger.Debugf(n.name+": "+format, args...)
}
func (n namedLogger) Infof(format string, args ...any) {
	n.Logger.Infof(n.name+": "+format, args...)
}
func (n namedLogger) Warnf(format string, args ...any) {
	n.Logger.Warnf(n.name+": "+format, args...)
}
func (n namedLogger) Errorf(format string, args ...any) {
	n.Logger.Errorf(n.name+": "+format, args...)
}

// Named scopes l to a subsystem such as "renderer" or "scene".
func Named(l Logger, name string) Logger {
	switch t := l.(type) {
	case *DefaultLogger:
		return t.Named(name)
	case *nopLogger:
		return t
	}
	return namedLogger{Logger: l, name: name}
}

// LoggingModule installs a DefaultLogger as a resource. Output and ErrOutput
// default to stdout and stderr.
type LoggingModule struct {
	Prefix    string
	Debug     bool
	Output    io.Writer
	ErrOutput io.Writer
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	out, errOut := m.Output, m.ErrOutput
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	cmd.AddResources(NewLogger(out, errOut, m.Prefix, m.Debug))
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }

func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
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

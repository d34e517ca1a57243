// Package applog provides the small level+writer structured logger used
// by cmd/vex and, optionally, by components that want to narrate core
// activity without pulling in a logging dependency the ambient stack
// otherwise never uses.
package applog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the severity of a log message.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
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
	default:
		return "UNKNOWN"
	}
}

// Logger is a minimal structured logger: level filter, prefix, and
// immutable field sets produced by WithField/WithComponent.
type Logger struct {
	mu       sync.Mutex
	level    Level
	output   io.Writer
	prefix   string
	fields   map[string]any
	disabled bool
}

// Config configures a new Logger.
type Config struct {
	Level  Level
	Output io.Writer
	Prefix string
}

// DefaultConfig returns the default configuration: Info level, stderr,
// prefix "vex".
func DefaultConfig() Config {
	return Config{Level: Info, Output: os.Stderr, Prefix: "vex"}
}

// New creates a Logger from cfg.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{level: cfg.Level, output: cfg.Output, prefix: cfg.Prefix, fields: make(map[string]any)}
}

// WithComponent returns a derived logger tagging every message with the
// given component name.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// WithField returns a derived logger with an added field.
func (l *Logger) WithField(key string, value any) *Logger {
	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{level: l.level, output: l.output, prefix: l.prefix, fields: fields, disabled: l.disabled}
}

// SetLevel sets the minimum level that is emitted.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) Debugf(format string, args ...any) { l.log(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(Info, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(Warn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(Error, format, args...) }

func (l *Logger) log(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.disabled || level < l.level {
		return
	}
	ts := time.Now().Format("2006-01-02T15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("%s [%s] %s: %s", ts, level, l.prefix, msg)
	if len(l.fields) > 0 {
		line += " {"
		first := true
		for k, v := range l.fields {
			if !first {
				line += ", "
			}
			first = false
			line += fmt.Sprintf("%s=%v", k, v)
		}
		line += "}"
	}
	fmt.Fprintln(l.output, line)
}

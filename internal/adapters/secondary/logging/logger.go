package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

var levelOrder = map[entities.LogLevel]int{
	entities.LogLevelDebug: 0,
	entities.LogLevelInfo:  1,
	entities.LogLevelWarn:  2,
	entities.LogLevelError: 3,
}

// Logger provides leveled, component-tagged logging over the standard log package
type Logger struct {
	component string
	level     entities.LogLevel
	out       *log.Logger
}

// New creates a logger for component at the given level writing to the standard logger
func New(component string, level entities.LogLevel) *Logger {
	return &Logger{
		component: component,
		level:     level,
		out:       log.Default(),
	}
}

// FromConfig creates a logger for component using the logging configuration
func FromConfig(component string, config entities.LoggingConfig) *Logger {
	return New(component, config.GetLevel())
}

// NewWithWriter creates a logger that writes to w instead of the standard logger
func NewWithWriter(component string, level entities.LogLevel, w io.Writer) *Logger {
	return &Logger{
		component: component,
		level:     level,
		out:       log.New(w, "", log.LstdFlags),
	}
}

// Named returns a logger for another component sharing level and output
func (l *Logger) Named(component string) *Logger {
	return &Logger{
		component: component,
		level:     l.level,
		out:       l.out,
	}
}

// Level returns the minimum level that is logged
func (l *Logger) Level() entities.LogLevel {
	return l.level
}

// shouldLog checks if the message should be logged based on level
func (l *Logger) shouldLog(msgLevel entities.LogLevel) bool {
	current, ok := levelOrder[l.level]
	if !ok {
		current = levelOrder[entities.LogLevelInfo]
	}
	return levelOrder[msgLevel] >= current
}

func (l *Logger) logf(tag string, msg string, args ...interface{}) {
	l.out.Printf("[%s] [%s] %s", tag, l.component, fmt.Sprintf(msg, args...))
}

// Debug logs debug messages
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelDebug) {
		l.logf("DEBUG", msg, args...)
	}
}

// Info logs informational messages
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelInfo) {
		l.logf("INFO", msg, args...)
	}
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelWarn) {
		l.logf("WARN", msg, args...)
	}
}

// Error logs error messages
func (l *Logger) Error(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelError) {
		l.logf("ERROR", msg, args...)
	}
}

// Success logs completion of an operation at info level
func (l *Logger) Success(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelInfo) {
		l.logf("SUCCESS", msg, args...)
	}
}

// Setup points the standard logger at stderr and, when configured, the log file too.
// The returned function closes the file.
func Setup(config entities.LoggingConfig) (func() error, error) {
	if config.File == "" {
		log.SetOutput(os.Stderr)
		return func() error { return nil }, nil
	}

	file, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304 - path from validated config
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", config.File, err)
	}

	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return func() error {
		log.SetOutput(os.Stderr)
		return file.Close()
	}, nil
}

var _ ports.Logger = (*Logger)(nil)

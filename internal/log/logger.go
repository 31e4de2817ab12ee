// Package log provides logging functionality to both console and file.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// Logger writes output to both console and a log file.
type Logger struct {
	file    *os.File
	console io.Writer
	writer  io.Writer
}

// New creates a new logger that writes to stdout and a log file in logDir.
func New(logDir string) (*Logger, error) {
	return NewWithConsole(logDir, os.Stdout)
}

// NewWithConsole creates a logger whose console half goes to console.
// The MCP server passes os.Stderr because stdout carries the protocol stream.
func NewWithConsole(logDir string, console io.Writer) (*Logger, error) {
	// Ensure log directory exists
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "gametracker.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{
		file:    file,
		console: console,
		writer:  io.MultiWriter(console, file),
	}, nil
}

// Printf writes a formatted message to console and log file.
func (l *Logger) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprint(l.writer, msg)
}

// Println writes a message to console and log file with a newline.
func (l *Logger) Println(args ...interface{}) {
	msg := fmt.Sprintln(args...)
	_, _ = fmt.Fprint(l.writer, msg)
}

// Errorf writes a timestamped error message to stderr and log file.
func (l *Logger) Errorf(format string, args ...interface{}) {
	formatted := stamp(format, args...)
	_, _ = fmt.Fprint(os.Stderr, formatted)
	_, _ = fmt.Fprint(l.file, formatted)
}

// Debugf writes a timestamped message to the log file only.
func (l *Logger) Debugf(format string, args ...interface{}) {
	_, _ = fmt.Fprint(l.file, stamp(format, args...))
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func stamp(format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	return fmt.Sprintf("[%s] %s\n", timestamp, msg)
}

// Global logger instance
var (
	globalLogger *Logger
	debug        atomic.Bool
)

// Init initializes the global logger with console output on stdout.
// Also redirects Go's standard log package to write to the log file.
func Init(logDir string) error {
	return InitWithConsole(logDir, os.Stdout)
}

// InitWithConsole initializes the global logger with the given console writer.
func InitWithConsole(logDir string, console io.Writer) error {
	logger, err := NewWithConsole(logDir, console)
	if err != nil {
		return err
	}
	globalLogger = logger

	// Library code that uses the standard logger ends up in the file
	stdlog.SetOutput(logger.file)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)

	return nil
}

// SetDebug toggles Debugf output.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// DebugEnabled reports whether Debugf output is on.
func DebugEnabled() bool {
	return debug.Load()
}

// Printf uses the global logger to print formatted output.
func Printf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Printf(format, args...)
	} else {
		fmt.Printf(format, args...)
	}
}

// Println uses the global logger to print output with newline.
func Println(args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Println(args...)
	} else {
		fmt.Println(args...)
	}
}

// Errorf uses the global logger to print formatted error output.
func Errorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	} else {
		_, _ = fmt.Fprint(os.Stderr, stamp(format, args...))
	}
}

// Debugf logs to the file when debug output is enabled. Without an
// initialized logger it goes to stderr.
func Debugf(format string, args ...interface{}) {
	if !debug.Load() {
		return
	}
	if globalLogger != nil {
		globalLogger.Debugf(format, args...)
	} else {
		_, _ = fmt.Fprint(os.Stderr, stamp(format, args...))
	}
}

// Close closes the global logger.
func Close() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

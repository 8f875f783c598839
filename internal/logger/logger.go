// Package logger provides levelled logging for datimex.
// Warnings are always printed. When verbose mode is enabled via the
// --verbose flag, debug and info messages are printed as well to help
// users follow the extraction pipeline.
//
// A Logger can be passed explicitly to the components that log; the
// package-level functions write to a process default.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

// Logger writes levelled messages to an output writer.
// It is safe for concurrent use.
type Logger struct {
	mu      sync.RWMutex
	verbose bool
	output  io.Writer
	log     *charmlog.Logger
}

// New creates a logger writing to w. Verbose mode is off.
func New(w io.Writer) *Logger {
	return &Logger{
		output: w,
		log: charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.WarnLevel,
			ReportTimestamp: false,
		}),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard)
}

// SetVerbose enables or disables verbose logging.
func (l *Logger) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
	if v {
		l.log.SetLevel(charmlog.DebugLevel)
	} else {
		l.log.SetLevel(charmlog.WarnLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.verbose
}

// SetOutput sets the output writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.log.SetOutput(w)
}

// Debug prints a message if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...any) {
	l.log.Debugf(format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func (l *Logger) Info(format string, args ...any) {
	l.log.Infof(format, args...)
}

// Warn prints a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log.Warnf(format, args...)
}

// Error prints an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log.Errorf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.verbose {
		fmt.Fprintf(l.output, "\n=== %s ===\n", name)
	}
}

var std = New(os.Stderr)

// Default returns the process-wide logger used by the package functions.
func Default() *Logger {
	return std
}

// SetVerbose enables or disables verbose logging on the default logger.
func SetVerbose(v bool) {
	std.SetVerbose(v)
}

// IsVerbose returns true if verbose mode is enabled on the default logger.
func IsVerbose() bool {
	return std.IsVerbose()
}

// SetOutput sets the output writer of the default logger.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	std.Debug(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	std.Section(name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	std.Info(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	std.Warn(format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	std.Error(format, args...)
}

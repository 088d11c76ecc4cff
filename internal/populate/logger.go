// =============================================================================
// Meter Reading Populator - Engine Logging
// =============================================================================

package populate

import "fmt"

// Logger is the logging interface used by the engine. The CLI installs the
// default logger; tests install a silent one.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// =============================================================================
// DEFAULT LOGGER
// =============================================================================

// defaultLogger prints leveled messages to stdout. Debug output is gated on
// the verbose flag.
type defaultLogger struct {
	verbose bool
}

// NewLogger returns the standard logger used by the CLI.
func NewLogger(verbose bool) Logger {
	return &defaultLogger{verbose: verbose}
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	if l.verbose {
		fmt.Printf("[DEBUG] "+msg+"\n", args...)
	}
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}

// =============================================================================
// NOP LOGGER
// =============================================================================

// nopLogger discards everything. Used when no logger is installed.
type nopLogger struct{}

// NewNopLogger returns a logger that discards all output.
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

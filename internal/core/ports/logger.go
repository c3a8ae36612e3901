package ports

import "io"

// Logger defines the logging interface used across the application.
type Logger interface {
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error, unwrapping structured error chains.
	Error(err error)
	// SetOutput updates the logger's output destination.
	SetOutput(w io.Writer)
	// SetJSON switches between JSON and pretty logging.
	SetJSON(enable bool)
}

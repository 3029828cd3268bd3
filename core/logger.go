package core

// Logger is the minimal logging surface used across the portal. Implementations
// live in services/logger; error reporting backends (Rollbar) plug in there.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

package core

// Logger is the application-wide logging contract.
// Implementations may forward entries to an external error tracker;
// Enable turns that forwarding on or off (it stays off in DEV/TEST).
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

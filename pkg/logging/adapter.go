package logging

// ProbeLogger adapts a Logger to the key/value calling convention
// of probe.Logger: args alternate between string keys and values.
type ProbeLogger struct {
	l Logger
}

// Adapt wraps l for use by probes and the runner.
func Adapt(l Logger) *ProbeLogger {
	if l == nil {
		l = NullLogger{}
	}
	return &ProbeLogger{l: l}
}

// Info logs an informational message.
func (p *ProbeLogger) Info(msg string, args ...any) {
	p.l.Info(msg, Fields(args...)...)
}

// Warn logs a warning message.
func (p *ProbeLogger) Warn(msg string, args ...any) {
	p.l.Warn(msg, Fields(args...)...)
}

// Error logs an error message.
func (p *ProbeLogger) Error(msg string, args ...any) {
	p.l.Error(msg, Fields(args...)...)
}

// Debug logs a debug message.
func (p *ProbeLogger) Debug(msg string, args ...any) {
	p.l.Debug(msg, Fields(args...)...)
}

// Close does not close the wrapped logger; probes share it and its
// owner closes it once the run ends.
func (p *ProbeLogger) Close() error { return nil }

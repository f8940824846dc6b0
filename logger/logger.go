package logger

// Fields carries structured context alongside a log message.
type Fields map[string]any

// Logger is the narrow logging surface the orchestrator and its components
// depend on. Diagnostic narration is advisory: implementations must never
// block the payment flow.
type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)
}

type NoopLogger struct{}

func (NoopLogger) Debug(string, Fields) {}
func (NoopLogger) Info(string, Fields)  {}
func (NoopLogger) Warn(string, Fields)  {}
func (NoopLogger) Error(string, Fields) {}

package port

// Fields carries structured log attributes.
type Fields map[string]interface{}

// LoggerPort abstracts the logging backend so the core never imports a
// concrete logging library.
type LoggerPort interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	WithFields(fields Fields) LoggerPort
}

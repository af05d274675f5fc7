package interfaces

import "context"

// Logger is the leveled logging contract the editing core writes to. The
// method set matches github.com/goliatone/go-logger, so hosts already using
// that package can hand their logger over without an adapter.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers, one per subsystem namespace
// (cms.blocks, cms.pages, ...). A provider may return the same instance for
// every name.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension. Providers that implement it return
// a child logger carrying the supplied fields on every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

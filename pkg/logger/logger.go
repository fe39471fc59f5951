package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Logger is the logging interface shared by the interview packages.
// fields is usually a map[string]any and may be nil.
type Logger interface {
	Info(msg string, fields any)
	Warn(msg string, fields any)
	Debug(msg string, fields any)
	Error(msg string, fields any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type writerLogger struct {
	w   io.Writer
	now func() time.Time
}

// NewWriterLogger builds a logger that writes one line per entry to w.
func NewWriterLogger(w io.Writer) Logger {
	return &writerLogger{w: w, now: time.Now}
}

func (l *writerLogger) Info(msg string, fields any)  { l.write("INFO", msg, fields) }
func (l *writerLogger) Warn(msg string, fields any)  { l.write("WARN", msg, fields) }
func (l *writerLogger) Debug(msg string, fields any) { l.write("DEBUG", msg, fields) }
func (l *writerLogger) Error(msg string, fields any) { l.write("ERROR", msg, fields) }

func (l *writerLogger) write(level, msg string, fields any) {
	if l.w == nil {
		return
	}

	line := fmt.Sprintf("%s %-5s %s", l.now().Format(time.RFC3339), level, msg)
	if fields != nil {
		if b, err := json.Marshal(fields); err == nil {
			line += " obj=" + string(b)
		} else {
			line += fmt.Sprintf(" obj=%q", fmt.Sprintf("%+v", fields))
		}
	}
	_, _ = fmt.Fprintln(l.w, line)
}

// Debug writes a debug entry when enabled and l is non-nil.
func Debug(enabled bool, l Logger, msg string, fields any) {
	if !enabled || l == nil {
		return
	}
	l.Debug(msg, fields)
}

// Error writes an error entry when l is non-nil.
func Error(l Logger, msg string, fields any) {
	if l == nil {
		return
	}
	l.Error(msg, fields)
}

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}

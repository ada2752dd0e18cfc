package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Logger is the logging surface every component writes through.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes plain timestamped lines.
type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}

// SlogLogger adapts a *slog.Logger, carrying the component as an attribute.
type SlogLogger struct{ l *slog.Logger }

func NewSlogLogger(l *slog.Logger) SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return SlogLogger{l: l}
}

func (s SlogLogger) Infof(component string, format string, args ...interface{}) {
	s.l.Info(fmt.Sprintf(format, args...), "component", component)
}

func (s SlogLogger) Errorf(component string, format string, args ...interface{}) {
	s.l.Error(fmt.Sprintf(format, args...), "component", component)
}

// NewTextLogger logs slog text lines at level to w.
func NewTextLogger(w io.Writer, level string) SlogLogger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ResolveLogLevel(level)})
	return NewSlogLogger(slog.New(h))
}

// ResolveLogLevel maps a config name to a level; unknown names mean info.
func ResolveLogLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

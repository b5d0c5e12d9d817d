package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"golang.org/x/term"
)

// Format represents the log output format
type Format int

const (
	FormatAuto Format = iota
	FormatConsole
	FormatJSON
)

// Redacted replaces the value of any attribute whose key looks like a secret
const Redacted = "[REDACTED]"

var secretKeyParts = []string{"token", "password", "secret", "api_key", "apikey"}

// IsSecretKey reports whether an attribute key names a credential value
func IsSecretKey(key string) bool {
	k := strings.ToLower(key)
	if strings.HasPrefix(k, "has_") {
		return false
	}
	for _, part := range secretKeyParts {
		if strings.Contains(k, part) {
			return true
		}
	}
	return false
}

func redact(attr slog.Attr) slog.Attr {
	v := attr.Value.Resolve()
	if IsSecretKey(attr.Key) && !isEmpty(v) {
		return slog.String(attr.Key, Redacted)
	}
	if v.Kind() == slog.KindGroup {
		group := v.Group()
		attrs := make([]any, len(group))
		for i, a := range group {
			attrs[i] = redact(a)
		}
		return slog.Group(attr.Key, attrs...)
	}
	return slog.Attr{Key: attr.Key, Value: v}
}

func isEmpty(v slog.Value) bool {
	switch v.Kind() {
	case slog.KindString:
		return v.String() == ""
	case slog.KindGroup:
		return len(v.Group()) == 0
	case slog.KindAny:
		if v.Any() == nil {
			return true
		}
		if b, ok := v.Any().([]byte); ok {
			return len(b) == 0
		}
	}
	return false
}

// redactHandler masks credential values before they reach the wrapped handler
type redactHandler struct {
	slog.Handler
}

func (h *redactHandler) Handle(ctx context.Context, record slog.Record) error {
	masked := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(redact(a))
		return true
	})
	return h.Handler.Handle(ctx, masked)
}

func (h *redactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = redact(a)
	}
	return &redactHandler{Handler: h.Handler.WithAttrs(masked)}
}

func (h *redactHandler) WithGroup(name string) slog.Handler {
	return &redactHandler{Handler: h.Handler.WithGroup(name)}
}

// NewLogger creates a new slog.Logger writing to stderr when w is nil.
// Terminals get clog console output, anything else gets JSON.
func NewLogger(level slog.Level, w io.Writer) *slog.Logger {
	return NewLoggerWithFormat(level, w, FormatAuto)
}

// NewLoggerWithFormat creates a new slog.Logger with specified format.
// Non-empty attributes with secret-looking keys are always redacted.
func NewLoggerWithFormat(level slog.Level, w io.Writer, format Format) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	if format == FormatAuto {
		format = FormatJSON
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = FormatConsole
		}
	}

	var handler slog.Handler
	switch format {
	case FormatConsole:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithTimeFmt("15:04:05"),
			clog.WithSource(false),
			clog.WithAttrHook(clog.GoerrHook),
		)
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(&redactHandler{Handler: handler})
}

// ParseLogLevel parses a string log level to slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// consoleHandler renders records as "HH:MM:SS LEVEL message key=value ...".
type consoleHandler struct {
	mu    *sync.Mutex
	out   io.Writer
	level slog.Leveler
	color bool
	attrs []slog.Attr
	group string
}

func newConsoleHandler(out io.Writer, level slog.Leveler, color bool) *consoleHandler {
	return &consoleHandler{
		mu:    &sync.Mutex{},
		out:   out,
		level: level,
		color: color,
	}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, rec slog.Record) error {
	var b strings.Builder

	if !rec.Time.IsZero() {
		h.writeDim(&b, rec.Time.Format("15:04:05"))
		b.WriteByte(' ')
	}
	h.writeLevel(&b, rec.Level)
	b.WriteByte(' ')
	b.WriteString(rec.Message)

	for _, attr := range h.attrs {
		h.writeAttr(&b, attr, true)
	}
	rec.Attrs(func(attr slog.Attr) bool {
		h.writeAttr(&b, attr, false)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), h.qualify(attrs)...)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	clone := *h
	if name != "" {
		if clone.group != "" {
			clone.group += "."
		}
		clone.group += name
	}
	return &clone
}

func (h *consoleHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.group == "" {
		return attrs
	}
	qualified := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		attr.Key = h.group + "." + attr.Key
		qualified[i] = attr
	}
	return qualified
}

func (h *consoleHandler) writeAttr(b *strings.Builder, attr slog.Attr, qualified bool) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	b.WriteByte(' ')
	key := attr.Key
	if !qualified && h.group != "" {
		key = h.group + "." + key
	}
	h.writeDim(b, key+"=")
	b.WriteString(formatValue(attr.Value))
}

func (h *consoleHandler) writeLevel(b *strings.Builder, level slog.Level) {
	label := level.String()
	if !h.color {
		b.WriteString(label)
		return
	}
	switch {
	case level >= slog.LevelError:
		b.WriteString(ansiRed + label + ansiReset)
	case level >= slog.LevelWarn:
		b.WriteString(ansiYellow + label + ansiReset)
	case level <= slog.LevelDebug:
		b.WriteString(ansiDim + label + ansiReset)
	default:
		b.WriteString(ansiCyan + label + ansiReset)
	}
}

func (h *consoleHandler) writeDim(b *strings.Builder, s string) {
	if h.color {
		b.WriteString(ansiDim + s + ansiReset)
		return
	}
	b.WriteString(s)
}

func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if strings.ContainsAny(s, " \t\"") {
			return strconv.Quote(s)
		}
		return s
	default:
		return fmt.Sprint(v.Any())
	}
}

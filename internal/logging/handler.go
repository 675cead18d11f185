package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler implements slog.Handler for TTY-optimized text output.
// It colorizes output when the writer supports it and renders paths under
// the user's home directory as "~/...".
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	home   string
	attrs  []slog.Attr
	prefix string

	levelColors map[slog.Level]*color.Color
	timeColor   *color.Color
	keyColor    *color.Color
}

// NewHandler creates a new TTY-optimized text handler.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	home, _ := os.UserHomeDir()
	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
		home: home,
	}

	if SupportsColor(out) {
		h.timeColor = color.New(color.FgHiBlack)
		h.keyColor = color.New(color.FgCyan)
		h.levelColors = map[slog.Level]*color.Color{
			LevelTrace:      color.New(color.FgHiBlack),
			slog.LevelDebug: color.New(color.FgMagenta),
			slog.LevelInfo:  color.New(color.FgGreen),
			slog.LevelWarn:  color.New(color.FgYellow),
			slog.LevelError: color.New(color.FgRed, color.Bold),
		}
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes the record as "TIME LEVEL message key=value...".
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		b.WriteString(h.paint(h.timeColor, r.Time.Format(time.Kitchen)))
		b.WriteByte(' ')
	}

	fmt.Fprintf(&b, "%-5s %s", h.paint(h.levelColor(r.Level), levelName(r.Level)), r.Message)

	for _, a := range h.attrs {
		h.appendAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(b, groupPrefix, ga)
		}
		return
	}

	value := fmt.Sprint(a.Value.Any())
	if err, ok := a.Value.Any().(error); ok {
		value = err.Error()
	}
	value = h.shortenHome(value)
	if strings.ContainsAny(value, " \t\n\"") {
		value = fmt.Sprintf("%q", value)
	}

	fmt.Fprintf(b, " %s=%s", h.paint(h.keyColor, prefix+a.Key), value)
}

// shortenHome replaces a leading home directory with "~".
func (h *Handler) shortenHome(v string) string {
	if h.home == "" || !strings.HasPrefix(v, h.home) {
		return v
	}
	rest := v[len(h.home):]
	if rest == "" {
		return "~"
	}
	if rest[0] == filepath.Separator {
		return "~" + rest
	}
	return v
}

func (h *Handler) levelColor(level slog.Level) *color.Color {
	if h.levelColors == nil {
		return nil
	}
	switch {
	case level >= slog.LevelError:
		return h.levelColors[slog.LevelError]
	case level >= slog.LevelWarn:
		return h.levelColors[slog.LevelWarn]
	case level >= slog.LevelInfo:
		return h.levelColors[slog.LevelInfo]
	case level >= slog.LevelDebug:
		return h.levelColors[slog.LevelDebug]
	default:
		return h.levelColors[LevelTrace]
	}
}

func (h *Handler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func levelName(level slog.Level) string {
	if level <= LevelTrace {
		return "TRACE"
	}
	return level.String()
}

// WithAttrs returns a new Handler with the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newH := *h
	newH.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newH.attrs = append(newH.attrs, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}
		newH.attrs = append(newH.attrs, a)
	}
	return &newH
}

// WithGroup returns a new Handler that prefixes subsequent keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.prefix = h.prefix + name + "."
	return &newH
}

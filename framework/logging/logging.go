// Package logging builds the application's *slog.Logger.
//
//	logger := logging.New(
//	    logging.WithLevel(logging.ParseLevel(cfg.Log.Level)),
//	    logging.WithFormat(cfg.Log.Format),
//	)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Formats accepted by WithFormat.
const (
	FormatJSON = "json"
	FormatText = "text"
)

type options struct {
	level    slog.Level
	format   string
	output   io.Writer
	source   bool
	attrs    []slog.Attr
	handlers []slog.Handler
}

// Option configures New.
type Option func(*options)

func WithLevel(l slog.Level) Option {
	return func(o *options) { o.level = l }
}

// WithFormat selects "json" or "text". Anything else falls back to json.
func WithFormat(format string) Option {
	return func(o *options) { o.format = strings.ToLower(format) }
}

func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

func WithSource(enabled bool) Option {
	return func(o *options) { o.source = enabled }
}

// WithAttr attaches attributes to every record, e.g. the app name.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) { o.attrs = append(o.attrs, attrs...) }
}

// WithHandlers adds handlers that receive every record next to the primary one.
func WithHandlers(hs ...slog.Handler) Option {
	return func(o *options) { o.handlers = append(o.handlers, hs...) }
}

// New returns a logger writing to stdout by default.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	ho := &slog.HandlerOptions{Level: o.level, AddSource: o.source}

	var primary slog.Handler
	if o.format == FormatText {
		primary = slog.NewTextHandler(o.output, ho)
	} else {
		primary = slog.NewJSONHandler(o.output, ho)
	}

	var h slog.Handler = primary
	if len(o.handlers) > 0 {
		h = slogmulti.Fanout(append([]slog.Handler{primary}, o.handlers...)...)
	}
	if len(o.attrs) > 0 {
		h = h.WithAttrs(o.attrs)
	}
	return slog.New(h)
}

// ParseLevel maps a config string to a slog level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

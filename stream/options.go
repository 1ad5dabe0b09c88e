package stream

import (
	"log/slog"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/signadot/go-ojai/token"
	"github.com/signadot/go-ojai/types"
)

// StreamOption configures Reader, Builder and DocumentStream behavior.
type StreamOption func(*streamOpts)

type streamOpts struct {
	dialect   types.Dialect
	keepOpen  bool
	logger    *slog.Logger
	indent    string
	allowDups bool
	typeMap   *TypeMap
}

func makeStreamOpts(opts []StreamOption) *streamOpts {
	o := &streamOpts{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// WithDialect selects the tag vocabulary a Builder writes. Readers accept
// both dialects regardless.
func WithDialect(d types.Dialect) StreamOption {
	return func(opts *streamOpts) {
		opts.dialect = d
	}
}

// WithKeepSourceOpen leaves the underlying reader or writer open when the
// stream is closed or the document is finished.
func WithKeepSourceOpen() StreamOption {
	return func(opts *streamOpts) {
		opts.keepOpen = true
	}
}

// WithLogger sets a logger for debug level tracing of stream decisions.
func WithLogger(l *slog.Logger) StreamOption {
	return func(opts *streamOpts) {
		opts.logger = l
	}
}

// WithIndent makes a Builder write multi-line output indented by indent.
func WithIndent(indent string) StreamOption {
	return func(opts *streamOpts) {
		opts.indent = indent
	}
}

// WithAllowDuplicateNames makes a Reader accept maps which repeat a field
// name.
func WithAllowDuplicateNames() StreamOption {
	return func(opts *streamOpts) {
		opts.allowDups = true
	}
}

func (o *streamOpts) tokenOpts() []token.Opt {
	res := []token.Opt{token.KeepOpen(o.keepOpen)}
	jo := []jsontext.Options{jsontext.AllowDuplicateNames(o.allowDups)}
	if o.indent != "" {
		jo = append(jo, jsontext.WithIndent(o.indent))
	}
	return append(res, token.JSONOptions(jo...))
}

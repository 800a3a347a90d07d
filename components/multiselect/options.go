package multiselect

import (
	"log/slog"
	"net/http"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-multiselect/pkg/config"
	"github.com/goliatone/go-multiselect/pkg/render"
	"github.com/goliatone/go-multiselect/pkg/selection"
	"github.com/goliatone/go-multiselect/pkg/session"
	"github.com/goliatone/go-multiselect/pkg/source"
)

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath       string
	SearchParam     string
	LimitParam      string
	SessionParam    string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	Widget    config.Widget
	Source    source.Source
	Store     session.Store
	Handlers  *selection.Handlers
	Renderers *render.Registry
	Theme     *theme.RendererConfig
	Highlight bool
	Logger    *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       "/api/multiselect",
		SearchParam:     "q",
		LimitParam:      "limit",
		SessionParam:    "session_id",
		DefaultLimit:    50,
		MaxLimit:        200,
		EmptySearchMode: EmptySearchTop,
		Widget:          config.DefaultWidget(),
	}
}

// NewOptions applies fns over DefaultOptions and fills anything left empty.
// Stores, handlers and loggers are created here so handlers built from the
// same Options share them.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchTop
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/multiselect"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.SessionParam == "" {
		opts.SessionParam = "session_id"
	}
	opts.Widget = config.NewWidget(func(w *config.Widget) { *w = opts.Widget })
	if opts.Source == nil {
		opts.Source = source.Static(opts.Widget.NormalizedOptions())
	}
	if opts.Store == nil {
		opts.Store = session.NewMemoryStore(session.DefaultTTL)
	}
	if opts.Handlers == nil {
		opts.Handlers = DefaultHandlers(opts.Widget, opts.Source)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithWidget sets the widget configuration.
func WithWidget(widget config.Widget) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Widget = widget
	}
}

// WithSource replaces the configured options with a dynamic source.
func WithSource(src source.Source) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Source = src
	}
}

func WithStore(store session.Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Store = store
	}
}

// WithHandlers injects a handler set, typically one with overrides or hooks.
func WithHandlers(handlers *selection.Handlers) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Handlers = handlers
	}
}

func WithRenderers(registry *render.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderers = registry
	}
}

func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

// WithHighlight marks query matches in rendered option labels.
func WithHighlight(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Highlight = enabled
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}

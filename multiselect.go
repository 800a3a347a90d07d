// Package multiselect is the entry point for the type-ahead multi-select
// widget. It re-exports the types callers need most and offers one-call
// helpers; the packages under pkg/ and components/ hold the implementation.
package multiselect

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	component "github.com/goliatone/go-multiselect/components/multiselect"
	"github.com/goliatone/go-multiselect/pkg/behavior"
	"github.com/goliatone/go-multiselect/pkg/config"
	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/render"
	"github.com/goliatone/go-multiselect/pkg/renderers/vanilla"
	"github.com/goliatone/go-multiselect/pkg/selection"
)

// Option is a canonical {label, value} pair.
type Option = option.Option

// Widget configures one widget instance.
type Widget = config.Widget

// State is the form data record plus transient UI state.
type State = selection.State

// FormData maps field keys to their selected values.
type FormData = selection.FormData

// Event names a widget intent.
type Event = selection.Event

// Payload carries intent parameters.
type Payload = selection.Payload

// View is the render-ready projection of a widget.
type View = render.View

// RenderOptions describes per-request overrides such as errors, hidden fields
// and theme configuration.
type RenderOptions = render.RenderOptions

// Component bundles a widget with its HTTP handlers.
type Component = component.Component

// Normalize converts heterogeneous option values into canonical options.
func Normalize(values ...any) []Option {
	return option.Normalize(values)
}

// Reduce applies one intent to state without side effects.
func Reduce(event Event, payload Payload, state State) State {
	return selection.Reduce(event, payload, state)
}

// NewHandlers builds the default event handler set.
func NewHandlers(opts ...selection.HandlerOption) *selection.Handlers {
	return selection.NewHandlers(opts...)
}

// NewWidget builds a widget configuration from functional options.
func NewWidget(fns ...config.WidgetFn) Widget {
	return config.NewWidget(fns...)
}

// NewComponent exposes the HTTP component constructor from the top-level
// module.
func NewComponent(fns ...component.OptionFn) *Component {
	return component.New(fns...)
}

// Bind connects an interactive controller for widget to handlers. Intents
// from the controller update the returned dispatcher's state and search
// results become the dropdown options. A nil clock uses the system clock.
func Bind(widget Widget, handlers *selection.Handlers, state State, doc behavior.Document, clock behavior.Clock) (*behavior.Controller, *behavior.Dispatcher) {
	dispatcher := behavior.NewDispatcher(handlers, state)
	ctrl := behavior.Bind(behavior.Config{
		FieldName: widget.FieldName(),
		Debounce:  widget.Debounce(),
		Disabled:  widget.Disabled,
	}, dispatcher, doc, clock)
	return ctrl, dispatcher
}

// RenderHTML renders widget in state with the built-in HTML renderer using
// the options from the widget configuration.
func RenderHTML(ctx context.Context, widget Widget, state State, opts RenderOptions) ([]byte, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	view := render.BuildView(widget, widget.NormalizedOptions(), state)
	return renderer.Render(ctx, view, opts)
}

// ResolveTheme derives renderer theme configuration from a go-theme selector.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	return render.ResolveTheme(selector, name, variant)
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the default stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(multiselect.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

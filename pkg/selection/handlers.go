package selection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-multiselect/pkg/option"
)

// HandlerFunc handles one intent and returns the next state.
type HandlerFunc func(ctx context.Context, payload Payload, state State) (State, error)

// SearchFunc resolves the options matching query for field. When configured,
// the default search handler stores its results under State.Results.
type SearchFunc func(ctx context.Context, field Field, query string) ([]option.Option, error)

// Handlers is the default event handler set. Every event can be overridden
// individually; Dispatch notifies both hooks after data-changing events.
// The zero value dispatches the default handlers without hooks.
type Handlers struct {
	mu       sync.RWMutex
	handlers map[Event]HandlerFunc

	hooks         Hooks
	search        SearchFunc
	maxSelections int
}

// HandlerOption configures Handlers.
type HandlerOption func(*Handlers)

// WithHooks sets both hooks at once.
func WithHooks(hooks Hooks) HandlerOption {
	return func(h *Handlers) {
		h.hooks = hooks
	}
}

// WithChangesetHook sets the validation changeset hook.
func WithChangesetHook(hook Hook) HandlerOption {
	return func(h *Handlers) {
		h.hooks.Changeset = hook
	}
}

// WithFormHook sets the form object hook.
func WithFormHook(hook Hook) HandlerOption {
	return func(h *Handlers) {
		h.hooks.Form = hook
	}
}

// WithSearch installs a search callback used by the default search handler.
func WithSearch(fn SearchFunc) HandlerOption {
	return func(h *Handlers) {
		h.search = fn
	}
}

// WithOptionSearch filters a fixed option list with option.Filter.
func WithOptionSearch(options []option.Option, limit int) HandlerOption {
	options = append([]option.Option{}, options...)
	return WithSearch(func(_ context.Context, _ Field, query string) ([]option.Option, error) {
		return option.Filter(options, query, limit), nil
	})
}

// WithEnforcedMax makes the default select handler ignore selections that
// would exceed max values on a multi-select field.
func WithEnforcedMax(max int) HandlerOption {
	return func(h *Handlers) {
		h.maxSelections = max
	}
}

// NewHandlers builds the default handler set.
func NewHandlers(opts ...HandlerOption) *Handlers {
	h := &Handlers{handlers: make(map[Event]HandlerFunc, len(Events()))}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(h)
	}
	h.hooks = h.hooks.resolved()

	h.handlers[EventSelectOption] = h.SelectOption
	h.handlers[EventRemoveSelection] = reduceHandler(EventRemoveSelection)
	h.handlers[EventClearSelection] = reduceHandler(EventClearSelection)
	h.handlers[EventSearch] = h.Search
	h.handlers[EventShowDropdown] = reduceHandler(EventShowDropdown)
	h.handlers[EventHideDropdown] = reduceHandler(EventHideDropdown)
	return h
}

// Override replaces the handler for event. A nil fn restores the default.
func (h *Handlers) Override(event Event, fn HandlerFunc) error {
	if !event.Known() {
		return fmt.Errorf("selection: unknown event %q", event)
	}
	if fn == nil {
		fn = h.Default(event)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.handlers == nil {
		h.handlers = make(map[Event]HandlerFunc, len(Events()))
	}
	h.handlers[event] = fn
	return nil
}

// Default returns the built-in handler for event, or nil for unknown events.
func (h *Handlers) Default(event Event) HandlerFunc {
	switch event {
	case EventSelectOption:
		return h.SelectOption
	case EventSearch:
		return h.Search
	case EventRemoveSelection, EventClearSelection, EventShowDropdown, EventHideDropdown:
		return reduceHandler(event)
	default:
		return nil
	}
}

// Dispatch runs the handler registered for event. Unknown events return the
// state unchanged without error. Hook errors are returned together with the
// computed state.
func (h *Handlers) Dispatch(ctx context.Context, event Event, payload Payload, state State) (State, error) {
	h.mu.RLock()
	fn, ok := h.handlers[event]
	h.mu.RUnlock()
	if !ok {
		fn = h.Default(event)
	}
	if fn == nil {
		return state, nil
	}

	next, err := fn(ctx, payload, state)
	if err != nil {
		return state, err
	}
	if !event.ChangesData() {
		return next, nil
	}

	field := ParseField(payload.FieldName)
	hooks := h.hooks.resolved()
	var errs []error
	if err := hooks.Changeset.Apply(ctx, field, next.Data); err != nil {
		errs = append(errs, &HookError{Hook: "changeset", Err: err})
	}
	if err := hooks.Form.Apply(ctx, field, next.Data); err != nil {
		errs = append(errs, &HookError{Hook: "form", Err: err})
	}
	return next, errors.Join(errs...)
}

// SelectOption is the default select_option handler.
func (h *Handlers) SelectOption(_ context.Context, payload Payload, state State) (State, error) {
	if h.maxSelections > 0 &&
		AtCapacity(state, payload.FieldName, h.maxSelections) &&
		!state.IsSelected(payload.FieldName, payload.OptionValue) {
		return state, nil
	}
	return Reduce(EventSelectOption, payload, state), nil
}

// Search is the default search handler. It records the query and, when a
// search callback is configured, stores the matching options.
func (h *Handlers) Search(ctx context.Context, payload Payload, state State) (State, error) {
	next := Reduce(EventSearch, payload, state)
	if h.search == nil {
		return next, nil
	}
	field := ParseField(payload.FieldName)
	if field.Key == "" {
		return next, nil
	}
	results, err := h.search(ctx, field, payload.Query)
	if err != nil {
		return state, fmt.Errorf("selection: search %q: %w", field.Key, err)
	}
	if next.Results == nil {
		next.Results = make(map[string][]option.Option)
	}
	next.Results[field.Key] = results
	return next, nil
}

func reduceHandler(event Event) HandlerFunc {
	return func(_ context.Context, payload Payload, state State) (State, error) {
		return Reduce(event, payload, state), nil
	}
}

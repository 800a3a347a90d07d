package selection

import (
	"context"
	"errors"
	"fmt"
)

// Hook receives the form data after every data-changing event. Hosts use one
// hook to keep a validation changeset in sync and another for the form
// object bound to the widget.
type Hook interface {
	Apply(ctx context.Context, field Field, data FormData) error
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, field Field, data FormData) error

// Apply calls fn.
func (fn HookFunc) Apply(ctx context.Context, field Field, data FormData) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, field, data)
}

// NopHook ignores every update.
type NopHook struct{}

// Apply implements Hook.
func (NopHook) Apply(context.Context, Field, FormData) error { return nil }

// Hooks groups the two parallel state holders. Either may be nil.
type Hooks struct {
	Changeset Hook
	Form      Hook
}

func (h Hooks) resolved() Hooks {
	if h.Changeset == nil {
		h.Changeset = NopHook{}
	}
	if h.Form == nil {
		h.Form = NopHook{}
	}
	return h
}

// HookError wraps a failure reported by the changeset or form hook. The state
// returned alongside it is still the computed next state.
type HookError struct {
	Hook string
	Err  error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("selection: %s hook: %v", e.Hook, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// IsHookError reports whether err contains a HookError.
func IsHookError(err error) bool {
	var hookErr *HookError
	return errors.As(err, &hookErr)
}

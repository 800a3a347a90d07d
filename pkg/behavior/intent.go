package behavior

import (
	"context"

	"github.com/goliatone/go-multiselect/pkg/selection"
)

// Intent is a named widget event with its payload.
type Intent struct {
	Event   selection.Event   `json:"event"`
	Payload selection.Payload `json:"payload"`
}

// Emitter forwards intents to the host. The controller does not wait on any
// round-trip the host performs.
type Emitter interface {
	Emit(ctx context.Context, intent Intent)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, intent Intent)

// Emit calls fn.
func (fn EmitterFunc) Emit(ctx context.Context, intent Intent) {
	if fn != nil {
		fn(ctx, intent)
	}
}

// Document exposes the document-wide facilities a widget instance borrows.
type Document interface {
	// OnClickOutside calls fn for clicks landing outside root. The returned
	// release func detaches the listener.
	OnClickOutside(root string, fn func()) (release func())
	// BlurInput removes focus from the text input inside root.
	BlurInput(root string)
}

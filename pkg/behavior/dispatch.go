package behavior

import (
	"context"
	"sync"

	"github.com/goliatone/go-multiselect/pkg/selection"
)

// ChangeFunc observes the state produced by one dispatched intent. err is the
// error returned by the handler, if any.
type ChangeFunc func(intent Intent, state selection.State, err error)

// Dispatcher is an Emitter that runs every intent through selection handlers
// and keeps the resulting state.
type Dispatcher struct {
	mu       sync.Mutex
	handlers *selection.Handlers
	state    selection.State
	err      error
	onChange []ChangeFunc
}

var _ Emitter = (*Dispatcher)(nil)

// NewDispatcher starts from state. A nil handlers uses selection.NewHandlers.
func NewDispatcher(handlers *selection.Handlers, state selection.State) *Dispatcher {
	if handlers == nil {
		handlers = selection.NewHandlers()
	}
	return &Dispatcher{handlers: handlers, state: state.Clone()}
}

// OnChange registers fn to run after every dispatched intent.
func (d *Dispatcher) OnChange(fn ChangeFunc) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.onChange = append(d.onChange, fn)
	d.mu.Unlock()
}

// Emit implements Emitter. Intents are applied one at a time in arrival order.
func (d *Dispatcher) Emit(ctx context.Context, intent Intent) {
	d.mu.Lock()
	next, err := d.handlers.Dispatch(ctx, intent.Event, intent.Payload, d.state)
	d.state = next
	d.err = err
	observers := append([]ChangeFunc(nil), d.onChange...)
	d.mu.Unlock()

	for _, fn := range observers {
		fn(intent, next.Clone(), err)
	}
}

// State returns a copy of the current state.
func (d *Dispatcher) State() selection.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Clone()
}

// Err returns the error from the most recent intent.
func (d *Dispatcher) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Bind builds a controller whose intents go through d. Search results stored
// for the controller's field become its dropdown options.
func Bind(cfg Config, d *Dispatcher, doc Document, clock Clock) *Controller {
	ctrl := New(cfg, d, doc, clock)
	key := selection.ParseField(cfg.FieldName).Key
	d.OnChange(func(intent Intent, state selection.State, err error) {
		if err != nil || intent.Event != selection.EventSearch {
			return
		}
		if results, ok := state.Results[key]; ok {
			ctrl.SetOptions(results)
		}
	})
	return ctrl
}

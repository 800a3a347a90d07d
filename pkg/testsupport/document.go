package testsupport

import (
	"context"
	"sync"

	"github.com/goliatone/go-multiselect/pkg/behavior"
)

// FakeDocument records listener registrations and lets tests simulate
// document clicks.
type FakeDocument struct {
	mu        sync.Mutex
	listeners map[int]func()
	nextID    int
	blurred   []string
}

var _ behavior.Document = (*FakeDocument)(nil)

// NewFakeDocument returns an empty document.
func NewFakeDocument() *FakeDocument {
	return &FakeDocument{listeners: make(map[int]func())}
}

// OnClickOutside implements behavior.Document.
func (d *FakeDocument) OnClickOutside(_ string, fn func()) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.listeners[id] = fn
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.listeners, id)
	}
}

// BlurInput implements behavior.Document.
func (d *FakeDocument) BlurInput(root string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blurred = append(d.blurred, root)
}

// ClickOutside invokes every attached listener.
func (d *FakeDocument) ClickOutside() {
	d.mu.Lock()
	fns := make([]func(), 0, len(d.listeners))
	for _, fn := range d.listeners {
		fns = append(fns, fn)
	}
	d.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Listeners returns the number of attached listeners.
func (d *FakeDocument) Listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// Blurred returns the roots BlurInput was called with.
func (d *FakeDocument) Blurred() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string{}, d.blurred...)
}

// RecordingEmitter collects emitted intents.
type RecordingEmitter struct {
	mu      sync.Mutex
	intents []behavior.Intent
}

var _ behavior.Emitter = (*RecordingEmitter)(nil)

// Emit implements behavior.Emitter.
func (r *RecordingEmitter) Emit(_ context.Context, intent behavior.Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = append(r.intents, intent)
}

// Intents returns a copy of the recorded intents.
func (r *RecordingEmitter) Intents() []behavior.Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]behavior.Intent{}, r.intents...)
}

// Reset drops the recorded intents.
func (r *RecordingEmitter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = nil
}

package behavior

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/selection"
)

const (
	DefaultDebounce  = 300 * time.Millisecond
	DefaultBlurDelay = 150 * time.Millisecond
)

// Key identifies a keyboard key as reported by KeyboardEvent.key.
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
	KeyTab       Key = "Tab"
)

// Phase is the dropdown state of a controller.
type Phase int

const (
	Idle Phase = iota
	Open
)

func (p Phase) String() string {
	if p == Open {
		return "open"
	}
	return "idle"
}

// Config configures a Controller.
type Config struct {
	FieldName string
	Root      string
	Debounce  time.Duration
	BlurDelay time.Duration
	Disabled  bool
}

// Snapshot is a read-only view of the controller state.
type Snapshot struct {
	Phase     Phase
	Highlight int
	Query     string
	Options   int
	Mounted   bool
}

// Controller drives one widget instance.
type Controller struct {
	mu sync.Mutex

	cfg     Config
	emitter Emitter
	doc     Document
	clock   Clock

	search  *Debouncer
	blurGen uint64
	blur    Timer

	ctx     context.Context
	cancel  context.CancelFunc
	release func()
	mounted bool

	phase     Phase
	highlight int
	query     string
	options   []option.Option
}

// New builds a controller. Zero durations fall back to the defaults and a
// nil clock uses SystemClock.
func New(cfg Config, emitter Emitter, doc Document, clock Clock) *Controller {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.BlurDelay <= 0 {
		cfg.BlurDelay = DefaultBlurDelay
	}
	if cfg.Root == "" {
		cfg.Root = selection.ParseField(cfg.FieldName).Key
	}
	if clock == nil {
		clock = SystemClock()
	}
	if emitter == nil {
		emitter = EmitterFunc(nil)
	}
	return &Controller{
		cfg:       cfg,
		emitter:   emitter,
		doc:       doc,
		clock:     clock,
		search:    NewDebouncer(clock, cfg.Debounce),
		highlight: -1,
		ctx:       context.Background(),
	}
}

// Mount attaches the instance to the document. Calling Mount twice is a no-op.
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	if c.doc != nil {
		c.release = c.doc.OnClickOutside(c.cfg.Root, c.ClickOutside)
	}
	c.mounted = true
}

// Unmount cancels pending timers and releases the document listener. It is
// safe to call more than once.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return
	}
	c.search.Cancel()
	c.cancelBlurLocked()
	if c.release != nil {
		c.release()
		c.release = nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.mounted = false
	c.phase = Idle
	c.highlight = -1
}

// SetOptions replaces the option list shown in the dropdown and clamps the
// highlight to it.
func (c *Controller) SetOptions(options []option.Option) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.options = append([]option.Option{}, options...)
	if c.highlight > len(c.options)-1 {
		c.highlight = len(c.options) - 1
	}
}

// Focus opens the dropdown.
func (c *Controller) Focus() {
	c.mu.Lock()
	if !c.activeLocked() {
		c.mu.Unlock()
		return
	}
	c.cancelBlurLocked()
	c.phase = Open
	c.highlight = -1
	ctx, intent := c.ctx, c.intent(selection.EventShowDropdown)
	c.mu.Unlock()

	c.emitter.Emit(ctx, intent)
}

// Blur hides the dropdown after the blur delay so a click on an option,
// which also blurs the input, is delivered first.
func (c *Controller) Blur() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.activeLocked() {
		return
	}
	c.cancelBlurLocked()
	c.blurGen++
	gen := c.blurGen
	c.blur = c.clock.AfterFunc(c.cfg.BlurDelay, func() {
		c.mu.Lock()
		if gen != c.blurGen || !c.mounted {
			c.mu.Unlock()
			return
		}
		c.blur = nil
		if c.phase != Open {
			c.mu.Unlock()
			return
		}
		ctx, intent := c.closeLocked()
		c.mu.Unlock()
		c.emitter.Emit(ctx, intent)
	})
}

// Input records the text typed so far and schedules a debounced search.
func (c *Controller) Input(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.activeLocked() {
		return
	}
	c.query = text
	c.search.Trigger(c.fireSearch)
}

func (c *Controller) fireSearch() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	intent := c.intent(selection.EventSearch)
	intent.Payload.Query = c.query
	ctx := c.ctx
	c.mu.Unlock()

	c.emitter.Emit(ctx, intent)
}

// Key handles a keydown on the text input. The result reports whether the
// browser default action should be prevented.
func (c *Controller) Key(key Key) (preventDefault bool) {
	c.mu.Lock()
	if !c.activeLocked() {
		c.mu.Unlock()
		return false
	}

	if key == KeyTab {
		ctx, intent := c.closeLocked()
		c.mu.Unlock()
		c.emitter.Emit(ctx, intent)
		return false
	}

	if c.phase != Open {
		c.mu.Unlock()
		return false
	}

	switch key {
	case KeyArrowDown:
		c.highlight = clamp(c.highlight+1, -1, len(c.options)-1)
		c.mu.Unlock()
		return true
	case KeyArrowUp:
		c.highlight = clamp(c.highlight-1, -1, len(c.options)-1)
		c.mu.Unlock()
		return true
	case KeyEnter:
		if c.highlight < 0 || c.highlight >= len(c.options) {
			c.mu.Unlock()
			return true
		}
		ctx, intent := c.selectLocked(c.options[c.highlight])
		c.mu.Unlock()
		c.emitter.Emit(ctx, intent)
		return true
	case KeyEscape:
		ctx, intent := c.closeLocked()
		root := c.cfg.Root
		c.mu.Unlock()
		c.emitter.Emit(ctx, intent)
		if c.doc != nil {
			c.doc.BlurInput(root)
		}
		return true
	default:
		c.mu.Unlock()
		return false
	}
}

// Click selects opt as if it had been clicked in the dropdown.
func (c *Controller) Click(opt option.Option) {
	c.mu.Lock()
	if !c.activeLocked() {
		c.mu.Unlock()
		return
	}
	ctx, intent := c.selectLocked(opt)
	c.mu.Unlock()
	c.emitter.Emit(ctx, intent)
}

// Remove emits remove_selection for a chip already selected.
func (c *Controller) Remove(value any) {
	c.mu.Lock()
	if !c.activeLocked() {
		c.mu.Unlock()
		return
	}
	intent := c.intent(selection.EventRemoveSelection)
	intent.Payload.OptionValue = value
	ctx := c.ctx
	c.mu.Unlock()
	c.emitter.Emit(ctx, intent)
}

// Clear emits clear_selection.
func (c *Controller) Clear() {
	c.mu.Lock()
	if !c.activeLocked() {
		c.mu.Unlock()
		return
	}
	ctx, intent := c.ctx, c.intent(selection.EventClearSelection)
	c.mu.Unlock()
	c.emitter.Emit(ctx, intent)
}

// ClickOutside handles a document click outside the widget root.
func (c *Controller) ClickOutside() {
	c.mu.Lock()
	if !c.mounted || c.phase != Open {
		c.mu.Unlock()
		return
	}
	ctx, intent := c.closeLocked()
	c.mu.Unlock()
	c.emitter.Emit(ctx, intent)
}

// Snapshot returns the current controller state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Phase:     c.phase,
		Highlight: c.highlight,
		Query:     c.query,
		Options:   len(c.options),
		Mounted:   c.mounted,
	}
}

// Highlighted returns the highlighted option, if any.
func (c *Controller) Highlighted() (option.Option, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.highlight < 0 || c.highlight >= len(c.options) {
		return option.Option{}, false
	}
	return c.options[c.highlight], true
}

func (c *Controller) activeLocked() bool {
	return c.mounted && !c.cfg.Disabled
}

func (c *Controller) closeLocked() (context.Context, Intent) {
	c.phase = Idle
	c.highlight = -1
	return c.ctx, c.intent(selection.EventHideDropdown)
}

func (c *Controller) selectLocked(opt option.Option) (context.Context, Intent) {
	intent := c.intent(selection.EventSelectOption)
	intent.Payload.OptionValue = opt.Value
	intent.Payload.OptionLabel = opt.Label
	return c.ctx, intent
}

func (c *Controller) cancelBlurLocked() {
	c.blurGen++
	if c.blur != nil {
		c.blur.Stop()
		c.blur = nil
	}
}

func (c *Controller) intent(event selection.Event) Intent {
	return Intent{
		Event:   event,
		Payload: selection.Payload{FieldName: c.cfg.FieldName},
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

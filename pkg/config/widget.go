package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/selection"
)

const (
	DefaultDebounceMS  = 300
	DefaultMaxHeight   = "15rem"
	DefaultPlaceholder = "Search..."
)

// Classes are pass-through CSS class overrides. They carry no behaviour.
type Classes struct {
	Container      string `yaml:"container" json:"container,omitempty"`
	Input          string `yaml:"input" json:"input,omitempty"`
	Dropdown       string `yaml:"dropdown" json:"dropdown,omitempty"`
	Option         string `yaml:"option" json:"option,omitempty"`
	SelectedOption string `yaml:"selected_option" json:"selected_option,omitempty"`
}

// Widget configures one widget instance.
type Widget struct {
	Name          string  `yaml:"name" json:"name"`
	Label         string  `yaml:"label" json:"label,omitempty"`
	Multiple      bool    `yaml:"multiple" json:"multiple"`
	DebounceMS    int     `yaml:"debounce_ms" json:"debounce_ms"`
	MaxHeight     string  `yaml:"max_height" json:"max_height"`
	Placeholder   string  `yaml:"placeholder" json:"placeholder"`
	Disabled      bool    `yaml:"disabled" json:"disabled"`
	MaxSelections int     `yaml:"max_selections" json:"max_selections,omitempty"`
	EnforceMax    bool    `yaml:"enforce_max" json:"enforce_max,omitempty"`
	Required      bool    `yaml:"required" json:"required,omitempty"`
	Strict        bool    `yaml:"strict" json:"strict,omitempty"`
	Classes       Classes `yaml:"classes" json:"classes"`
	Options       []any   `yaml:"options" json:"options,omitempty"`
}

// WidgetFn mutates a widget configuration.
type WidgetFn func(*Widget)

// DefaultWidget returns a widget configuration with defaults applied.
func DefaultWidget() Widget {
	return Widget{
		DebounceMS:  DefaultDebounceMS,
		MaxHeight:   DefaultMaxHeight,
		Placeholder: DefaultPlaceholder,
	}
}

// NewWidget applies fns over the defaults and normalises the result.
func NewWidget(fns ...WidgetFn) Widget {
	w := DefaultWidget()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&w)
	}
	return w.withDefaults()
}

func (w Widget) withDefaults() Widget {
	w.Name = strings.TrimSpace(w.Name)
	if w.DebounceMS <= 0 {
		w.DebounceMS = DefaultDebounceMS
	}
	if strings.TrimSpace(w.MaxHeight) == "" {
		w.MaxHeight = DefaultMaxHeight
	}
	if w.MaxSelections < 0 {
		w.MaxSelections = 0
	}
	if w.Options != nil {
		w.Options = append([]any{}, w.Options...)
	}
	return w
}

// Validate reports configuration errors.
func (w Widget) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return errors.New("config: widget name is required")
	}
	field := selection.ParseField(w.Name)
	if field.Key == "" {
		return fmt.Errorf("config: widget name %q has an empty key", w.Name)
	}
	return nil
}

// FieldName returns the field identifier, adding the multi-select marker
// when Multiple is set.
func (w Widget) FieldName() string {
	field := selection.ParseField(w.Name)
	return selection.FieldName(field.Key, w.Multiple || field.Multiple)
}

// IsMultiple reports whether the widget stores a sequence.
func (w Widget) IsMultiple() bool {
	return selection.ParseField(w.FieldName()).Multiple
}

// Debounce returns the search debounce interval.
func (w Widget) Debounce() time.Duration {
	if w.DebounceMS <= 0 {
		return DefaultDebounceMS * time.Millisecond
	}
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// NormalizedOptions returns the configured options in canonical form.
func (w Widget) NormalizedOptions() []option.Option {
	return option.Normalize(w.Options)
}

// HandlerOptions returns the selection handler options implied by the
// configuration.
func (w Widget) HandlerOptions() []selection.HandlerOption {
	opts := []selection.HandlerOption{
		selection.WithOptionSearch(w.NormalizedOptions(), 0),
	}
	if w.EnforceMax && w.MaxSelections > 0 {
		opts = append(opts, selection.WithEnforcedMax(w.MaxSelections))
	}
	return opts
}

// WithName sets the field name.
func WithName(name string) WidgetFn {
	return func(w *Widget) { w.Name = name }
}

// WithMultiple toggles multi-select mode.
func WithMultiple(multiple bool) WidgetFn {
	return func(w *Widget) { w.Multiple = multiple }
}

// WithPlaceholder sets the input placeholder.
func WithPlaceholder(text string) WidgetFn {
	return func(w *Widget) { w.Placeholder = text }
}

// WithDebounce sets the search debounce interval.
func WithDebounce(d time.Duration) WidgetFn {
	return func(w *Widget) { w.DebounceMS = int(d / time.Millisecond) }
}

// WithMaxSelections sets the advisory selection cap.
func WithMaxSelections(max int) WidgetFn {
	return func(w *Widget) { w.MaxSelections = max }
}

// WithRequired marks the field as requiring at least one selection.
func WithRequired(required bool) WidgetFn {
	return func(w *Widget) { w.Required = required }
}

// WithStrict restricts selections to values present in the option list.
func WithStrict(strict bool) WidgetFn {
	return func(w *Widget) { w.Strict = strict }
}

// WithOptions sets the raw options.
func WithOptions(options ...any) WidgetFn {
	return func(w *Widget) { w.Options = append([]any{}, options...) }
}

// WithClasses sets the CSS class overrides.
func WithClasses(classes Classes) WidgetFn {
	return func(w *Widget) { w.Classes = classes }
}

// WithDisabled toggles the disabled flag.
func WithDisabled(disabled bool) WidgetFn {
	return func(w *Widget) { w.Disabled = disabled }
}

// DecodeWidget reads a YAML widget configuration.
func DecodeWidget(r io.Reader) (Widget, error) {
	if r == nil {
		return Widget{}, errors.New("config: missing reader")
	}
	w := DefaultWidget()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&w); err != nil && !errors.Is(err, io.EOF) {
		return Widget{}, fmt.Errorf("config: decode widget: %w", err)
	}
	w = w.withDefaults()
	if err := w.Validate(); err != nil {
		return Widget{}, err
	}
	return w, nil
}

// LoadWidget reads a YAML widget configuration from path.
func LoadWidget(path string) (Widget, error) {
	f, err := os.Open(path)
	if err != nil {
		return Widget{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return DecodeWidget(f)
}

package render

import (
	"github.com/goliatone/go-multiselect/pkg/config"
	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/selection"
)

// View is the render-ready projection of a widget. Keys are the string
// coercions of option values so templates and clients never compare raw
// values.
type View struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	FieldName   string            `json:"field_name"`
	Label       string            `json:"label,omitempty"`
	Multiple    bool              `json:"multiple"`
	Disabled    bool              `json:"disabled"`
	Placeholder string            `json:"placeholder"`
	MaxHeight   string            `json:"max_height"`
	DebounceMS  int               `json:"debounce_ms"`
	Query       string            `json:"query"`
	Open        bool              `json:"open"`
	AtCapacity  bool              `json:"at_capacity"`
	Remaining   int               `json:"remaining"`
	Classes     config.Classes    `json:"classes"`
	Options     []OptionView      `json:"options"`
	Selected    []OptionView      `json:"selected"`
	Values      []string          `json:"values"`
	Hidden      []HiddenField     `json:"hidden,omitempty"`
	Errors      []string          `json:"errors,omitempty"`
	Messages    map[string]string `json:"messages,omitempty"`
}

// OptionView is one option as presented to the user.
type OptionView struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	LabelHTML string `json:"label_html,omitempty"`
	Selected  bool   `json:"selected"`
}

// BuildView projects widget, its options and state into a View. Search
// results stored in state replace the configured options; otherwise the
// configured options are filtered locally by the current query.
func BuildView(widget config.Widget, options []option.Option, state selection.State) View {
	fieldName := widget.FieldName()
	field := selection.ParseField(fieldName)
	query := state.Query(fieldName)

	visible := options
	if results, ok := state.Results[field.Key]; ok {
		visible = results
	} else if query != "" {
		visible = option.Filter(options, query, 0)
	}

	view := View{
		ID:          "multiselect-" + field.Key,
		Name:        field.Key,
		FieldName:   fieldName,
		Label:       widget.Label,
		Multiple:    field.Multiple,
		Disabled:    widget.Disabled,
		Placeholder: widget.Placeholder,
		MaxHeight:   widget.MaxHeight,
		DebounceMS:  int(widget.Debounce().Milliseconds()),
		Query:       query,
		Open:        state.DropdownVisible(fieldName) && !widget.Disabled,
		AtCapacity:  selection.AtCapacity(state, fieldName, widget.MaxSelections),
		Remaining:   selection.Remaining(state, fieldName, widget.MaxSelections),
		Classes:     widget.Classes,
		Options:     make([]OptionView, 0, len(visible)),
	}

	for _, opt := range visible {
		view.Options = append(view.Options, OptionView{
			Key:      opt.Key(),
			Label:    opt.Label,
			Selected: state.IsSelected(fieldName, opt.Value),
		})
	}

	// Selected values may be absent from the visible list, so labels are
	// resolved against both the configured options and the results.
	lookup := append(append([]option.Option{}, options...), visible...)
	for _, value := range state.Selected(fieldName) {
		key := option.Key(value)
		label := option.LabelFor(lookup, value)
		if label == "" {
			label = key
		}
		view.Selected = append(view.Selected, OptionView{Key: key, Label: label, Selected: true})
		view.Values = append(view.Values, key)
	}
	return view
}

// WithOptions applies per-request render options to a copy of v.
func (v View) WithOptions(opts RenderOptions) View {
	v.Hidden = SortedHiddenFields(opts.Hidden)
	v.Errors = MergeErrors(v.Errors, opts.Errors...)
	v.Messages = Messages(opts.Locale, opts.Translator)
	if opts.Highlight {
		v.Options = append([]OptionView(nil), v.Options...)
		for idx := range v.Options {
			v.Options[idx].LabelHTML = HighlightMatch(v.Options[idx].Label, v.Query)
		}
	}
	return v
}

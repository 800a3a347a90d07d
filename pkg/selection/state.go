package selection

import (
	"maps"

	"github.com/goliatone/go-multiselect/pkg/option"
)

// FormData is the externally owned key/value record the widget reads and
// writes.
type FormData map[string]any

// State bundles the form data with the per-field widget flags.
type State struct {
	Data    FormData                   `json:"data"`
	Queries map[string]string          `json:"queries,omitempty"`
	Visible map[string]bool            `json:"visible,omitempty"`
	Results map[string][]option.Option `json:"results,omitempty"`
}

// NewState wraps data in a State.
func NewState(data FormData) State {
	return State{Data: data}
}

// Clone returns a copy safe to mutate. Sequences stored in Data are copied so
// callers never share backing arrays.
func (s State) Clone() State {
	out := State{
		Data:    make(FormData, len(s.Data)),
		Queries: maps.Clone(s.Queries),
		Visible: maps.Clone(s.Visible),
	}
	for key, value := range s.Data {
		if seq, ok := value.([]any); ok {
			value = append([]any{}, seq...)
		}
		out.Data[key] = value
	}
	if s.Results != nil {
		out.Results = make(map[string][]option.Option, len(s.Results))
		for key, results := range s.Results {
			out.Results[key] = append([]option.Option{}, results...)
		}
	}
	return out
}

// Selected returns the selected values for field. Single fields yield zero or
// one value.
func (s State) Selected(fieldName string) []any {
	field := ParseField(fieldName)
	value, ok := s.Data[field.Key]
	if !ok || value == nil {
		return nil
	}
	if field.Multiple {
		return sequence(value)
	}
	return []any{value}
}

// IsSelected reports whether value is selected in field.
func (s State) IsSelected(fieldName string, value any) bool {
	return contains(s.Selected(fieldName), value)
}

// Query returns the last recorded search query for field.
func (s State) Query(fieldName string) string {
	return s.Queries[ParseField(fieldName).Key]
}

// DropdownVisible reports the dropdown flag for field.
func (s State) DropdownVisible(fieldName string) bool {
	return s.Visible[ParseField(fieldName).Key]
}

// sequence coerces a stored multi-select value into a slice.
func sequence(value any) []any {
	switch v := value.(type) {
	case nil:
		return []any{}
	case []any:
		return append([]any{}, v...)
	case []string:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, item)
		}
		return out
	default:
		return []any{v}
	}
}

func contains(values []any, value any) bool {
	key := option.Key(value)
	for _, candidate := range values {
		if option.Key(candidate) == key {
			return true
		}
	}
	return false
}

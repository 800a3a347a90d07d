package option

import (
	"fmt"
	"strings"
)

// Option is the canonical label/value pair all display and comparison logic
// operates on.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value any    `json:"value" yaml:"value"`
}

// Key returns the comparison key for the option value.
func (o Option) Key() string {
	return Key(o.Value)
}

// Key coerces a value into the string form used for equality checks. Values
// that stringify identically compare equal, so 1 and "1" are the same
// selection.
func Key(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Equal reports whether a and b share the same comparison key.
func Equal(a, b any) bool {
	return Key(a) == Key(b)
}

// Labels returns the labels of the provided options in order.
func Labels(options []Option) []string {
	if len(options) == 0 {
		return nil
	}
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.Label)
	}
	return out
}

// Find returns the first option whose value matches value by key.
func Find(options []Option, value any) (Option, bool) {
	key := Key(value)
	for _, opt := range options {
		if opt.Key() == key {
			return opt, true
		}
	}
	return Option{}, false
}

// LabelFor resolves the display label for value, falling back to its string
// form when no option matches.
func LabelFor(options []Option, value any) string {
	if opt, ok := Find(options, value); ok {
		return opt.Label
	}
	return strings.TrimSpace(Key(value))
}

package selection

import "strings"

// MultiMarker is the field-name suffix marking a multi-select field.
const MultiMarker = "[]"

// Field is a parsed field identifier.
type Field struct {
	Name     string
	Key      string
	Multiple bool
}

// ParseField strips a trailing multi-select marker from name. The marker,
// not any payload hint, decides whether the field is multi-select.
func ParseField(name string) Field {
	trimmed := strings.TrimSpace(name)
	if key, ok := strings.CutSuffix(trimmed, MultiMarker); ok {
		return Field{Name: trimmed, Key: key, Multiple: true}
	}
	return Field{Name: trimmed, Key: trimmed}
}

// FieldName formats key back into a field identifier.
func FieldName(key string, multiple bool) string {
	if multiple {
		return key + MultiMarker
	}
	return key
}

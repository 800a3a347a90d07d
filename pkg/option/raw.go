package option

import "fmt"

// Raw is the closed set of option shapes accepted by NormalizeRaw. The
// variants are Pair, Record, Text and Other.
type Raw interface {
	isRaw()
}

// Pair is an option that already carries an explicit label and value.
type Pair struct {
	Label string
	Value any
}

// Record is a keyed descriptor exposing label and value fields.
type Record struct {
	Label any
	Value any
}

// Text is a bare string used as both label and value.
type Text string

// Other wraps any value that matches none of the known shapes.
type Other struct {
	Value any
}

func (Pair) isRaw()   {}
func (Record) isRaw() {}
func (Text) isRaw()   {}
func (Other) isRaw()  {}

// LabelValuer is implemented by domain types that can describe themselves as
// an option.
type LabelValuer interface {
	OptionLabel() string
	OptionValue() any
}

// Classify maps a dynamic value onto its Raw variant.
func Classify(value any) Raw {
	switch v := value.(type) {
	case Raw:
		return v
	case Option:
		return Pair{Label: v.Label, Value: v.Value}
	case *Option:
		if v == nil {
			return Other{Value: nil}
		}
		return Pair{Label: v.Label, Value: v.Value}
	case [2]string:
		return Pair{Label: v[0], Value: v[1]}
	case [2]any:
		return Pair{Label: Key(v[0]), Value: v[1]}
	case []any:
		if len(v) == 2 {
			return Pair{Label: Key(v[0]), Value: v[1]}
		}
	case LabelValuer:
		return Pair{Label: v.OptionLabel(), Value: v.OptionValue()}
	case string:
		return Text(v)
	case map[string]any:
		if rec, ok := recordFromStringMap(v); ok {
			return rec
		}
	case map[string]string:
		if rec, ok := recordFromStringMap(widen(v)); ok {
			return rec
		}
	case map[any]any:
		if rec, ok := recordFromAnyMap(v); ok {
			return rec
		}
	}
	return Other{Value: value}
}

func recordFromStringMap(m map[string]any) (Record, bool) {
	label, hasLabel := m["label"]
	value, hasValue := m["value"]
	if !hasLabel && !hasValue {
		return Record{}, false
	}
	if !hasLabel {
		label = value
	}
	if !hasValue {
		value = label
	}
	return Record{Label: label, Value: value}, true
}

func recordFromAnyMap(m map[any]any) (Record, bool) {
	converted := make(map[string]any, 2)
	for key, value := range m {
		name, ok := key.(string)
		if !ok {
			name = fmt.Sprint(key)
		}
		if name == "label" || name == "value" {
			converted[name] = value
		}
	}
	return recordFromStringMap(converted)
}

func widen(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = value
	}
	return out
}

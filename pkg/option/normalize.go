package option

// Normalize converts raw option descriptors into canonical options. The result
// has the same length and order as the input.
func Normalize(values []any) []Option {
	if len(values) == 0 {
		return []Option{}
	}
	out := make([]Option, 0, len(values))
	for _, value := range values {
		out = append(out, normalizeOne(Classify(value)))
	}
	return out
}

// NormalizeRaw converts already classified descriptors.
func NormalizeRaw(values []Raw) []Option {
	if len(values) == 0 {
		return []Option{}
	}
	out := make([]Option, 0, len(values))
	for _, value := range values {
		out = append(out, normalizeOne(value))
	}
	return out
}

// FromStrings builds options where every label equals its value.
func FromStrings(values []string) []Option {
	out := make([]Option, 0, len(values))
	for _, value := range values {
		out = append(out, Option{Label: value, Value: value})
	}
	return out
}

// Values returns the option values in order.
func Values(options []Option) []any {
	out := make([]any, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.Value)
	}
	return out
}

// Generic returns the options as a []any so they can be fed back into
// Normalize.
func Generic(options []Option) []any {
	out := make([]any, 0, len(options))
	for _, opt := range options {
		out = append(out, opt)
	}
	return out
}

func normalizeOne(raw Raw) Option {
	switch v := raw.(type) {
	case Pair:
		return Option{Label: v.Label, Value: v.Value}
	case Record:
		return Option{Label: Key(v.Label), Value: v.Value}
	case Text:
		return Option{Label: string(v), Value: string(v)}
	case Other:
		return Option{Label: Key(v.Value), Value: v.Value}
	default:
		return Option{Label: Key(raw), Value: raw}
	}
}

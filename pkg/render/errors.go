package render

import (
	"strings"

	"github.com/goliatone/go-multiselect/pkg/selection"
)

// ErrorMessages flattens err, including errors joined with errors.Join, into
// trimmed, de-duplicated messages. Hook errors contribute the message of the
// hook itself.
func ErrorMessages(err error) []string {
	if err == nil {
		return nil
	}
	var messages []string
	collectMessages(err, &messages)
	return normalizeMessages(messages)
}

// MergeErrors concatenates message slices, trimming whitespace and removing
// duplicates while preserving order.
func MergeErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func collectMessages(err error, dest *[]string) {
	if hookErr, ok := err.(*selection.HookError); ok && hookErr.Err != nil {
		collectMessages(hookErr.Err, dest)
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			if inner != nil {
				collectMessages(inner, dest)
			}
		}
		return
	}
	*dest = append(*dest, err.Error())
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

package vanilla

import "strings"

// sanitizeClassList drops reserved "ms-" tokens so overrides cannot spoof the
// semantic hooks the stylesheet targets.
func sanitizeClassList(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "ms-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

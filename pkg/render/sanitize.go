package render

import (
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// LabelPolicy returns the sanitizer applied to HTML option labels. Only
// inline emphasis survives.
func LabelPolicy() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "strong", "em", "i", "mark", "span")
		policy.AllowAttrs("class").OnElements("span", "mark")
		labelPolicy = policy
	})
	return labelPolicy
}

// SanitizeLabel strips everything but inline emphasis from label.
func SanitizeLabel(label string) string {
	return LabelPolicy().Sanitize(label)
}

// HighlightMatch escapes label and wraps the first case-insensitive
// occurrence of query in a mark element. The result is sanitized.
func HighlightMatch(label, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return SanitizeLabel(html.EscapeString(label))
	}
	start, end, ok := foldIndex(label, query)
	if !ok {
		return SanitizeLabel(html.EscapeString(label))
	}
	var b strings.Builder
	b.WriteString(html.EscapeString(label[:start]))
	b.WriteString("<mark>")
	b.WriteString(html.EscapeString(label[start:end]))
	b.WriteString("</mark>")
	b.WriteString(html.EscapeString(label[end:]))
	return SanitizeLabel(b.String())
}

// foldIndex returns the byte range of the first run of runes in s that
// equals query under simple Unicode case folding. Offsets index s itself.
func foldIndex(s, query string) (int, int, bool) {
	n := utf8.RuneCountInString(query)
	for start := 0; start < len(s); {
		end, runes := start, 0
		for ; runes < n && end < len(s); runes++ {
			_, size := utf8.DecodeRuneInString(s[end:])
			end += size
		}
		if runes < n {
			break
		}
		if strings.EqualFold(s[start:end], query) {
			return start, end, true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		start += size
	}
	return 0, 0, false
}

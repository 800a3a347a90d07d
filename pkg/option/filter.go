package option

import (
	"sort"
	"strings"
)

// Filter returns the options matching query. Matching is a case-insensitive
// substring test on the label and the value key; options whose label starts
// with the query sort ahead of other matches, otherwise input order is kept.
// An empty query returns every option. A limit <= 0 means no limit.
func Filter(options []Option, query string, limit int) []Option {
	query = strings.TrimSpace(query)
	if query == "" {
		return clip(append([]Option{}, options...), limit)
	}

	q := strings.ToLower(query)
	matches := make([]matched, 0, len(options))
	for _, opt := range options {
		label := strings.ToLower(opt.Label)
		key := strings.ToLower(opt.Key())
		if !strings.Contains(label, q) && !strings.Contains(key, q) {
			continue
		}
		matches = append(matches, matched{
			option:   opt,
			isPrefix: strings.HasPrefix(label, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	out := make([]Option, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.option)
	}
	return clip(out, limit)
}

type matched struct {
	option   Option
	isPrefix bool
}

func clip(options []Option, limit int) []Option {
	if limit > 0 && len(options) > limit {
		return options[:limit]
	}
	return options
}

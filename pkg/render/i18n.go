package render

import (
	"fmt"
	"strings"
)

// Translator resolves localized strings.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// Chrome string keys.
const (
	MessageNoResults = "multiselect.no_results"
	MessageClear     = "multiselect.clear"
	MessageRemove    = "multiselect.remove"
	MessageCapacity  = "multiselect.capacity"
)

var defaultMessages = map[string]string{
	MessageNoResults: "No results",
	MessageClear:     "Clear selection",
	MessageRemove:    "Remove",
	MessageCapacity:  "Selection limit reached",
}

// Messages resolves the chrome strings for locale.
func Messages(locale string, t Translator) map[string]string {
	out := make(map[string]string, len(defaultMessages))
	for key, fallback := range defaultMessages {
		out[shortKey(key)] = translate(locale, key, fallback, t)
	}
	return out
}

func translate(locale, key, fallback string, t Translator) string {
	if t == nil {
		return fallback
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return fallback
}

func shortKey(key string) string {
	_, short, _ := strings.Cut(key, ".")
	return short
}

// MapTranslator is a Translator backed by locale -> key -> message maps.
type MapTranslator map[string]map[string]string

// Translate implements Translator.
func (m MapTranslator) Translate(locale, key string, _ ...any) (string, error) {
	if messages, ok := m[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg, nil
		}
	}
	if base, _, found := strings.Cut(locale, "-"); found {
		if messages, ok := m[base]; ok {
			if msg, ok := messages[key]; ok {
				return msg, nil
			}
		}
	}
	return "", fmt.Errorf("render: missing translation %q for locale %q", key, locale)
}

package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry per-request data that customise output without
// touching the widget configuration.
type RenderOptions struct {
	// Theme supplies partial overrides, tokens and asset URLs resolved through
	// go-theme. A nil theme renders the built-in template.
	Theme *theme.RendererConfig
	// Hidden adds hidden inputs (CSRF tokens, session ids) next to the widget.
	Hidden map[string]string
	// Errors are messages shown under the widget, typically produced by the
	// changeset hook.
	Errors []string
	// Locale and Translator localise the widget chrome strings.
	Locale     string
	Translator Translator
	// Highlight marks the query match inside option labels.
	Highlight bool
	// Page wraps the widget in a standalone HTML document with its assets.
	Page bool
}

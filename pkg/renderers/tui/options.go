package tui

import (
	"github.com/goliatone/go-multiselect/pkg/selection"
	"github.com/goliatone/go-multiselect/pkg/source"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// DefaultSearchThreshold is the option count above which the prompt asks for
// a search query before listing options.
const DefaultSearchThreshold = 15

// Theme captures optional formatting hints the driver can apply when printing
// messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the Prompter.
type Option func(*Prompter)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Prompter) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(p *Prompter) {
		if format != "" {
			p.outputFormat = format
		}
	}
}

// WithHandlers dispatches intents through handlers instead of the defaults
// derived from the widget configuration.
func WithHandlers(handlers *selection.Handlers) Option {
	return func(p *Prompter) {
		if handlers != nil {
			p.handlers = handlers
		}
	}
}

// WithSource reads options from src instead of the widget configuration.
func WithSource(src source.Source) Option {
	return func(p *Prompter) {
		if src != nil {
			p.source = src
		}
	}
}

// WithSearchThreshold overrides DefaultSearchThreshold. A negative value
// never asks for a query.
func WithSearchThreshold(n int) Option {
	return func(p *Prompter) {
		p.searchThreshold = n
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(p *Prompter) {
		p.theme = theme
	}
}

package multiselect

import (
	"context"
	"strings"

	"github.com/goliatone/go-multiselect/pkg/config"
	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/selection"
	"github.com/goliatone/go-multiselect/pkg/source"
	"github.com/goliatone/go-multiselect/pkg/validation"
)

// Search filters options by query within the clamped limit. An empty query
// yields nothing in EmptySearchNone mode and the leading options otherwise.
func Search(options []option.Option, query string, limit int, opts Options) []option.Option {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}
	if strings.TrimSpace(query) == "" && opts.EmptySearchMode == EmptySearchNone {
		return nil
	}
	return option.Filter(options, query, limit)
}

// SearchSource loads options from src and searches them.
func SearchSource(ctx context.Context, src source.Source, query string, limit int, opts Options) ([]option.Option, error) {
	options, err := src.Options(ctx)
	if err != nil {
		return nil, err
	}
	return Search(options, query, limit, opts), nil
}

// DefaultHandlers builds the widget handler set with search served from src.
// Required and strict widgets validate every change through a changeset hook.
func DefaultHandlers(widget config.Widget, src source.Source) *selection.Handlers {
	opts := widget.HandlerOptions()
	if widget.Required || widget.Strict {
		opts = append(opts, selection.WithChangesetHook(validation.Changeset(widget, src)))
	}
	opts = append(opts, selection.WithSearch(func(ctx context.Context, _ selection.Field, query string) ([]option.Option, error) {
		options, err := src.Options(ctx)
		if err != nil {
			return nil, err
		}
		return option.Filter(options, query, 0), nil
	}))
	return selection.NewHandlers(opts...)
}

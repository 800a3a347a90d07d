package source

import (
	"context"

	"github.com/goliatone/go-multiselect/pkg/option"
)

// Source yields the options a widget offers.
type Source interface {
	Options(ctx context.Context) ([]option.Option, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]option.Option, error)

// Options implements Source.
func (fn SourceFunc) Options(ctx context.Context) ([]option.Option, error) {
	return fn(ctx)
}

// Static serves a fixed option list.
type Static []option.Option

// Options implements Source.
func (s Static) Options(ctx context.Context) ([]option.Option, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]option.Option{}, s...), nil
}

// FromRaw normalizes values once and serves them as a Static source.
func FromRaw(values ...any) Static {
	return Static(option.Normalize(values))
}

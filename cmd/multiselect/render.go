package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-multiselect/components/multiselect"
	"github.com/goliatone/go-multiselect/pkg/config"
	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/render"
	"github.com/goliatone/go-multiselect/pkg/renderers/vanilla"
	"github.com/goliatone/go-multiselect/pkg/selection"
	"github.com/goliatone/go-multiselect/pkg/source"
)

type renderFlags struct {
	format    string
	page      bool
	selected  []string
	query     string
	open      bool
	highlight bool
	locale    string
}

func newRenderCmd(flags *globalFlags) *cobra.Command {
	rf := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the widget to stdout",
		Long: `Render the widget as an HTML fragment, a full HTML page or the JSON view.
Selections and the search query are applied through the default event handlers
before rendering.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.serverConfig()
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), cfg, *rf)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&rf.format, "format", "f", "html", "output format: html or json")
	f.BoolVar(&rf.page, "page", false, "wrap the fragment in a standalone HTML page")
	f.StringSliceVarP(&rf.selected, "select", "s", nil, "option values to select, in order")
	f.StringVarP(&rf.query, "query", "q", "", "search query to apply")
	f.BoolVar(&rf.open, "open", false, "render with the dropdown open")
	f.BoolVar(&rf.highlight, "highlight", false, "highlight the query inside option labels")
	f.StringVar(&rf.locale, "locale", "", "locale used for widget messages")
	return cmd
}

func runRender(ctx context.Context, out io.Writer, cfg config.Server, rf renderFlags) error {
	widget, err := loadWidget(cfg)
	if err != nil {
		return err
	}
	themeCfg, err := loadTheme(cfg)
	if err != nil {
		return err
	}
	src := staticSource(cfg, widget)

	state, hookErr := applyIntents(ctx, widget, src, rf)
	if hookErr != nil && !selection.IsHookError(hookErr) {
		return hookErr
	}

	options, err := src.Options(ctx)
	if err != nil {
		return fmt.Errorf("load options: %w", err)
	}
	view := render.BuildView(widget, options, state)

	var renderer render.Renderer
	switch strings.ToLower(rf.format) {
	case "", "html":
		renderer, err = vanilla.New()
		if err != nil {
			return err
		}
	case "json":
		renderer = render.JSONRenderer{Indent: true}
	default:
		return fmt.Errorf("unknown format %q", rf.format)
	}

	body, err := renderer.Render(ctx, view, render.RenderOptions{
		Theme:     themeCfg,
		Errors:    render.ErrorMessages(hookErr),
		Locale:    rf.locale,
		Highlight: rf.highlight,
		Page:      rf.page,
	})
	if err != nil {
		return err
	}
	if _, err := out.Write(body); err != nil {
		return err
	}
	_, err = io.WriteString(out, "\n")
	return err
}

// applyIntents replays the command line choices as widget intents.
func applyIntents(ctx context.Context, widget config.Widget, src source.Source, rf renderFlags) (selection.State, error) {
	handlers := multiselect.DefaultHandlers(widget, src)
	fieldName := widget.FieldName()
	state := selection.NewState(selection.FormData{})

	options, err := src.Options(ctx)
	if err != nil {
		return state, fmt.Errorf("load options: %w", err)
	}

	var errs []error
	dispatch := func(event selection.Event, payload selection.Payload) error {
		payload.FieldName = fieldName
		next, err := handlers.Dispatch(ctx, event, payload, state)
		state = next
		if err != nil {
			if !selection.IsHookError(err) {
				return err
			}
			errs = append(errs, err)
		}
		return nil
	}

	for _, value := range rf.selected {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		payload := selection.Payload{OptionValue: value, OptionLabel: value}
		if opt, ok := option.Find(options, value); ok {
			payload.OptionValue = opt.Value
			payload.OptionLabel = opt.Label
		}
		if err := dispatch(selection.EventSelectOption, payload); err != nil {
			return state, err
		}
	}
	if rf.query != "" {
		if err := dispatch(selection.EventSearch, selection.Payload{Query: rf.query}); err != nil {
			return state, err
		}
	}
	if rf.open || rf.query != "" {
		if err := dispatch(selection.EventShowDropdown, selection.Payload{}); err != nil {
			return state, err
		}
	}
	return state, errors.Join(errs...)
}

package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-multiselect/pkg/config"
	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/selection"
	"github.com/goliatone/go-multiselect/pkg/source"
)

// Prompter drives one widget from a terminal. Choices become the same
// intents the browser widget emits and flow through selection.Handlers.
type Prompter struct {
	widget          config.Widget
	driver          PromptDriver
	handlers        *selection.Handlers
	source          source.Source
	outputFormat    OutputFormat
	searchThreshold int
	theme           Theme
}

// New builds a Prompter for widget. Without WithPromptDriver the survey
// driver is used.
func New(widget config.Widget, options ...Option) *Prompter {
	p := &Prompter{
		widget:          widget,
		outputFormat:    OutputFormatPrettyText,
		searchThreshold: DefaultSearchThreshold,
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver()
	}
	if p.source == nil {
		p.source = source.Static(widget.NormalizedOptions())
	}
	if p.handlers == nil {
		p.handlers = selection.NewHandlers(append(widget.HandlerOptions(),
			selection.WithSearch(func(ctx context.Context, _ selection.Field, query string) ([]option.Option, error) {
				options, err := p.source.Options(ctx)
				if err != nil {
					return nil, err
				}
				return option.Filter(options, query, 0), nil
			}))...)
	}
	return p
}

// Run prompts once and returns the resulting state. Hook errors are shown to
// the user and returned joined; the state still reflects the choices made.
func (p *Prompter) Run(ctx context.Context, state selection.State) (selection.State, error) {
	fieldName := p.widget.FieldName()
	field := selection.ParseField(fieldName)

	options, err := p.source.Options(ctx)
	if err != nil {
		return state, fmt.Errorf("tui: load options: %w", err)
	}

	var errs []error
	if p.searchThreshold >= 0 && len(options) > p.searchThreshold {
		query, err := p.driver.Input(ctx, InputConfig{
			Message: p.message("Search"),
			Default: state.Query(fieldName),
			Help:    p.widget.Placeholder,
		})
		if err != nil {
			return state, err
		}
		state, err = p.dispatch(ctx, selection.EventSearch, selection.Payload{FieldName: fieldName, Query: query}, state, &errs)
		if err != nil {
			return state, err
		}
		options = state.Results[field.Key]
	}
	if len(options) == 0 {
		_ = p.driver.Info(ctx, p.theme.InfoPrefix+"No results")
		return state, ErrNoOptions
	}

	labels := promptLabels(options)
	if field.Multiple {
		state, err = p.runMulti(ctx, fieldName, options, labels, state, &errs)
	} else {
		state, err = p.runSingle(ctx, fieldName, options, labels, state, &errs)
	}
	if err != nil {
		return state, err
	}

	for _, e := range errs {
		_ = p.driver.Info(ctx, p.theme.ErrorPrefix+e.Error())
	}
	return state, errors.Join(errs...)
}

func (p *Prompter) runSingle(ctx context.Context, fieldName string, options []option.Option, labels []string, state selection.State, errs *[]error) (selection.State, error) {
	defaultIndex := -1
	for idx, opt := range options {
		if state.IsSelected(fieldName, opt.Value) {
			defaultIndex = idx
			break
		}
	}
	idx, err := p.driver.Select(ctx, SelectConfig{
		Message:      p.message(""),
		Options:      labels,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return state, err
	}
	if idx < 0 || idx >= len(options) {
		return state, nil
	}
	chosen := options[idx]
	return p.dispatch(ctx, selection.EventSelectOption, selection.Payload{
		FieldName:   fieldName,
		OptionValue: chosen.Value,
		OptionLabel: chosen.Label,
	}, state, errs)
}

func (p *Prompter) runMulti(ctx context.Context, fieldName string, options []option.Option, labels []string, state selection.State, errs *[]error) (selection.State, error) {
	var defaults []int
	for idx, opt := range options {
		if state.IsSelected(fieldName, opt.Value) {
			defaults = append(defaults, idx)
		}
	}
	picked, err := p.driver.MultiSelect(ctx, SelectConfig{
		Message:  p.message(""),
		Options:  labels,
		Defaults: defaults,
	})
	if err != nil {
		return state, err
	}

	chosen := make(map[int]bool, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(options) {
			chosen[idx] = true
		}
	}

	if len(chosen) == 0 && len(state.Selected(fieldName)) > 0 {
		confirmed, err := p.driver.Confirm(ctx, ConfirmConfig{Message: "Clear the current selection?"})
		if err != nil {
			return state, err
		}
		if confirmed {
			return p.dispatch(ctx, selection.EventClearSelection, selection.Payload{FieldName: fieldName}, state, errs)
		}
		return state, nil
	}

	for idx, opt := range options {
		wasSelected := state.IsSelected(fieldName, opt.Value)
		switch {
		case chosen[idx] && !wasSelected:
			state, err = p.dispatch(ctx, selection.EventSelectOption, selection.Payload{
				FieldName:   fieldName,
				OptionValue: opt.Value,
				OptionLabel: opt.Label,
			}, state, errs)
		case !chosen[idx] && wasSelected:
			state, err = p.dispatch(ctx, selection.EventRemoveSelection, selection.Payload{
				FieldName:   fieldName,
				OptionValue: opt.Value,
			}, state, errs)
		}
		if err != nil {
			return state, err
		}
	}
	return state, nil
}

// dispatch runs one intent. Hook errors are collected; handler failures stop
// the flow.
func (p *Prompter) dispatch(ctx context.Context, event selection.Event, payload selection.Payload, state selection.State, errs *[]error) (selection.State, error) {
	next, err := p.handlers.Dispatch(ctx, event, payload, state)
	if err == nil {
		return next, nil
	}
	if selection.IsHookError(err) {
		*errs = append(*errs, err)
		return next, nil
	}
	return state, err
}

func (p *Prompter) message(prefix string) string {
	label := strings.TrimSpace(p.widget.Label)
	if label == "" {
		label = selection.ParseField(p.widget.Name).Key
	}
	if prefix != "" {
		label = prefix + " " + label
	}
	return label
}

// promptLabels returns option labels, suffixed with the option key where two
// options share a label so every entry stays distinguishable.
func promptLabels(options []option.Option) []string {
	counts := make(map[string]int, len(options))
	for _, opt := range options {
		counts[opt.Label]++
	}
	labels := make([]string, len(options))
	for idx, opt := range options {
		labels[idx] = opt.Label
		if counts[opt.Label] > 1 {
			labels[idx] = fmt.Sprintf("%s (%s)", opt.Label, opt.Key())
		}
	}
	return labels
}

// Output serializes the widget's field from state in the configured format.
func (p *Prompter) Output(state selection.State) ([]byte, error) {
	fieldName := p.widget.FieldName()
	field := selection.ParseField(fieldName)
	values := state.Selected(fieldName)

	switch p.outputFormat {
	case OutputFormatJSON:
		var payload any = values
		if !field.Multiple {
			payload = state.Data[field.Key]
		}
		out, err := json.Marshal(map[string]any{field.Key: payload})
		if err != nil {
			return nil, fmt.Errorf("tui: encode output: %w", err)
		}
		return out, nil
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for _, value := range values {
			form.Add(fieldName, option.Key(value))
		}
		return []byte(form.Encode()), nil
	default:
		options, _ := p.source.Options(context.Background())
		labels := make([]string, 0, len(values))
		for _, value := range values {
			label := option.LabelFor(options, value)
			if label == "" {
				label = option.Key(value)
			}
			labels = append(labels, label)
		}
		return []byte(field.Key + ": " + strings.Join(labels, ", ")), nil
	}
}

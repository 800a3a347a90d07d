// Package validation checks a field's selection against widget rules and
// exposes the check as a changeset hook.
package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-multiselect/pkg/config"
	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/selection"
	"github.com/goliatone/go-multiselect/pkg/source"
)

// Issue is one validation failure.
type Issue struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (i Issue) Error() string {
	return i.Message
}

// Result captures the validation outcome for one field.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Err returns nil for a valid result and an *Error otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Issues: r.Issues}
}

// Error reports every issue of an invalid result.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	messages := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		messages = append(messages, issue.Message)
	}
	return strings.Join(messages, "; ")
}

// Unwrap exposes each issue so callers can list them individually.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, len(e.Issues))
	for _, issue := range e.Issues {
		out = append(out, issue)
	}
	return out
}

// Rules constrain one field. Zero values disable a rule.
type Rules struct {
	Required      bool
	MaxSelections int
	// Allowed, when non-nil, lists the only values that may be selected.
	Allowed []option.Option
}

// RulesFor derives rules from widget. Allowed is only set for strict widgets.
func RulesFor(widget config.Widget, options []option.Option) Rules {
	rules := Rules{
		Required:      widget.Required,
		MaxSelections: widget.MaxSelections,
	}
	if widget.Strict {
		rules.Allowed = append([]option.Option{}, options...)
	}
	return rules
}

// Validate checks the value stored for field in data.
func Validate(field selection.Field, data selection.FormData, rules Rules) Result {
	result := Result{Valid: true}
	name := field.Key
	values := selectedValues(field, data)

	if rules.Required && len(values) == 0 {
		result.add(Issue{Field: name, Message: fmt.Sprintf("%s is required", name)})
	}
	if field.Multiple && rules.MaxSelections > 0 && len(values) > rules.MaxSelections {
		result.add(Issue{
			Field:   name,
			Message: fmt.Sprintf("%s allows at most %d selections", name, rules.MaxSelections),
		})
	}
	if rules.Allowed != nil {
		for _, value := range values {
			if _, ok := option.Find(rules.Allowed, value); ok {
				continue
			}
			key := option.Key(value)
			result.add(Issue{
				Field:   name,
				Value:   key,
				Message: fmt.Sprintf("%q is not an available option for %s", key, name),
			})
		}
	}
	return result
}

func (r *Result) add(issue Issue) {
	r.Valid = false
	r.Issues = append(r.Issues, issue)
}

func selectedValues(field selection.Field, data selection.FormData) []any {
	state := selection.NewState(data)
	return state.Selected(selection.FieldName(field.Key, field.Multiple))
}

// Changeset returns a hook validating every data change against widget.
// Options for strict widgets are read from src on each change so reloaded
// option lists apply immediately.
func Changeset(widget config.Widget, src source.Source) selection.Hook {
	return selection.HookFunc(func(ctx context.Context, field selection.Field, data selection.FormData) error {
		var options []option.Option
		if widget.Strict {
			if src == nil {
				return errors.New("validation: strict widget without an option source")
			}
			loaded, err := src.Options(ctx)
			if err != nil {
				return fmt.Errorf("validation: load options: %w", err)
			}
			options = loaded
		}
		return Validate(field, data, RulesFor(widget, options)).Err()
	})
}

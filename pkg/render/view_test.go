package render_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-multiselect/pkg/config"
	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/render"
	"github.com/goliatone/go-multiselect/pkg/selection"
)

func cityWidget(fns ...config.WidgetFn) (config.Widget, []option.Option) {
	base := []config.WidgetFn{
		config.WithName("cities[]"),
		config.WithOptions([2]string{"Berlin", "ber"}, [2]string{"Bern", "brn"}, "Paris"),
	}
	widget := config.NewWidget(append(base, fns...)...)
	return widget, widget.NormalizedOptions()
}

func TestBuildView_MarksSelectedOptions(t *testing.T) {
	widget, options := cityWidget()
	state := selection.NewState(selection.FormData{"cities": []any{"brn"}})

	view := render.BuildView(widget, options, state)

	if view.Name != "cities" || view.FieldName != "cities[]" || !view.Multiple {
		t.Fatalf("unexpected identity: %+v", view)
	}
	want := []render.OptionView{
		{Key: "ber", Label: "Berlin"},
		{Key: "brn", Label: "Bern", Selected: true},
		{Key: "Paris", Label: "Paris"},
	}
	if diff := cmp.Diff(want, view.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"brn"}, view.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if view.Selected[0].Label != "Bern" {
		t.Fatalf("expected chip label Bern, got %q", view.Selected[0].Label)
	}
}

func TestBuildView_FiltersByQueryWithoutResults(t *testing.T) {
	widget, options := cityWidget()
	state := selection.Reduce(selection.EventSearch, selection.Payload{FieldName: "cities[]", Query: "ber"}, selection.NewState(nil))
	state = selection.Reduce(selection.EventShowDropdown, selection.Payload{FieldName: "cities[]"}, state)

	view := render.BuildView(widget, options, state)

	if !view.Open {
		t.Fatalf("expected open dropdown")
	}
	if diff := cmp.Diff([]string{"Berlin", "Bern"}, optionLabels(view.Options)); diff != "" {
		t.Fatalf("filtered labels mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildView_PrefersStoredResults(t *testing.T) {
	widget, options := cityWidget()
	state := selection.NewState(nil)
	state.Results = map[string][]option.Option{
		"cities": {{Label: "Lisbon", Value: "lis"}},
	}

	view := render.BuildView(widget, options, state)

	if diff := cmp.Diff([]string{"Lisbon"}, optionLabels(view.Options)); diff != "" {
		t.Fatalf("result labels mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildView_UnknownSelectionFallsBackToKey(t *testing.T) {
	widget, options := cityWidget()
	state := selection.NewState(selection.FormData{"cities": []any{42}})

	view := render.BuildView(widget, options, state)

	want := []render.OptionView{{Key: "42", Label: "42", Selected: true}}
	if diff := cmp.Diff(want, view.Selected); diff != "" {
		t.Fatalf("selected mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildView_Capacity(t *testing.T) {
	widget, options := cityWidget(config.WithMaxSelections(1))
	state := selection.NewState(selection.FormData{"cities": []any{"ber"}})

	view := render.BuildView(widget, options, state)

	if !view.AtCapacity || view.Remaining != 0 {
		t.Fatalf("expected capacity reached, got at_capacity=%v remaining=%d", view.AtCapacity, view.Remaining)
	}
}

func TestBuildView_DisabledNeverOpen(t *testing.T) {
	widget, options := cityWidget(config.WithDisabled(true))
	state := selection.Reduce(selection.EventShowDropdown, selection.Payload{FieldName: "cities[]"}, selection.NewState(nil))

	if view := render.BuildView(widget, options, state); view.Open {
		t.Fatalf("disabled widget should not render open")
	}
}

func TestView_WithOptions(t *testing.T) {
	widget, options := cityWidget()
	state := selection.Reduce(selection.EventSearch, selection.Payload{FieldName: "cities[]", Query: "ern"}, selection.NewState(nil))
	view := render.BuildView(widget, options, state)

	got := view.WithOptions(render.RenderOptions{
		Hidden:    map[string]string{"session_id": "abc"},
		Errors:    []string{" too many ", "too many"},
		Highlight: true,
	})

	if diff := cmp.Diff([]render.HiddenField{{Name: "session_id", Value: "abc"}}, got.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"too many"}, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got.Options[0].LabelHTML != "B<mark>ern</mark>" {
		t.Fatalf("unexpected highlight %q", got.Options[0].LabelHTML)
	}
	if got.Messages["no_results"] != "No results" {
		t.Fatalf("expected default messages, got %v", got.Messages)
	}
	if view.Hidden != nil {
		t.Fatalf("WithOptions mutated the receiver")
	}
	for _, opt := range view.Options {
		if strings.Contains(opt.LabelHTML, "<mark>") {
			t.Fatalf("WithOptions highlighted the receiver's options: %#v", opt)
		}
	}
}

func optionLabels(options []render.OptionView) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.Label)
	}
	return out
}

func selectionWith(values ...any) selection.State {
	return selection.NewState(selection.FormData{"cities": values})
}

package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-multiselect/pkg/config"
	"github.com/goliatone/go-multiselect/pkg/selection"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	multiIdx  [][]int
	confirm   []bool

	inputPos   int
	selectPos  int
	multiPos   int
	confirmPos int

	selectConfigs []SelectConfig
	infoMessages  []string
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func tagsWidget() config.Widget {
	return config.NewWidget(
		config.WithName("tags[]"),
		config.WithOptions("go", "rust", [2]any{"Zig", 3}),
	)
}

func TestPrompter_MultiSelectDiffsIntoIntents(t *testing.T) {
	driver := &stubDriver{multiIdx: [][]int{{1, 2}}}
	prompter := New(tagsWidget(), WithPromptDriver(driver))
	start := selection.NewState(selection.FormData{"tags": []any{"go"}})

	state, err := prompter.Run(context.Background(), start)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]any{"rust", 3}, state.Selected("tags[]")); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, driver.selectConfigs[0].Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"go", "rust", "Zig"}, driver.selectConfigs[0].Options); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if !start.IsSelected("tags[]", "go") {
		t.Fatalf("Run mutated the input state")
	}
}

func TestPrompter_EmptyChoiceConfirmsClear(t *testing.T) {
	tests := []struct {
		name    string
		confirm bool
		want    int
	}{
		{name: "confirmed", confirm: true, want: 0},
		{name: "declined", confirm: false, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := &stubDriver{multiIdx: [][]int{{}}, confirm: []bool{tt.confirm}}
			prompter := New(tagsWidget(), WithPromptDriver(driver))

			state, err := prompter.Run(context.Background(), selection.NewState(selection.FormData{"tags": []any{"go"}}))
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if got := len(state.Selected("tags[]")); got != tt.want {
				t.Fatalf("expected %d selections, got %d", tt.want, got)
			}
		})
	}
}

func TestPrompter_SingleSelect(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1}}
	widget := config.NewWidget(config.WithName("city"), config.WithOptions("Berlin", "Paris"))
	prompter := New(widget, WithPromptDriver(driver))

	state, err := prompter.Run(context.Background(), selection.NewState(selection.FormData{"city": "Berlin"}))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if state.Data["city"] != "Paris" {
		t.Fatalf("expected Paris, got %v", state.Data["city"])
	}
	if driver.selectConfigs[0].DefaultIndex != 0 {
		t.Fatalf("expected current value as default, got %d", driver.selectConfigs[0].DefaultIndex)
	}
}

func TestPrompter_SearchesLargeOptionSets(t *testing.T) {
	driver := &stubDriver{inputs: []string{"ru"}, multiIdx: [][]int{{0}}}
	prompter := New(tagsWidget(), WithPromptDriver(driver), WithSearchThreshold(2))

	state, err := prompter.Run(context.Background(), selection.NewState(nil))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"rust"}, driver.selectConfigs[0].Options); diff != "" {
		t.Fatalf("searched labels mismatch (-want +got):\n%s", diff)
	}
	if state.Query("tags[]") != "ru" || !state.IsSelected("tags[]", "rust") {
		t.Fatalf("unexpected state: %#v", state)
	}
}

func TestPrompter_NoResults(t *testing.T) {
	driver := &stubDriver{inputs: []string{"zzz"}}
	prompter := New(tagsWidget(), WithPromptDriver(driver), WithSearchThreshold(0))

	_, err := prompter.Run(context.Background(), selection.NewState(nil))
	if !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}
	if len(driver.infoMessages) != 1 {
		t.Fatalf("expected a no-results message, got %v", driver.infoMessages)
	}
}

func TestPrompter_HookErrorsAreReported(t *testing.T) {
	driver := &stubDriver{multiIdx: [][]int{{0}}}
	handlers := selection.NewHandlers(selection.WithFormHook(selection.HookFunc(
		func(context.Context, selection.Field, selection.FormData) error { return errors.New("form is locked") },
	)))
	prompter := New(tagsWidget(), WithPromptDriver(driver), WithHandlers(handlers), WithTheme(Theme{ErrorPrefix: "! "}))

	state, err := prompter.Run(context.Background(), selection.NewState(nil))
	if err == nil || !strings.Contains(err.Error(), "form is locked") {
		t.Fatalf("expected hook error, got %v", err)
	}
	if !state.IsSelected("tags[]", "go") {
		t.Fatalf("state should keep the selection despite hook errors")
	}
	if len(driver.infoMessages) != 1 || !strings.HasPrefix(driver.infoMessages[0], "! ") {
		t.Fatalf("expected themed error message, got %v", driver.infoMessages)
	}
}

func TestPrompter_Output(t *testing.T) {
	state := selection.NewState(selection.FormData{"tags": []any{"rust", 3}})
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{format: OutputFormatJSON, want: `{"tags":["rust",3]}`},
		{format: OutputFormatFormURLEncoded, want: "tags%5B%5D=rust&tags%5B%5D=3"},
		{format: OutputFormatPrettyText, want: "tags: rust, Zig"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			prompter := New(tagsWidget(), WithPromptDriver(&stubDriver{}), WithOutputFormat(tt.format))
			out, err := prompter.Output(state)
			if err != nil {
				t.Fatalf("output: %v", err)
			}
			if string(out) != tt.want {
				t.Fatalf("got %q want %q", out, tt.want)
			}
		})
	}
}

func TestPromptLabels_DisambiguatesDuplicates(t *testing.T) {
	widget := config.NewWidget(config.WithName("x"), config.WithOptions([2]string{"Same", "a"}, [2]string{"Same", "b"}, "Other"))
	got := promptLabels(widget.NormalizedOptions())
	want := []string{"Same (a)", "Same (b)", "Other"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	other := errors.New("boom")
	if translateSurveyErr(other) != other {
		t.Fatalf("unexpected translation of generic error")
	}
}

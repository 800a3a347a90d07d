package selection

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-multiselect/pkg/option"
)

type recordingHook struct {
	calls []FormData
	err   error
}

func (r *recordingHook) Apply(_ context.Context, _ Field, data FormData) error {
	r.calls = append(r.calls, data)
	return r.err
}

func TestHandlers_DispatchNotifiesBothHooks(t *testing.T) {
	changeset := &recordingHook{}
	form := &recordingHook{}
	h := NewHandlers(WithChangesetHook(changeset), WithFormHook(form))

	state, err := h.Dispatch(context.Background(), EventSelectOption, Payload{OptionValue: "x", FieldName: "tags[]"}, NewState(FormData{}))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(changeset.calls) != 1 || len(form.calls) != 1 {
		t.Fatalf("expected both hooks called once, got %d and %d", len(changeset.calls), len(form.calls))
	}
	if diff := cmp.Diff(state.Data, form.calls[0]); diff != "" {
		t.Fatalf("form hook saw different data (-state +hook):\n%s", diff)
	}

	if _, err := h.Dispatch(context.Background(), EventShowDropdown, Payload{FieldName: "tags[]"}, state); err != nil {
		t.Fatalf("dispatch show: %v", err)
	}
	if len(changeset.calls) != 1 {
		t.Fatalf("visibility events must not notify hooks")
	}
}

func TestHandlers_WithoutHooks(t *testing.T) {
	h := NewHandlers()
	state, err := h.Dispatch(context.Background(), EventClearSelection, Payload{FieldName: "country"}, NewState(FormData{"country": "fr"}))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if state.Data["country"] != nil {
		t.Fatalf("expected cleared value, got %#v", state.Data)
	}
}

func TestHandlers_HookErrorsJoined(t *testing.T) {
	h := NewHandlers(WithHooks(Hooks{
		Changeset: &recordingHook{err: errors.New("invalid")},
		Form:      HookFunc(func(context.Context, Field, FormData) error { return errors.New("detached") }),
	}))

	state, err := h.Dispatch(context.Background(), EventSelectOption, Payload{OptionValue: "x", FieldName: "country"}, NewState(FormData{}))
	if err == nil {
		t.Fatalf("expected hook error")
	}
	if !strings.Contains(err.Error(), "changeset hook: invalid") || !strings.Contains(err.Error(), "form hook: detached") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsHookError(err) {
		t.Fatalf("expected a HookError, got %T", err)
	}
	if state.Data["country"] != "x" {
		t.Fatalf("state must still be computed, got %#v", state.Data)
	}
}

func TestHandlers_UnknownEventIsNoop(t *testing.T) {
	h := NewHandlers()
	prior := NewState(FormData{"a": 1})
	got, err := h.Dispatch(context.Background(), Event("reset_all"), Payload{FieldName: "a"}, prior)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cmp.Equal(prior, got) {
		t.Fatalf("state changed: %#v", got)
	}
}

func TestHandlers_Override(t *testing.T) {
	h := NewHandlers()
	err := h.Override(EventSearch, func(_ context.Context, p Payload, s State) (State, error) {
		next := s.Clone()
		next.Data["searched"] = strings.ToUpper(p.Query)
		return next, nil
	})
	if err != nil {
		t.Fatalf("override: %v", err)
	}

	state, err := h.Dispatch(context.Background(), EventSearch, Payload{Query: "abc", FieldName: "f"}, NewState(FormData{}))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if state.Data["searched"] != "ABC" {
		t.Fatalf("override not used: %#v", state.Data)
	}

	if err := h.Override(EventSearch, nil); err != nil {
		t.Fatalf("restore default: %v", err)
	}
	state, _ = h.Dispatch(context.Background(), EventSearch, Payload{Query: "abc", FieldName: "f"}, NewState(FormData{}))
	if state.Query("f") != "abc" {
		t.Fatalf("default not restored: %#v", state)
	}

	if err := h.Override(Event("nope"), nil); err == nil {
		t.Fatalf("expected error for unknown event")
	}
}

func TestHandlers_ZeroValueUsesDefaults(t *testing.T) {
	var h Handlers

	state, err := h.Dispatch(context.Background(), EventSelectOption, Payload{OptionValue: "go", FieldName: "tags[]"}, NewState(FormData{}))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !state.IsSelected("tags[]", "go") {
		t.Fatalf("expected default select handler, got %#v", state.Data)
	}

	err = h.Override(EventClearSelection, func(_ context.Context, _ Payload, s State) (State, error) {
		return s, nil
	})
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	state, err = h.Dispatch(context.Background(), EventClearSelection, Payload{FieldName: "tags[]"}, state)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !state.IsSelected("tags[]", "go") {
		t.Fatalf("override not used on zero value: %#v", state.Data)
	}
}

func TestHandlers_SearchCallbackStoresResults(t *testing.T) {
	options := option.FromStrings([]string{"Berlin", "Bern", "Paris"})
	h := NewHandlers(WithOptionSearch(options, 10))

	state, err := h.Dispatch(context.Background(), EventSearch, Payload{Query: "ber", FieldName: "city"}, NewState(FormData{}))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if diff := cmp.Diff([]string{"Berlin", "Bern"}, option.Labels(state.Results["city"])); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}
}

func TestHandlers_SearchErrorKeepsState(t *testing.T) {
	boom := errors.New("backend down")
	h := NewHandlers(WithSearch(func(context.Context, Field, string) ([]option.Option, error) {
		return nil, boom
	}))
	prior := NewState(FormData{})
	got, err := h.Dispatch(context.Background(), EventSearch, Payload{Query: "x", FieldName: "city"}, prior)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped search error, got %v", err)
	}
	if got.Queries != nil {
		t.Fatalf("expected prior state on error, got %#v", got)
	}
}

func TestHandlers_EnforcedMax(t *testing.T) {
	h := NewHandlers(WithEnforcedMax(2))
	ctx := context.Background()
	state := NewState(FormData{})

	for _, v := range []string{"a", "b", "c"} {
		var err error
		state, err = h.Dispatch(ctx, EventSelectOption, Payload{OptionValue: v, FieldName: "tags[]"}, state)
		if err != nil {
			t.Fatalf("dispatch %s: %v", v, err)
		}
	}
	if diff := cmp.Diff([]any{"a", "b"}, state.Data["tags"]); diff != "" {
		t.Fatalf("cap not enforced (-want +got):\n%s", diff)
	}
}

func TestHandlers_MaxIsAdvisoryByDefault(t *testing.T) {
	h := NewHandlers()
	state := NewState(FormData{"tags": []any{"a", "b"}})
	state, _ = h.Dispatch(context.Background(), EventSelectOption, Payload{OptionValue: "c", FieldName: "tags[]"}, state)
	if len(state.Selected("tags[]")) != 3 {
		t.Fatalf("expected advisory cap, got %#v", state.Data)
	}
}

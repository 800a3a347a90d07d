package multiselect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-multiselect/pkg/config"
	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/selection"
	"github.com/goliatone/go-multiselect/pkg/session"
	"github.com/goliatone/go-multiselect/pkg/source"
)

type handlerResponse struct {
	Data []option.Option `json:"data"`
}

func cityWidget() config.Widget {
	return config.NewWidget(
		config.WithName("cities[]"),
		config.WithOptions([2]string{"Berlin", "ber"}, [2]string{"Bern", "brn"}, "Paris"),
	)
}

func postEvent(t *testing.T, h http.Handler, req EventRequest) EventResponse {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	httpReq := httptest.NewRequest(http.MethodPost, "/api/multiselect/events", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httpReq)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp EventResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestEvents_SelectRemoveRoundTrip(t *testing.T) {
	h := NewHandler(WithWidget(cityWidget()))

	first := postEvent(t, h, EventRequest{
		Event:   selection.EventSelectOption,
		Payload: selection.Payload{OptionValue: "ber", OptionLabel: "Berlin"},
	})
	if first.SessionID == "" {
		t.Fatalf("expected a session id")
	}
	if !first.State.IsSelected("cities[]", "ber") {
		t.Fatalf("expected ber selected, got %#v", first.State.Data)
	}
	if !strings.Contains(first.HTML, `data-remove="ber"`) {
		t.Fatalf("expected rendered chip in html:\n%s", first.HTML)
	}
	if !strings.Contains(first.HTML, `name="session_id" value="`+first.SessionID+`"`) {
		t.Fatalf("expected session hidden field in html:\n%s", first.HTML)
	}

	again := postEvent(t, h, EventRequest{
		Event:     selection.EventSelectOption,
		SessionID: first.SessionID,
		Payload:   selection.Payload{OptionValue: "ber"},
	})
	if got := again.State.Selected("cities[]"); len(got) != 1 {
		t.Fatalf("expected deduplicated selection, got %v", got)
	}

	removed := postEvent(t, h, EventRequest{
		Event:     selection.EventRemoveSelection,
		SessionID: first.SessionID,
		Payload:   selection.Payload{OptionValue: "ber"},
	})
	if removed.SessionID != first.SessionID {
		t.Fatalf("session changed: %s vs %s", removed.SessionID, first.SessionID)
	}
	if len(removed.State.Selected("cities[]")) != 0 {
		t.Fatalf("expected empty selection, got %v", removed.State.Selected("cities[]"))
	}
}

func TestEvents_SearchStoresResults(t *testing.T) {
	h := NewHandler(WithWidget(cityWidget()))

	resp := postEvent(t, h, EventRequest{
		Event:   selection.EventSearch,
		Payload: selection.Payload{Query: "ber"},
	})
	if diff := cmp.Diff([]string{"Berlin", "Bern"}, option.Labels(resp.State.Results["cities"])); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
	if resp.State.Query("cities[]") != "ber" {
		t.Fatalf("expected query recorded, got %q", resp.State.Query("cities[]"))
	}
}

func TestEvents_UnknownEventKeepsState(t *testing.T) {
	h := NewHandler(WithWidget(cityWidget()))

	first := postEvent(t, h, EventRequest{
		Event:   selection.EventSelectOption,
		Payload: selection.Payload{OptionValue: "brn"},
	})
	resp := postEvent(t, h, EventRequest{
		Event:     selection.Event("explode"),
		SessionID: first.SessionID,
	})
	if !resp.State.IsSelected("cities[]", "brn") {
		t.Fatalf("unknown event changed state: %#v", resp.State.Data)
	}
}

func TestEvents_HookErrorsReported(t *testing.T) {
	handlers := selection.NewHandlers(
		selection.WithChangesetHook(selection.HookFunc(func(context.Context, selection.Field, selection.FormData) error {
			return errors.New("too many cities")
		})),
	)
	h := NewHandler(WithWidget(cityWidget()), WithHandlers(handlers))

	resp := postEvent(t, h, EventRequest{
		Event:   selection.EventSelectOption,
		Payload: selection.Payload{OptionValue: "ber"},
	})
	if len(resp.Errors) != 1 || !strings.Contains(resp.Errors[0], "too many cities") {
		t.Fatalf("expected hook error surfaced, got %v", resp.Errors)
	}
	if !strings.Contains(resp.HTML, "too many cities") {
		t.Fatalf("expected hook error rendered:\n%s", resp.HTML)
	}
	if !resp.State.IsSelected("cities[]", "ber") {
		t.Fatalf("hook errors should not discard the new state")
	}
}

func TestEvents_UsesInjectedStore(t *testing.T) {
	store := session.NewMemoryStore(0)
	h := NewHandler(WithWidget(cityWidget()), WithStore(store))

	resp := postEvent(t, h, EventRequest{
		Event:   selection.EventShowDropdown,
		Payload: selection.Payload{},
	})
	stored, err := store.Load(context.Background(), resp.SessionID)
	if err != nil {
		t.Fatalf("load stored session: %v", err)
	}
	if !stored.State.DropdownVisible("cities[]") {
		t.Fatalf("expected dropdown flag persisted")
	}
}

func TestEvents_BadRequests(t *testing.T) {
	h := NewHandler(WithWidget(cityWidget()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/multiselect/events", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/multiselect/events", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestOptions_EmptyQueryModes(t *testing.T) {
	tests := []struct {
		name string
		mode EmptySearchMode
		want int
	}{
		{name: "top", mode: EmptySearchTop, want: 3},
		{name: "none", mode: EmptySearchNone, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(WithWidget(cityWidget()), WithEmptySearchMode(tt.mode))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/multiselect/options", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			var payload handlerResponse
			if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if payload.Data == nil || len(payload.Data) != tt.want {
				t.Fatalf("expected %d options, got %#v", tt.want, payload.Data)
			}
		})
	}
}

func TestOptions_SearchAndLimitClamped(t *testing.T) {
	h := NewHandler(
		WithWidget(cityWidget()),
		WithMaxLimit(1),
		WithSearchParam("search"),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/multiselect/options?search=ber&limit=10", nil))
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].Label != "Berlin" {
		t.Fatalf("unexpected payload: %#v", payload.Data)
	}
}

func TestOptions_SourceFailure(t *testing.T) {
	failing := source.SourceFunc(func(context.Context) ([]option.Option, error) {
		return nil, errors.New("upstream down")
	})
	h := NewHandler(WithWidget(cityWidget()), WithSource(failing))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/multiselect/options?q=a", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
}

func TestHandler_GuardRejects(t *testing.T) {
	h := NewHandler(
		WithWidget(cityWidget()),
		WithGuard(func(r *http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		}),
	)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/multiselect/options?q=b", nil),
		httptest.NewRequest(http.MethodPost, "/api/multiselect/events", strings.NewReader(`{"event":"search"}`)),
		httptest.NewRequest(http.MethodGet, "/api/multiselect", nil),
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected status 401, got %d", req.Method, req.URL.Path, rec.Code)
		}
	}
}

func TestWidget_NegotiatesRepresentation(t *testing.T) {
	h := NewHandler(WithWidget(cityWidget()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/multiselect", nil))
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html by default, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `data-field-name="cities[]"`) {
		t.Fatalf("unexpected widget html:\n%s", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/multiselect", nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var view map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode json view: %v", err)
	}
	if view["field_name"] != "cities[]" {
		t.Fatalf("unexpected json view: %v", view)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/multiselect?page=1", nil))
	if !strings.Contains(rec.Body.String(), "<!DOCTYPE html>") {
		t.Fatalf("expected full page output")
	}
}

func TestStatusErrorDefaults(t *testing.T) {
	if got := (StatusError{}).StatusCode(); got != http.StatusInternalServerError {
		t.Fatalf("expected 500 default, got %d", got)
	}
	wrapped := StatusError{Code: http.StatusTeapot, Err: errors.New("brew")}
	if wrapped.Error() != "brew" || !errors.Is(wrapped, wrapped.Err) {
		t.Fatalf("unexpected wrapping behaviour")
	}
}

func TestEvents_RequiredWidgetReportsClear(t *testing.T) {
	widget := cityWidget()
	widget.Required = true
	h := NewHandler(WithWidget(widget))

	first := postEvent(t, h, EventRequest{
		Event:   selection.EventSelectOption,
		Payload: selection.Payload{OptionValue: "ber"},
	})
	if len(first.Errors) != 0 {
		t.Fatalf("unexpected errors after select: %v", first.Errors)
	}

	resp := postEvent(t, h, EventRequest{
		Event:     selection.EventClearSelection,
		SessionID: first.SessionID,
	})
	if len(resp.Errors) != 1 || resp.Errors[0] != "cities is required" {
		t.Fatalf("expected required message, got %v", resp.Errors)
	}
	if len(resp.State.Selected("cities[]")) != 0 {
		t.Fatalf("clear should still apply, got %#v", resp.State.Data)
	}
}

package multiselect

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/render"
	"github.com/goliatone/go-multiselect/pkg/renderers/vanilla"
	"github.com/goliatone/go-multiselect/pkg/selection"
	"github.com/goliatone/go-multiselect/pkg/session"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// EventRequest is the body accepted by the events route.
type EventRequest struct {
	Event     selection.Event   `json:"event"`
	SessionID string            `json:"session_id"`
	Payload   selection.Payload `json:"payload"`
}

// EventResponse is returned by the events route.
type EventResponse struct {
	SessionID string          `json:"session_id"`
	State     selection.State `json:"state"`
	HTML      string          `json:"html,omitempty"`
	Errors    []string        `json:"errors,omitempty"`
}

type optionsResponse struct {
	Data []option.Option `json:"data"`
}

type server struct {
	opts      Options
	renderers *render.Registry
	log       *slog.Logger
}

func newServer(opts Options) *server {
	opts = NewOptions(func(o *Options) { *o = opts })
	registry := opts.Renderers
	if registry == nil {
		registry = defaultRenderers(opts.Logger)
	}
	return &server{opts: opts, renderers: registry, log: opts.Logger}
}

func defaultRenderers(log *slog.Logger) *render.Registry {
	registry := render.NewRegistry()
	if html, err := vanilla.New(); err != nil {
		log.Error("renderer.vanilla.fail", slog.String("err", err.Error()))
	} else {
		registry.MustRegister(html)
	}
	registry.MustRegister(render.JSONRenderer{})
	return registry
}

// Handler builds the widget handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions serves all three routes relative to the component route.
// Requests are matched on the path suffix so the handler works behind any
// prefix-stripping router.
func HandlerWithOptions(opts Options) http.Handler {
	srv := newServer(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		switch {
		case strings.HasSuffix(r.URL.Path, "/events"):
			srv.events(w, r)
		case strings.HasSuffix(r.URL.Path, "/options"):
			srv.options(w, r)
		default:
			srv.widget(w, r)
		}
	})
}

// EventsHandler serves only the events route.
func EventsHandler(opts Options) http.Handler {
	return http.HandlerFunc(newServer(opts).events)
}

// OptionsHandler serves only the options route.
func OptionsHandler(opts Options) http.Handler {
	return http.HandlerFunc(newServer(opts).options)
}

// WidgetHandler serves only the widget route.
func WidgetHandler(opts Options) http.Handler {
	return http.HandlerFunc(newServer(opts).widget)
}

func (s *server) guard(w http.ResponseWriter, r *http.Request) bool {
	if s.opts.Guard == nil {
		return true
	}
	if err := s.opts.Guard(r); err != nil {
		s.log.InfoContext(r.Context(), "guard.reject", slog.String("err", err.Error()))
		writeGuardError(w, err)
		return false
	}
	return true
}

func (s *server) events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if !s.guard(w, r) {
		return
	}

	var req EventRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		s.log.WarnContext(ctx, "event.decode.fail", slog.String("err", err.Error()))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if req.Payload.FieldName == "" {
		req.Payload.FieldName = s.opts.Widget.FieldName()
	}

	sess, err := session.LoadOrNew(ctx, s.opts.Store, req.SessionID, s.initialState())
	if err != nil {
		s.log.ErrorContext(ctx, "session.load.fail", slog.String("err", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var messages []string
	if !req.Event.Known() {
		s.log.WarnContext(ctx, "event.unknown", slog.String("event", string(req.Event)))
	} else {
		next, err := s.opts.Handlers.Dispatch(ctx, req.Event, req.Payload, sess.State)
		if err != nil {
			s.log.WarnContext(ctx, "event.dispatch.fail",
				slog.String("event", string(req.Event)),
				slog.String("err", err.Error()))
			messages = render.ErrorMessages(err)
		}
		sess.State = next
	}

	if err := s.opts.Store.Save(ctx, sess); err != nil {
		s.log.ErrorContext(ctx, "session.save.fail", slog.String("err", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := EventResponse{SessionID: sess.ID, State: sess.State, Errors: messages}
	if html, err := s.renderHTML(ctx, sess, messages); err != nil {
		s.log.ErrorContext(ctx, "render.fail", slog.String("err", err.Error()))
	} else {
		resp.HTML = html
	}

	s.log.InfoContext(ctx, "event.dispatch.ok",
		slog.String("event", string(req.Event)),
		slog.String("session_id", sess.ID),
		slog.Duration("dur", time.Since(start)))
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) options(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if !s.guard(w, r) {
		return
	}

	query := r.URL.Query().Get(s.opts.SearchParam)
	limit := parseInt(r.URL.Query().Get(s.opts.LimitParam))

	results, err := SearchSource(ctx, s.opts.Source, query, limit, s.opts)
	if err != nil {
		s.log.ErrorContext(ctx, "options.load.fail", slog.String("err", err.Error()))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	if results == nil {
		results = []option.Option{}
	}

	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, optionsResponse{Data: results})
}

func (s *server) widget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if !s.guard(w, r) {
		return
	}

	sess, err := session.LoadOrNew(ctx, s.opts.Store, r.URL.Query().Get(s.opts.SessionParam), s.initialState())
	if err != nil {
		s.log.ErrorContext(ctx, "session.load.fail", slog.String("err", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err := s.opts.Store.Save(ctx, sess); err != nil {
		s.log.ErrorContext(ctx, "session.save.fail", slog.String("err", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotAcceptable), http.StatusNotAcceptable)
		return
	}
	view, err := s.view(ctx, sess.State)
	if err != nil {
		s.log.ErrorContext(ctx, "options.load.fail", slog.String("err", err.Error()))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	renderOpts := s.renderOptions(sess.ID, nil)
	renderOpts.Page = r.URL.Query().Get("page") != ""
	body, err := renderer.Render(ctx, view, renderOpts)
	if err != nil {
		s.log.ErrorContext(ctx, "render.fail", slog.String("err", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (s *server) initialState() selection.State {
	return selection.NewState(selection.FormData{})
}

func (s *server) view(ctx context.Context, state selection.State) (render.View, error) {
	options, err := s.opts.Source.Options(ctx)
	if err != nil {
		return render.View{}, err
	}
	return render.BuildView(s.opts.Widget, options, state), nil
}

func (s *server) renderOptions(sessionID string, messages []string) render.RenderOptions {
	return render.RenderOptions{
		Theme:     s.opts.Theme,
		Hidden:    render.MergeHiddenFields(nil, render.SessionField(sessionID)),
		Errors:    messages,
		Highlight: s.opts.Highlight,
	}
}

func (s *server) renderHTML(ctx context.Context, sess session.Session, messages []string) (string, error) {
	renderer, err := s.renderers.Negotiate("text/html")
	if err != nil {
		return "", err
	}
	if renderer.ContentType() == (render.JSONRenderer{}).ContentType() {
		return "", nil
	}
	view, err := s.view(ctx, sess.State)
	if err != nil {
		return "", err
	}
	body, err := renderer.Render(ctx, view, s.renderOptions(sess.ID, messages))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

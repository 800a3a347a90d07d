package multiselect

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes are the mounted paths of one component.
type Routes struct {
	Widget  string
	Events  string
	Options string
}

// MountPath returns the full mount path for the component route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// MountRoutes returns every route the component serves under basePath.
func MountRoutes(basePath string, routePath string) Routes {
	widget := mountPath(basePath, routePath)
	return Routes{
		Widget:  widget,
		Events:  strings.TrimRight(widget, "/") + "/events",
		Options: strings.TrimRight(widget, "/") + "/options",
	}
}

// RegisterRoutes registers the component handlers under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers handlers under basePath using a pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("multiselect: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	if err := opts.Widget.Validate(); err != nil {
		return Routes{}, fmt.Errorf("multiselect: %w", err)
	}
	srv := newServer(opts)
	routes := MountRoutes(basePath, opts.RoutePath)
	mux.Handle(routes.Widget, http.HandlerFunc(srv.widget))
	mux.Handle(routes.Events, http.HandlerFunc(srv.events))
	mux.Handle(routes.Options, http.HandlerFunc(srv.options))
	return routes, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}

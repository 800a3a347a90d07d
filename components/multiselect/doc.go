// Package multiselect mounts a type-ahead multi-select widget over net/http.
//
// Three routes hang off the component route (default /api/multiselect):
//
//	GET  <route>          renders the widget for a session (HTML or JSON by Accept)
//	POST <route>/events   dispatches one widget intent and returns the new state
//	GET  <route>/options  searches the widget options, returning {"data": [...]}
//
// Session state lives in a session.Store; the default is an in-memory store.
package multiselect

// Package session persists per-widget-instance selection state between
// requests. Memory and Redis backends share the Store contract.
package session

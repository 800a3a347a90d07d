// Package behavior models the client-side interaction of a multi-select
// widget instance: focus and blur, debounced search input, keyboard
// highlight navigation and outside-click dismissal.
//
// A Controller turns those interactions into widget intents delivered to an
// Emitter. Handlers and timer callbacks of one instance never run
// concurrently, and Unmount releases every resource Mount acquired.
package behavior

// Package source loads raw widget options from files and API descriptions.
// Loaders return normalized options; a Watcher keeps a YAML file's options
// current as the file changes.
package source

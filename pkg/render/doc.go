// Package render turns a widget configuration, its options and the current
// selection state into output. The HTML renderer executes the embedded
// multiselect template through a pongo2 engine; the JSON renderer serves
// client runtimes that build their own markup.
package render

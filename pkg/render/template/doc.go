// Package template defines the template engine seam the widget renderer
// depends on. The gotemplate subpackage provides a pongo2 implementation.
package template

// Package option converts heterogeneous option descriptors into canonical
// label/value pairs and provides the list filtering used by type-ahead
// searches.
//
// Normalize is total: every input maps to exactly one Option, and inputs it
// does not recognise fall back to their string form as the label while the
// original value is kept.
package option

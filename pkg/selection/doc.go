// Package selection holds the selection state reducer and the default,
// replaceable event handlers a host wires to the six widget intents.
//
// A field name ending in the multi-select marker "[]" stores an ordered,
// duplicate-free sequence under the stripped key; any other field stores a
// scalar. Duplicate and removal checks compare values by their string form
// (see option.Key), so 1 and "1" are the same selection.
package selection

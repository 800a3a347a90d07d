package components

// Canonical component names used by the vanilla renderer and default registry.
const (
	NameMultiselect = "multiselect"
	NameReadonly    = "multiselect-readonly"
)

// Theme partial keys consulted before the built-in templates.
const (
	PartialMultiselect = "forms.multiselect"
	PartialReadonly    = "forms.multiselect.readonly"
)

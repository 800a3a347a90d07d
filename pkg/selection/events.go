package selection

// Event names a widget intent.
type Event string

const (
	EventSelectOption    Event = "select_option"
	EventRemoveSelection Event = "remove_selection"
	EventClearSelection  Event = "clear_selection"
	EventSearch          Event = "search"
	EventShowDropdown    Event = "show_dropdown"
	EventHideDropdown    Event = "hide_dropdown"
)

// Events lists every intent in a stable order.
func Events() []Event {
	return []Event{
		EventSelectOption,
		EventRemoveSelection,
		EventClearSelection,
		EventSearch,
		EventShowDropdown,
		EventHideDropdown,
	}
}

// Known reports whether e is one of the six widget intents.
func (e Event) Known() bool {
	for _, candidate := range Events() {
		if e == candidate {
			return true
		}
	}
	return false
}

// ChangesData reports whether e can alter the form data record.
func (e Event) ChangesData() bool {
	switch e {
	case EventSelectOption, EventRemoveSelection, EventClearSelection:
		return true
	default:
		return false
	}
}

// Payload carries the intent parameters. Each event reads only the fields it
// needs.
type Payload struct {
	OptionValue any    `json:"option_value,omitempty"`
	OptionLabel string `json:"option_label,omitempty"`
	FieldName   string `json:"field_name"`
	Query       string `json:"query,omitempty"`
}

package selection

import "github.com/goliatone/go-multiselect/pkg/option"

// Reduce computes the state that follows event. prior is never mutated.
// Unknown events and payloads without a field name return prior unchanged.
func Reduce(event Event, payload Payload, prior State) State {
	field := ParseField(payload.FieldName)
	if field.Key == "" || !event.Known() {
		return prior
	}

	next := prior.Clone()
	switch event {
	case EventSelectOption:
		selectOption(next.Data, field, payload.OptionValue)
	case EventRemoveSelection:
		removeSelection(next.Data, field, payload.OptionValue)
	case EventClearSelection:
		clearSelection(next.Data, field)
	case EventSearch:
		if next.Queries == nil {
			next.Queries = make(map[string]string)
		}
		next.Queries[field.Key] = payload.Query
	case EventShowDropdown, EventHideDropdown:
		if next.Visible == nil {
			next.Visible = make(map[string]bool)
		}
		next.Visible[field.Key] = event == EventShowDropdown
	}
	return next
}

func selectOption(data FormData, field Field, value any) {
	if !field.Multiple {
		data[field.Key] = value
		return
	}
	current := sequence(data[field.Key])
	if !contains(current, value) {
		current = append(current, value)
	}
	data[field.Key] = current
}

func removeSelection(data FormData, field Field, value any) {
	if !field.Multiple {
		return
	}
	current := sequence(data[field.Key])
	key := option.Key(value)
	kept := make([]any, 0, len(current))
	for _, item := range current {
		if option.Key(item) == key {
			continue
		}
		kept = append(kept, item)
	}
	data[field.Key] = kept
}

func clearSelection(data FormData, field Field) {
	if field.Multiple {
		data[field.Key] = []any{}
		return
	}
	data[field.Key] = nil
}

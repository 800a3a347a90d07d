package selection

// AtCapacity reports whether field already holds max selections. A max <= 0
// means unlimited. The default reducer treats the cap as advisory; hosts
// enforce it with WithEnforcedMax or their own select handler.
func AtCapacity(state State, fieldName string, max int) bool {
	if max <= 0 {
		return false
	}
	field := ParseField(fieldName)
	if !field.Multiple {
		return false
	}
	return len(state.Selected(fieldName)) >= max
}

// Remaining returns how many more values field accepts, or -1 when unlimited.
func Remaining(state State, fieldName string, max int) int {
	if max <= 0 || !ParseField(fieldName).Multiple {
		return -1
	}
	left := max - len(state.Selected(fieldName))
	if left < 0 {
		return 0
	}
	return left
}

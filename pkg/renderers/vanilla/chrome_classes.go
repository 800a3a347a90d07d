package vanilla

import (
	"strings"

	"github.com/goliatone/go-multiselect/pkg/config"
)

// ChromeClass is a typed identifier for semantic widget CSS classes.
type ChromeClass string

const (
	ClassContainer      ChromeClass = "ms-container"
	ClassInput          ChromeClass = "ms-input"
	ClassDropdown       ChromeClass = "ms-dropdown"
	ClassOption         ChromeClass = "ms-option"
	ClassSelectedOption ChromeClass = "ms-chip"
	ClassSelectedList   ChromeClass = "ms-chips"
	ClassErrors         ChromeClass = "ms-errors"
)

// resolveClasses returns the template class map. Semantic classes are always
// present; configured overrides are appended after them.
func resolveClasses(classes config.Classes) map[string]string {
	return map[string]string{
		"container":       joinClasses(ClassContainer, classes.Container),
		"input":           joinClasses(ClassInput, classes.Input),
		"dropdown":        joinClasses(ClassDropdown, classes.Dropdown),
		"option":          joinClasses(ClassOption, classes.Option),
		"selected_option": joinClasses(ClassSelectedOption, classes.SelectedOption),
		"selected_list":   string(ClassSelectedList),
		"errors":          string(ClassErrors),
	}
}

func joinClasses(base ChromeClass, extra string) string {
	if extra = sanitizeClassList(extra); extra == "" {
		return string(base)
	}
	return strings.Join([]string{string(base), extra}, " ")
}

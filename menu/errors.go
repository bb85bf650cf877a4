package menu

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned by repositories for an unknown reference.
	ErrNotFound = errors.New("recipe not found")
	// ErrNoCategories means the category directory is empty.
	ErrNoCategories = errors.New("no categories configured; seed at least one category before generating menus")
	// ErrDepthExceeded is returned when extras nest deeper than the configured limit.
	ErrDepthExceeded = errors.New("recipe nesting too deep")
)

// CycleError reports a recipe that lists itself as an extra, directly or
// through other recipes.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "recipe cycle detected: " + strings.Join(e.Path, " -> ")
}

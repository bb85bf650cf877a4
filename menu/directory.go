package menu

// UnknownCategory is the category of ingredients missing from the directory.
const UnknownCategory = "unknown"

// Compile-time interface check.
var _ CategoryDirectory = (*Directory)(nil)

// Directory is an immutable, map-backed CategoryDirectory. Categories that are
// not configured share a fallback priority placed after every configured one.
type Directory struct {
	priorities map[string]int
	items      map[string]string
	fallback   int
}

// NewDirectory builds a directory from category priorities and an
// ingredient -> category mapping. It returns ErrNoCategories when priorities
// is empty.
func NewDirectory(priorities map[string]int, items map[string]string) (*Directory, error) {
	if len(priorities) == 0 {
		return nil, ErrNoCategories
	}

	d := &Directory{
		priorities: make(map[string]int, len(priorities)),
		items:      make(map[string]string, len(items)),
	}
	first := true
	for name, p := range priorities {
		d.priorities[name] = p
		if first || p+1 > d.fallback {
			d.fallback = p + 1
		}
		first = false
	}
	for ingredient, category := range items {
		d.items[ingredient] = category
	}
	return d, nil
}

// CategoryOf returns the configured category, or UnknownCategory.
func (d *Directory) CategoryOf(ingredient string) string {
	if c, ok := d.items[ingredient]; ok {
		return c
	}
	return UnknownCategory
}

// PriorityOf returns the category's priority, or the fallback bucket.
func (d *Directory) PriorityOf(category string) int {
	if p, ok := d.priorities[category]; ok {
		return p
	}
	return d.fallback
}

// HasCategories reports whether any category is configured.
func (d *Directory) HasCategories() bool {
	return d != nil && len(d.priorities) > 0
}

// Fallback is the priority given to unconfigured categories.
func (d *Directory) Fallback() int {
	return d.fallback
}

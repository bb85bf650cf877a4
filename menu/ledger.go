package menu

import (
	"sort"
	"strings"
)

// Key orders ledger items: priority first, then the raw ingredient name.
type Key struct {
	Priority   int
	Ingredient string
}

// Less reports whether k sorts before o.
func (k Key) Less(o Key) bool {
	if k.Priority != o.Priority {
		return k.Priority < o.Priority
	}
	return k.Ingredient < o.Ingredient
}

// UnitAmount is the summed amount for one unit.
type UnitAmount struct {
	Unit   string  `json:"unit"`
	Amount float64 `json:"amount"`
}

// Item is one row of the shopping list.
type Item struct {
	Key
	units   []string
	amounts map[string]float64
	recipes map[string]struct{}
}

// Amount returns the summed amount for unit.
func (it *Item) Amount(unit string) float64 {
	return it.amounts[unit]
}

// Amounts returns the per-unit sums in the order the units were first added.
func (it *Item) Amounts() []UnitAmount {
	out := make([]UnitAmount, 0, len(it.units))
	for _, u := range it.units {
		out = append(out, UnitAmount{Unit: u, Amount: it.amounts[u]})
	}
	return out
}

// Recipes returns the contributing recipe names, sorted and deduplicated.
func (it *Item) Recipes() []string {
	out := make([]string, 0, len(it.recipes))
	for r := range it.recipes {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Ledger accumulates scaled ingredient amounts for one menu run. It is not
// safe for concurrent use; each run gets its own ledger.
type Ledger struct {
	items map[Key]*Item
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{items: make(map[Key]*Item)}
}

// Add sums amount into the (priority, ingredient) item under unit and records
// recipe as a contributor.
func (l *Ledger) Add(priority int, ingredient, unit string, amount float64, recipe string) {
	k := Key{Priority: priority, Ingredient: ingredient}
	it, ok := l.items[k]
	if !ok {
		it = &Item{
			Key:     k,
			amounts: make(map[string]float64),
			recipes: make(map[string]struct{}),
		}
		l.items[k] = it
	}
	if _, seen := it.amounts[unit]; !seen {
		it.units = append(it.units, unit)
	}
	it.amounts[unit] += amount
	it.recipes[recipe] = struct{}{}
}

// Len is the number of distinct items.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Get returns the item for (priority, ingredient).
func (l *Ledger) Get(priority int, ingredient string) (*Item, bool) {
	it, ok := l.items[Key{Priority: priority, Ingredient: ingredient}]
	return it, ok
}

// Find returns the first item, in key order, with the given ingredient name.
func (l *Ledger) Find(ingredient string) (*Item, bool) {
	for _, it := range l.Items() {
		if it.Ingredient == ingredient {
			return it, true
		}
	}
	return nil, false
}

// Items returns every item in ascending key order.
func (l *Ledger) Items() []*Item {
	out := make([]*Item, 0, len(l.items))
	for _, it := range l.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })
	return out
}

// NamePolicy normalizes ingredient names before they are categorized and
// used as ledger keys.
type NamePolicy func(string) string

// KeepCase leaves names untouched, so "Salt" and "salt" are separate items.
func KeepCase(name string) string { return name }

// FoldCase trims and lower-cases names.
func FoldCase(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

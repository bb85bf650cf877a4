package menu

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// recipeNameWidth caps each recipe name in the provenance column.
	recipeNameWidth = 12
	// provenanceWidth caps the whole provenance column.
	provenanceWidth = 30
)

// tableHeader starts a new shopping table; it is emitted whenever the
// priority changes.
var tableHeader = []string{
	"",
	"",
	"|          |          |       |",
	"|----------|----------|------:|",
}

// SummaryLine is the menu line printed for an expanded recipe.
func SummaryLine(r *Recipe, multiplier float64) string {
	return fmt.Sprintf(" - %-35s  %s : %-25s", r.Name, MultiplierNote(multiplier), r.Placement)
}

// FormatQuantity prints v with at most two decimals and no trailing zeros.
func FormatQuantity(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// AmountString joins the item's nonzero per-unit sums with " + ".
func AmountString(it *Item) string {
	parts := make([]string, 0, len(it.units))
	for _, ua := range it.Amounts() {
		if ua.Amount == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %-6s", FormatQuantity(ua.Amount), ua.Unit))
	}
	return strings.Join(parts, " + ")
}

// Provenance lists the recipes an item is bought for. When several recipes
// contributed, the item's own name is left out.
func Provenance(it *Item) string {
	recipes := it.Recipes()
	if len(recipes) > 1 {
		kept := recipes[:0]
		for _, r := range recipes {
			if r != it.Ingredient {
				kept = append(kept, r)
			}
		}
		recipes = kept
	}
	for i, r := range recipes {
		recipes[i] = truncate(r, recipeNameWidth)
	}
	return truncate(strings.Join(recipes, " + "), provenanceWidth)
}

// ShoppingRow formats one table row.
func ShoppingRow(it *Item) string {
	return fmt.Sprintf("| %-40s | %10s |  %-30s  | ", it.Ingredient, AmountString(it), Provenance(it))
}

// RenderShopping prints the ledger as tables grouped by priority.
func RenderShopping(l *Ledger, p Printer) error {
	first := true
	prev := 0
	for _, it := range l.Items() {
		if first || it.Priority != prev {
			for _, h := range tableHeader {
				if err := p.Print(h); err != nil {
					return err
				}
			}
		}
		first = false
		prev = it.Priority
		if err := p.Print(ShoppingRow(it)); err != nil {
			return err
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

package menu

import "strconv"

// Multiplier returns the factor applied to a recipe's ingredient list.
//
// With UnitRecipe the requested amount is a number of whole batches and
// baseServings is ignored. Any other unit is a number of servings, divided by
// baseServings. A recipe without base servings scales to 0: it is listed on
// the menu but nothing is bought for it.
func Multiplier(requested Amount, baseServings float64) float64 {
	if requested.Unit == UnitRecipe {
		return requested.Amount
	}
	if baseServings > 0 {
		return requested.Amount / baseServings
	}
	return 0
}

// MultiplierNote renders the menu annotation for a multiplier: empty for a
// single batch, "(fryser)" when nothing is cooked this week, "(x<m>)" otherwise.
func MultiplierNote(m float64) string {
	switch {
	case m == 1:
		return ""
	case m == 0:
		return "(fryser)"
	default:
		return "(x" + strconv.FormatFloat(m, 'g', 6, 64) + ")"
	}
}

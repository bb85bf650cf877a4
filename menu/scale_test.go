package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name      string
		requested Amount
		base      float64
		want      float64
	}{
		{"servings over base", Amount{Amount: 8, Unit: "servings"}, 4, 2},
		{"plates", Amount{Amount: 3, Unit: UnitPlates}, 6, 0.5},
		{"whole batches ignore base", Amount{Amount: 2, Unit: UnitRecipe}, 4, 2},
		{"batches without base", Amount{Amount: 2, Unit: UnitRecipe}, 0, 2},
		{"no base servings", Amount{Amount: 3, Unit: "servings"}, 0, 0},
		{"nothing requested", Amount{Amount: 0, Unit: UnitRecipe}, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Multiplier(tt.requested, tt.base))
		})
	}
}

func TestMultiplierNote(t *testing.T) {
	assert.Equal(t, "", MultiplierNote(1))
	assert.Equal(t, "(fryser)", MultiplierNote(0))
	assert.Equal(t, "(x2)", MultiplierNote(2))
	assert.Equal(t, "(x0.5)", MultiplierNote(0.5))
	assert.Equal(t, "(x0.333333)", MultiplierNote(1.0/3))
}

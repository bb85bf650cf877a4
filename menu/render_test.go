package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatQuantity(t *testing.T) {
	tests := map[float64]string{
		4:         "4",
		12.5:      "12.5",
		100:       "100",
		0.333333:  "0.33",
		1.005:     "1",
		0:         "0",
		2.75:      "2.75",
		1234.5678: "1234.57",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatQuantity(in), "FormatQuantity(%v)", in)
	}
}

func TestSummaryLine(t *testing.T) {
	r := &Recipe{Name: "Chili", Placement: "Fryser"}
	assert.Equal(t, " - Chili"+strings.Repeat(" ", 30)+"   : Fryser"+strings.Repeat(" ", 19), SummaryLine(r, 1))
	assert.Equal(t, " - Chili"+strings.Repeat(" ", 30)+"  (x2) : Fryser"+strings.Repeat(" ", 19), SummaryLine(r, 2))
}

func TestAmountString(t *testing.T) {
	l := NewLedger()
	l.Add(1, "Butter", "g", 250, "Cake")
	l.Add(1, "Butter", "stk", 1, "Bread")
	l.Add(1, "Butter", "dl", 0, "Bread")
	l.Add(1, "Butter", "g", 250, "Bread")

	it, ok := l.Get(1, "Butter")
	require.True(t, ok)
	assert.Equal(t, "500 g      + 1 stk   ", AmountString(it))
}

func TestProvenance(t *testing.T) {
	l := NewLedger()
	l.Add(1, "Salt", "g", 5, "Salt")
	l.Add(1, "Salt", "g", 5, "Soup")
	l.Add(1, "Milk", "l", 1, "Milk")
	l.Add(1, "Flour", "g", 100, "Very Long Recipe Name")
	l.Add(1, "Flour", "g", 100, "Another Long Recipe")
	l.Add(1, "Flour", "g", 100, "Crêpes au chocolat")

	salt, _ := l.Get(1, "Salt")
	assert.Equal(t, "Soup", Provenance(salt))

	milk, _ := l.Get(1, "Milk")
	assert.Equal(t, "Milk", Provenance(milk))

	flour, _ := l.Get(1, "Flour")
	got := Provenance(flour)
	assert.Equal(t, "Another Long + Crêpes au ch + ", got)
	assert.Equal(t, provenanceWidth, len([]rune(got)))
}

func TestShoppingRow(t *testing.T) {
	l := NewLedger()
	l.Add(1, "Carrot", "stk", 2, "Soup")
	l.Add(1, "Carrot", "stk", 2, "Stew")

	it, _ := l.Get(1, "Carrot")
	want := "| Carrot" + strings.Repeat(" ", 34) + " |   4 stk    |  Soup + Stew" + strings.Repeat(" ", 19) + "  | "
	assert.Equal(t, want, ShoppingRow(it))
}

func TestRenderShopping(t *testing.T) {
	l := NewLedger()
	l.Add(2, "Beans", "can", 4, "Chili")
	l.Add(1, "Carrot", "stk", 2, "Soup")
	l.Add(1, "Apple", "stk", 3, "Pie")

	var out Buffer
	require.NoError(t, RenderShopping(l, &out))

	require.Len(t, out, 2*len(tableHeader)+3)
	assert.Equal(t, tableHeader, []string(out[:4]))
	assert.True(t, strings.HasPrefix(out[4], "| Apple "))
	assert.True(t, strings.HasPrefix(out[5], "| Carrot "))
	assert.Equal(t, tableHeader, []string(out[6:10]))
	assert.True(t, strings.HasPrefix(out[10], "| Beans "))
}

func TestRenderShopping_Empty(t *testing.T) {
	var out Buffer
	require.NoError(t, RenderShopping(NewLedger(), &out))
	assert.Empty(t, out)
}

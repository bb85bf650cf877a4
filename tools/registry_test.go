package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuplanner/catalog"
)

const testRecipes = `
- name: Chili
  slug: chili
  placement: freezer
  servings: 4
  ingredients:
    beans: {amount: 400, unit: g}
    onion: {amount: 1, unit: stk}
  extras:
    Rice: {amount: 1, unit: recipe}
- name: Rice
  servings: 4
  ingredients:
    rice: {amount: 300, unit: g}
- name: Old Stew
  blacklisted: true
  ingredients:
    beef: {amount: 500, unit: g}
`

const testCategories = `
categories:
  dry: 1
  veg: 2
items:
  beans: dry
  rice: dry
  onion: veg
staples:
  - name: milk
    amount: 2
    unit: l
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(testRecipes), []byte(testCategories))
	require.NoError(t, err)
	return c
}

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry(testCatalog(t))
	require.NoError(t, err)

	names := []string{}
	for _, tool := range r.GetTools() {
		names = append(names, tool.Name())
		assert.NotEmpty(t, tool.Description())
		assert.NotNil(t, tool.InputSchema())
		assert.NotNil(t, tool.OutputSchema())
	}
	assert.Equal(t, []string{"recipe_get", "recipe_list", "shopping_list"}, names)

	_, err = r.GetTool("menu_get")
	assert.Error(t, err)

	_, err = NewRegistry(nil)
	assert.Error(t, err)
}

func TestExecute(t *testing.T) {
	r, err := NewRegistry(testCatalog(t))
	require.NoError(t, err)

	out, err := Execute(context.Background(), r, Call{Name: "recipe_list"})
	require.NoError(t, err)
	assert.Equal(t, []any{"Chili", "Rice"}, out["recipes"])

	_, err = Execute(context.Background(), r, Call{Name: "nope"})
	assert.ErrorContains(t, err, `tool "nope" not found`)

	_, err = Execute(context.Background(), r, Call{Name: "recipe_get", Input: map[string]any{"reference": "missing"}})
	assert.ErrorContains(t, err, `recipe "missing" not found`)
}

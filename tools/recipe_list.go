package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"menuplanner/catalog"
)

type RecipeList struct{ src catalog.Source }

func NewRecipeList(src catalog.Source) *RecipeList { return &RecipeList{src: src} }

func (t *RecipeList) Name() string  { return "recipe_list" }
func (t *RecipeList) Title() string { return "List Recipes" }
func (t *RecipeList) Description() string {
	return "Lists recipe names available for planning. Blacklisted recipes are hidden unless include_hidden is set."
}

func (t *RecipeList) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"include_hidden": {Type: "boolean"},
		},
	}
}

func (t *RecipeList) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipes": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
		},
		Required: []string{"recipes"},
	}
}

func (t *RecipeList) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	filter := catalog.Visible
	if boolInput(input, "include_hidden") {
		filter = catalog.All
	}

	names, err := t.src.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return toMap(map[string]any{"recipes": names})
}

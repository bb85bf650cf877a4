package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"menuplanner/menu"
)

type RecipeGet struct{ recipes menu.RecipeRepository }

func NewRecipeGet(recipes menu.RecipeRepository) *RecipeGet { return &RecipeGet{recipes: recipes} }

func (t *RecipeGet) Name() string  { return "recipe_get" }
func (t *RecipeGet) Title() string { return "Get Recipe" }
func (t *RecipeGet) Description() string {
	return "Gets one recipe by slug or exact name, with its ingredients and extras."
}

func (t *RecipeGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"reference": {Type: "string"},
		},
		Required: []string{"reference"},
	}
}

func (t *RecipeGet) OutputSchema() *jsonschema.Schema {
	minAmount := 0.0
	line := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":   {Type: "string"},
			"amount": {Type: "number", Minimum: &minAmount},
			"unit":   {Type: "string"},
		},
		Required: []string{"name", "amount", "unit"},
	}
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipe": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"name":        {Type: "string"},
					"slug":        {Type: "string"},
					"placement":   {Type: "string"},
					"servings":    {Type: "number", Minimum: &minAmount},
					"ingredients": {Type: "array", Items: line},
					"extras":      {Type: "array", Items: line},
				},
				Required: []string{"name", "servings", "ingredients", "extras"},
			},
		},
		Required: []string{"recipe"},
	}
}

type lineOut struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type recipeOut struct {
	Name        string    `json:"name"`
	Slug        string    `json:"slug,omitempty"`
	Placement   string    `json:"placement,omitempty"`
	Servings    float64   `json:"servings"`
	Ingredients []lineOut `json:"ingredients"`
	Extras      []lineOut `json:"extras"`
}

func (t *RecipeGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	ref := stringInput(input, "reference")
	if ref == "" {
		return nil, fmt.Errorf("reference is required")
	}

	r, err := t.recipes.Resolve(ctx, ref)
	if errors.Is(err, menu.ErrNotFound) {
		return nil, fmt.Errorf("recipe %q not found", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve recipe: %w", err)
	}

	out := recipeOut{
		Name:        r.Name,
		Slug:        r.Slug,
		Placement:   r.Placement,
		Servings:    r.BaseServings,
		Ingredients: linesOut(r.Ingredients),
		Extras:      linesOut(r.Extras),
	}
	return toMap(map[string]any{"recipe": out})
}

func linesOut(ls menu.Lines) []lineOut {
	out := make([]lineOut, 0, len(ls))
	for _, l := range ls {
		out = append(out, lineOut{Name: l.Name, Amount: l.Amount.Amount, Unit: l.Unit})
	}
	return out
}

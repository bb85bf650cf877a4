package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"menuplanner/catalog"
	"menuplanner/menu"
)

type ShoppingList struct {
	src  catalog.Source
	opts []menu.Option
}

func NewShoppingList(src catalog.Source, opts ...menu.Option) *ShoppingList {
	return &ShoppingList{src: src, opts: opts}
}

func (t *ShoppingList) Name() string  { return "shopping_list" }
func (t *ShoppingList) Title() string { return "Build Menu and Shopping List" }
func (t *ShoppingList) Description() string {
	return "Expands a weekly menu (YAML: section -> list of recipe references) into a menu summary and a categorized shopping list."
}

func (t *ShoppingList) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"menu":    {Type: "string"},
			"staples": {Type: "boolean"},
		},
		Required: []string{"menu"},
	}
}

func (t *ShoppingList) OutputSchema() *jsonschema.Schema {
	minAmount := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"report": {Type: "string"},
			"items": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"priority": {Type: "integer"},
						"name":     {Type: "string"},
						"amounts": {
							Type: "array",
							Items: &jsonschema.Schema{
								Type: "object",
								Properties: map[string]*jsonschema.Schema{
									"unit":   {Type: "string"},
									"amount": {Type: "number", Minimum: &minAmount},
								},
							},
						},
						"recipes":    {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
						"provenance": {Type: "string"},
					},
					Required: []string{"priority", "name", "amounts", "recipes"},
				},
			},
		},
		Required: []string{"report", "items"},
	}
}

type itemOut struct {
	Priority   int               `json:"priority"`
	Name       string            `json:"name"`
	Amounts    []menu.UnitAmount `json:"amounts"`
	Recipes    []string          `json:"recipes"`
	Provenance string            `json:"provenance"`
}

func (t *ShoppingList) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	raw := stringInput(input, "menu")
	if raw == "" {
		return nil, fmt.Errorf("menu is required")
	}
	m, err := menu.ParseMenu([]byte(raw))
	if err != nil {
		return nil, err
	}

	dir, err := t.src.Directory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	expander := menu.NewExpander(t.src, dir, t.opts...)
	if boolInput(input, "staples") {
		staples, err := t.src.Staples(ctx)
		if err != nil {
			return nil, fmt.Errorf("load staples: %w", err)
		}
		m = menu.WithStaples(m, staples, expander.SilentSection())
	}

	var report menu.Buffer
	ledger, err := expander.Report(ctx, m, &report)
	if err != nil {
		return nil, err
	}

	items := make([]itemOut, 0, ledger.Len())
	for _, it := range ledger.Items() {
		items = append(items, itemOut{
			Priority:   it.Priority,
			Name:       it.Ingredient,
			Amounts:    it.Amounts(),
			Recipes:    it.Recipes(),
			Provenance: menu.Provenance(it),
		})
	}
	return toMap(map[string]any{"report": report.String(), "items": items})
}

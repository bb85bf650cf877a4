package menu

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnitRecipe marks an amount as a count of whole batches rather than servings.
const UnitRecipe = "recipe"

// Amount is a quantity with its measurement unit.
type Amount struct {
	Amount float64 `json:"amount" yaml:"amount"`
	Unit   string  `json:"unit" yaml:"unit"`
}

// Line is a single named amount: an ingredient, an extra, or a menu entry.
type Line struct {
	Name string
	Amount
}

// Lines is an ordered name -> amount mapping. It decodes from and encodes to a
// YAML (or JSON) mapping while keeping the document order.
type Lines []Line

// UnmarshalYAML decodes a mapping node, keeping key order.
func (ls *Lines) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*ls = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of name to amount", node.Line)
	}

	out := make(Lines, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var l Line
		if err := node.Content[i].Decode(&l.Name); err != nil {
			return fmt.Errorf("line %d: %w", node.Content[i].Line, err)
		}
		if seen[l.Name] {
			return fmt.Errorf("line %d: mapping key %q already defined", node.Content[i].Line, l.Name)
		}
		seen[l.Name] = true
		if err := node.Content[i+1].Decode(&l.Amount); err != nil {
			return fmt.Errorf("line %d: amount for %q: %w", node.Content[i+1].Line, l.Name, err)
		}
		out = append(out, l)
	}
	*ls = out
	return nil
}

// MarshalYAML encodes the lines as an ordered mapping.
func (ls Lines) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, l := range ls {
		var key, val yaml.Node
		if err := key.Encode(l.Name); err != nil {
			return nil, err
		}
		if err := val.Encode(l.Amount); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &val)
	}
	return node, nil
}

// Scaled returns a copy of the lines with every amount multiplied by m.
func (ls Lines) Scaled(m float64) Lines {
	out := make(Lines, len(ls))
	for i, l := range ls {
		out[i] = Line{Name: l.Name, Amount: Amount{Amount: l.Amount.Amount * m, Unit: l.Unit}}
	}
	return out
}

// Recipe is a stored recipe. The ingredient list is written for BaseServings.
type Recipe struct {
	Name         string
	Slug         string
	Placement    string
	BaseServings float64
	Ingredients  Lines
	// Extras are first tried as references to other recipes.
	Extras Lines
}

// RecipeRepository resolves a slug or display name to a recipe. Lookup is
// exact. A miss is reported as ErrNotFound.
type RecipeRepository interface {
	Resolve(ctx context.Context, reference string) (*Recipe, error)
}

// CategoryDirectory maps ingredients to shopping-aisle categories and
// categories to sort priorities.
type CategoryDirectory interface {
	CategoryOf(ingredient string) string
	PriorityOf(category string) int
	HasCategories() bool
}

// RefKind tells what a menu or extra reference resolved to.
type RefKind int

const (
	// RefRecipe is a reference to a stored recipe.
	RefRecipe RefKind = iota
	// RefIngredient is a plain purchasable item.
	RefIngredient
)

func (k RefKind) String() string {
	switch k {
	case RefRecipe:
		return "recipe"
	case RefIngredient:
		return "ingredient"
	default:
		return "unknown"
	}
}

// Reference is a resolved name. Recipe is set only for RefRecipe.
type Reference struct {
	Kind   RefKind
	Name   string
	Recipe *Recipe
}

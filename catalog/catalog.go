// Package catalog provides the recipe and category collaborators the menu
// expander consumes: a document-backed catalog loaded from storage, and a
// Postgres-backed repository.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"gopkg.in/yaml.v3"

	"menuplanner/menu"
	"menuplanner/tools/storage"
)

// DefaultServings is used for recipes that do not say how many they serve.
const DefaultServings = 4

// DefaultStapleUnit is used for staples without a unit.
const DefaultStapleUnit = "stk"

// Source is a catalog backend: recipe resolution plus the configuration a
// menu run needs.
type Source interface {
	menu.RecipeRepository
	List(ctx context.Context, filter Filter) ([]string, error)
	Directory(ctx context.Context) (*menu.Directory, error)
	Staples(ctx context.Context) (menu.Lines, error)
}

// Compile-time interface checks.
var (
	_ Source = (*Catalog)(nil)
	_ Source = (*PostgresRepository)(nil)
)

// RecipeDoc is one recipe in the recipe document.
type RecipeDoc struct {
	Name        string     `yaml:"name"`
	Slug        string     `yaml:"slug"`
	Placement   string     `yaml:"placement"`
	Servings    *float64   `yaml:"servings"`
	Ingredients menu.Lines `yaml:"ingredients"`
	Extras      menu.Lines `yaml:"extras"`
	Blacklisted bool       `yaml:"blacklisted"`
	Whitelisted bool       `yaml:"whitelisted"`
}

// StapleDoc is an item bought every week.
type StapleDoc struct {
	Name   string   `yaml:"name"`
	Amount *float64 `yaml:"amount"`
	Unit   string   `yaml:"unit"`
}

// CategoryDoc is the category configuration document.
type CategoryDoc struct {
	Categories map[string]int    `yaml:"categories"`
	Items      map[string]string `yaml:"items"`
	Staples    []StapleDoc       `yaml:"staples"`
}

// Meta describes a recipe for visibility filtering.
type Meta struct {
	Name        string
	Slug        string
	Blacklisted bool
	Whitelisted bool
}

// Filter selects recipes for listing.
type Filter func(Meta) bool

// Visible hides blacklisted recipes unless they are also whitelisted.
func Visible(m Meta) bool { return !m.Blacklisted || m.Whitelisted }

// All keeps every recipe.
func All(Meta) bool { return true }

type record struct {
	recipe menu.Recipe
	meta   Meta
}

// Catalog holds a parsed recipe document and category configuration. It is
// read-only after construction and safe for concurrent use.
type Catalog struct {
	records    []*record
	bySlug     map[string]*record
	byName     map[string]*record
	categories CategoryDoc
}

// Load reads both documents from their states and parses them.
func Load(ctx context.Context, recipes storage.RecipeState, categories storage.CategoryState) (*Catalog, error) {
	rb, err := recipes.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	cb, err := categories.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	c, err := Parse(rb, cb)
	if err != nil {
		return nil, err
	}
	slog.Info("CATALOG: Loaded", "recipes", len(c.records), "categories", len(c.categories.Categories), "staples", len(c.categories.Staples))
	return c, nil
}

// Parse builds a catalog from a recipe document (a list of recipes) and a
// category document. JSON documents are accepted as well.
func Parse(recipes, categories []byte) (*Catalog, error) {
	var docs []RecipeDoc
	if err := yaml.Unmarshal(recipes, &docs); err != nil {
		return nil, fmt.Errorf("parse recipes: %w", err)
	}
	var cats CategoryDoc
	if err := yaml.Unmarshal(categories, &cats); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}

	c := &Catalog{
		records:    make([]*record, 0, len(docs)),
		bySlug:     make(map[string]*record, len(docs)),
		byName:     make(map[string]*record, len(docs)),
		categories: cats,
	}
	for i, d := range docs {
		rec, err := newRecord(d)
		if err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i+1, err)
		}
		if _, dup := c.byName[rec.meta.Name]; dup {
			return nil, fmt.Errorf("recipe %q: duplicate name", rec.meta.Name)
		}
		c.byName[rec.meta.Name] = rec
		if rec.meta.Slug != "" {
			if _, dup := c.bySlug[rec.meta.Slug]; dup {
				return nil, fmt.Errorf("recipe %q: duplicate slug %q", rec.meta.Name, rec.meta.Slug)
			}
			c.bySlug[rec.meta.Slug] = rec
		}
		c.records = append(c.records, rec)
	}
	for i, s := range cats.Staples {
		if s.Name == "" {
			return nil, fmt.Errorf("staple %d: missing name", i+1)
		}
	}
	return c, nil
}

func newRecord(d RecipeDoc) (*record, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	servings := float64(DefaultServings)
	if d.Servings != nil {
		servings = *d.Servings
	}
	if servings < 0 {
		return nil, fmt.Errorf("recipe %q: negative servings", d.Name)
	}
	return &record{
		recipe: menu.Recipe{
			Name:         d.Name,
			Slug:         d.Slug,
			Placement:    d.Placement,
			BaseServings: servings,
			Ingredients:  d.Ingredients,
			Extras:       d.Extras,
		},
		meta: Meta{Name: d.Name, Slug: d.Slug, Blacklisted: d.Blacklisted, Whitelisted: d.Whitelisted},
	}, nil
}

// Resolve looks a recipe up by slug, then by name. The returned recipe is a
// copy.
func (c *Catalog) Resolve(ctx context.Context, reference string) (*menu.Recipe, error) {
	rec, ok := c.bySlug[reference]
	if !ok {
		rec, ok = c.byName[reference]
	}
	if !ok {
		return nil, menu.ErrNotFound
	}
	r := rec.recipe
	r.Ingredients = append(menu.Lines(nil), r.Ingredients...)
	r.Extras = append(menu.Lines(nil), r.Extras...)
	return &r, nil
}

// List returns the names of the recipes accepted by filter, sorted.
func (c *Catalog) List(ctx context.Context, filter Filter) ([]string, error) {
	if filter == nil {
		filter = All
	}
	out := make([]string, 0, len(c.records))
	for _, rec := range c.records {
		if filter(rec.meta) {
			out = append(out, rec.meta.Name)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Directory builds the category directory. It fails with
// menu.ErrNoCategories when no category is configured.
func (c *Catalog) Directory(ctx context.Context) (*menu.Directory, error) {
	return menu.NewDirectory(c.categories.Categories, c.categories.Items)
}

// Staples returns the weekly staple items in document order.
func (c *Catalog) Staples(ctx context.Context) (menu.Lines, error) {
	out := make(menu.Lines, 0, len(c.categories.Staples))
	for _, s := range c.categories.Staples {
		amount := 1.0
		if s.Amount != nil {
			amount = *s.Amount
		}
		unit := s.Unit
		if unit == "" {
			unit = DefaultStapleUnit
		}
		out = append(out, menu.Line{Name: s.Name, Amount: menu.Amount{Amount: amount, Unit: unit}})
	}
	return out, nil
}

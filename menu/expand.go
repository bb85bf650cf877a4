package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"menuplanner"
)

// Expander walks a menu, resolves every reference down to purchasable
// ingredients and sums them into a Ledger.
type Expander struct {
	recipes   RecipeRepository
	directory CategoryDirectory
	silent    string
	maxDepth  int
	normalize NamePolicy
	logger    menuplanner.ExpansionLogger
}

// Option configures an Expander.
type Option func(*Expander)

// WithSilentSection sets the section whose recipes aggregate without being
// listed. Matching is case-insensitive.
func WithSilentSection(name string) Option {
	return func(e *Expander) { e.silent = name }
}

// WithMaxDepth limits how deeply extras may nest. Zero means no limit; cycles
// are detected regardless.
func WithMaxDepth(n int) Option {
	return func(e *Expander) { e.maxDepth = n }
}

// WithNamePolicy sets the ingredient name normalization.
func WithNamePolicy(p NamePolicy) Option {
	return func(e *Expander) {
		if p != nil {
			e.normalize = p
		}
	}
}

// WithStepLogger records every resolved reference.
func WithStepLogger(l menuplanner.ExpansionLogger) Option {
	return func(e *Expander) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExpander returns an expander over the given collaborators.
func NewExpander(recipes RecipeRepository, directory CategoryDirectory, opts ...Option) *Expander {
	e := &Expander{
		recipes:   recipes,
		directory: directory,
		silent:    DefaultSilentSection,
		normalize: KeepCase,
		logger:    menuplanner.NewNoOpExpansionLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SilentSection returns the configured silent section name.
func (e *Expander) SilentSection() string { return e.silent }

// Report renders the full "# Menu" / "# Shopping" document for m and returns
// the ledger it was built from.
func (e *Expander) Report(ctx context.Context, m Menu, p Printer) (*Ledger, error) {
	ledger := NewLedger()
	if err := e.checkDirectory(); err != nil {
		return nil, err
	}
	if err := p.Print("# Menu"); err != nil {
		return nil, err
	}
	if err := e.Expand(ctx, m, ledger, p); err != nil {
		return nil, err
	}
	if err := p.Print("# Shopping"); err != nil {
		return nil, err
	}
	if err := RenderShopping(ledger, p); err != nil {
		return nil, err
	}
	return ledger, nil
}

// Expand adds every entry of m to ledger, printing section headers and
// recipe summary lines for non-silent sections.
func (e *Expander) Expand(ctx context.Context, m Menu, ledger *Ledger, p Printer) error {
	if err := e.checkDirectory(); err != nil {
		return err
	}

	for _, sec := range m.Sections {
		w := walk{section: sec.Name, silent: strings.EqualFold(sec.Name, e.silent), ledger: ledger, printer: p}
		if !w.silent {
			if err := p.Print("## " + sec.Name); err != nil {
				return err
			}
		}

		for _, entry := range sec.Entries {
			ref, err := e.resolve(ctx, entry.Reference)
			if err != nil {
				return fmt.Errorf("section %q: %w", sec.Name, err)
			}

			switch ref.Kind {
			case RefRecipe:
				if err := e.addRecipe(ctx, w, ref.Recipe, entry.Amount, nil); err != nil {
					return fmt.Errorf("section %q: %w", sec.Name, err)
				}
			case RefIngredient:
				e.logStep(w, 0, ref, entry.Amount, 0, "")
				if entry.Amount.Amount > 0 {
					name := e.normalize(entry.Reference)
					e.addIngredient(ledger, Line{Name: entry.Reference, Amount: entry.Amount}, name)
				}
			}
		}
	}

	slog.Debug("EXPANDER: Menu expanded", "sections", len(m.Sections), "items", ledger.Len())
	return nil
}

// walk carries per-section state down the recursion.
type walk struct {
	section string
	silent  bool
	ledger  *Ledger
	printer Printer
}

func (e *Expander) addRecipe(ctx context.Context, w walk, r *Recipe, requested Amount, path []string) error {
	if slices.Contains(path, r.Name) {
		return &CycleError{Path: append(slices.Clone(path), r.Name)}
	}
	if e.maxDepth > 0 && len(path) >= e.maxDepth {
		return fmt.Errorf("%w: %s -> %s", ErrDepthExceeded, strings.Join(path, " -> "), r.Name)
	}
	path = append(slices.Clone(path), r.Name)

	multiplier := Multiplier(requested, r.BaseServings)
	e.logStep(w, len(path)-1, Reference{Kind: RefRecipe, Name: r.Name, Recipe: r}, requested, multiplier, parentOf(path))

	if !w.silent {
		if err := w.printer.Print(SummaryLine(r, multiplier)); err != nil {
			return err
		}
	}

	for _, ing := range r.Ingredients.Scaled(multiplier) {
		if ing.Amount.Amount > 0 {
			e.addIngredient(w.ledger, ing, r.Name)
		}
	}

	for _, extra := range r.Extras.Scaled(multiplier) {
		if extra.Amount.Amount <= 0 {
			continue
		}
		ref, err := e.resolve(ctx, extra.Name)
		if err != nil {
			return fmt.Errorf("extra of %q: %w", r.Name, err)
		}
		if ref.Kind == RefRecipe {
			if err := e.addRecipe(ctx, w, ref.Recipe, extra.Amount, path); err != nil {
				return err
			}
			continue
		}
		e.logStep(w, len(path), ref, extra.Amount, 0, r.Name)
		e.addIngredient(w.ledger, extra, r.Name)
	}
	return nil
}

func (e *Expander) addIngredient(ledger *Ledger, l Line, contributor string) {
	name := e.normalize(l.Name)
	category := e.directory.CategoryOf(l.Name)
	if category == UnknownCategory && name != l.Name {
		category = e.directory.CategoryOf(name)
	}
	ledger.Add(e.directory.PriorityOf(category), name, l.Unit, l.Amount.Amount, contributor)
}

// resolve maps a reference to a recipe, or to a raw ingredient when the
// repository does not know it. Other repository failures are returned.
func (e *Expander) resolve(ctx context.Context, reference string) (Reference, error) {
	r, err := e.recipes.Resolve(ctx, reference)
	switch {
	case err == nil && r != nil:
		return Reference{Kind: RefRecipe, Name: r.Name, Recipe: r}, nil
	case err == nil, errors.Is(err, ErrNotFound):
		return Reference{Kind: RefIngredient, Name: reference}, nil
	default:
		return Reference{}, fmt.Errorf("resolve %q: %w", reference, err)
	}
}

func (e *Expander) checkDirectory() error {
	if e.directory == nil || !e.directory.HasCategories() {
		return ErrNoCategories
	}
	return nil
}

func (e *Expander) logStep(w walk, depth int, ref Reference, requested Amount, multiplier float64, contributor string) {
	step := menuplanner.StepLog{
		Depth:       depth,
		Timestamp:   time.Now(),
		Section:     w.section,
		Reference:   ref.Name,
		Kind:        ref.Kind.String(),
		Amount:      requested.Amount,
		Unit:        requested.Unit,
		Multiplier:  multiplier,
		Contributor: contributor,
	}
	if err := e.logger.LogStep(step); err != nil {
		slog.Error("Failed to log expansion step", "error", err, "reference", ref.Name)
	}
}

func parentOf(path []string) string {
	if len(path) < 2 {
		return ""
	}
	return path[len(path)-2]
}

package menu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSilentSection is the section whose recipes are bought but not
// listed on the menu. It is matched case-insensitively.
const DefaultSilentSection = "Andet"

// UnitPlates is the unit used for servings chosen in the planner.
const UnitPlates = "plates"

// Entry is one menu line: a reference to a recipe or a raw ingredient plus
// the requested amount.
type Entry struct {
	Reference string
	Amount
}

// Section is a named group of entries, usually a day.
type Section struct {
	Name    string
	Entries []Entry
}

// Menu is an ordered list of sections.
type Menu struct {
	Sections []Section
}

// ParseMenu decodes a menu document: a mapping from section name to a list
// of entries, each either a bare reference (one whole batch) or a single-key
// mapping from reference to {amount, unit}.
func ParseMenu(data []byte) (Menu, error) {
	var m Menu
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Menu{}, fmt.Errorf("parse menu: %w", err)
	}
	return m, nil
}

// LoadMenu reads and parses a menu file.
func LoadMenu(path string) (Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Menu{}, fmt.Errorf("read menu: %w", err)
	}
	return ParseMenu(data)
}

// UnmarshalYAML keeps section and entry order.
func (m *Menu) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		m.Sections = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: menu must be a mapping of section name to entries", node.Line)
	}

	m.Sections = make([]Section, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if seen[name] {
			return fmt.Errorf("line %d: mapping key %q already defined", node.Content[i].Line, name)
		}
		seen[name] = true
		entries, err := decodeEntries(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("section %q: %w", name, err)
		}
		m.Sections = append(m.Sections, Section{Name: name, Entries: entries})
	}
	return nil
}

func decodeEntries(node *yaml.Node) ([]Entry, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a list of entries", node.Line)
	}

	out := make([]Entry, 0, len(node.Content))
	for _, n := range node.Content {
		switch n.Kind {
		case yaml.ScalarNode:
			out = append(out, Entry{Reference: n.Value, Amount: Amount{Amount: 1, Unit: UnitRecipe}})
		case yaml.MappingNode:
			if len(n.Content) != 2 {
				return nil, fmt.Errorf("line %d: entry must have exactly one reference", n.Line)
			}
			e := Entry{Reference: n.Content[0].Value}
			if err := n.Content[1].Decode(&e.Amount); err != nil {
				return nil, fmt.Errorf("line %d: amount for %q: %w", n.Line, e.Reference, err)
			}
			out = append(out, e)
		default:
			return nil, fmt.Errorf("line %d: unsupported entry", n.Line)
		}
	}
	return out, nil
}

// MarshalYAML writes the menu in the same shape ParseMenu reads. Whole
// single batches are written as bare references.
func (m Menu) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range m.Sections {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range s.Entries {
			if e.Unit == UnitRecipe && e.Amount.Amount == 1 {
				seq.Content = append(seq.Content, strNode(e.Reference))
				continue
			}
			var val yaml.Node
			if err := val.Encode(e.Amount); err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, &yaml.Node{
				Kind:    yaml.MappingNode,
				Content: []*yaml.Node{strNode(e.Reference), &val},
			})
		}
		root.Content = append(root.Content, strNode(s.Name), seq)
	}
	return root, nil
}

func strNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// Section returns the section whose name case-insensitively equals name.
func (m *Menu) Section(name string) (*Section, bool) {
	for i := range m.Sections {
		if strings.EqualFold(m.Sections[i].Name, name) {
			return &m.Sections[i], true
		}
	}
	return nil, false
}

// WithStaples returns a copy of m whose silent section also lists the
// staples. The section is appended when missing.
func WithStaples(m Menu, staples Lines, silent string) Menu {
	out := Menu{Sections: make([]Section, len(m.Sections))}
	for i, s := range m.Sections {
		out.Sections[i] = Section{Name: s.Name, Entries: append([]Entry(nil), s.Entries...)}
	}
	if len(staples) == 0 {
		return out
	}

	sec, ok := out.Section(silent)
	if !ok {
		out.Sections = append(out.Sections, Section{Name: silent})
		sec = &out.Sections[len(out.Sections)-1]
	}
	for _, s := range staples {
		sec.Entries = append(sec.Entries, Entry{Reference: s.Name, Amount: s.Amount})
	}
	return out
}

// Choice is a recipe picked in the planner with the number of plates wanted.
type Choice struct {
	Recipe string
	Plates float64
}

// FromChoices builds a menu with one section per chosen recipe.
func FromChoices(choices []Choice) Menu {
	m := Menu{Sections: make([]Section, 0, len(choices))}
	for _, c := range choices {
		m.Sections = append(m.Sections, Section{
			Name:    c.Recipe,
			Entries: []Entry{{Reference: c.Recipe, Amount: Amount{Amount: c.Plates, Unit: UnitPlates}}},
		})
	}
	return m
}

// WeekFileName is the conventional file name of a week's menu.
func WeekFileName(week, year int) string {
	return fmt.Sprintf("uge_%02d_%d.yaml", week, year)
}

// NextFreePath returns WeekFileName in dir, or the first "(n)"-suffixed
// variant that does not exist yet.
func NextFreePath(dir string, week, year int) (string, error) {
	base := strings.TrimSuffix(WeekFileName(week, year), ".yaml")
	path := filepath.Join(dir, base+".yaml")
	for i := 1; ; i++ {
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("check menu path: %w", err)
		}
		path = filepath.Join(dir, fmt.Sprintf("%s(%d).yaml", base, i))
	}
}

// SaveMenu writes m to the next free week file in dir and returns its path.
func SaveMenu(dir string, week, year int, m Menu) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create menu dir: %w", err)
	}
	path, err := NextFreePath(dir, week, year)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode menu: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write menu: %w", err)
	}
	return path, nil
}

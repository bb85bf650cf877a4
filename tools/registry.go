package tools

import (
	"fmt"
	"sort"

	"menuplanner/catalog"
	"menuplanner/menu"
)

// Compile-time interface check.
var _ Provider = (*Registry)(nil)

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a new tool registry over the given catalog. The options
// configure the expander used by shopping_list.
func NewRegistry(src catalog.Source, opts ...menu.Option) (*Registry, error) {
	if src == nil {
		return nil, fmt.Errorf("tool registry needs a catalog source")
	}

	registry := Registry{}
	for _, t := range []Tool{
		NewRecipeGet(src),
		NewRecipeList(src),
		NewShoppingList(src, opts...),
	} {
		registry[t.Name()] = t
	}
	return &registry, nil
}

// GetTools returns all tools in the registry sorted by name
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r *Registry) GetTool(name string) (Tool, error) {
	tool, exists := (*r)[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}

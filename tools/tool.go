package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

// Call is a request to run one tool.
type Call struct {
	Name      string         `json:"name"`
	Input     map[string]any `json:"input"`
	ToolUseID string         `json:"tool_use_id,omitempty"`
}

// Provider looks tools up by name.
type Provider interface {
	GetTools() []Tool
	GetTool(name string) (Tool, error)
}

// Execute runs call against the provider.
func Execute(ctx context.Context, p Provider, call Call) (map[string]any, error) {
	tool, err := p.GetTool(call.Name)
	if err != nil {
		return nil, err
	}
	input := call.Input
	if input == nil {
		input = map[string]any{}
	}
	out, err := tool.Run(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to run tool %q: %w", call.Name, err)
	}
	return out, nil
}

// toMap marshals v and decodes it back into a map to keep outputs uniform.
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func stringInput(input map[string]any, key string) string {
	s, _ := input[key].(string)
	return s
}

func boolInput(input map[string]any, key string) bool {
	b, _ := input[key].(bool)
	return b
}

package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeList_Run(t *testing.T) {
	tool := NewRecipeList(testCatalog(t))

	tests := []struct {
		name  string
		input map[string]any
		want  []any
	}{
		{name: "hides blacklisted", input: map[string]any{}, want: []any{"Chili", "Rice"}},
		{name: "include hidden", input: map[string]any{"include_hidden": true}, want: []any{"Chili", "Old Stew", "Rice"}},
		{name: "non-bool flag is ignored", input: map[string]any{"include_hidden": "yes"}, want: []any{"Chili", "Rice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tool.Run(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got["recipes"])
		})
	}
}

package menuplanner

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExpansionLogger_Flush(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileExpansionLogger(&buf)

	require.NoError(t, l.LogStep(StepLog{Section: "Mandag", Reference: "Chili", Kind: "recipe", Amount: 8, Unit: "servings", Multiplier: 2}))
	require.NoError(t, l.LogStep(StepLog{Depth: 1, Section: "Mandag", Reference: "Salad", Kind: "ingredient", Amount: 2, Unit: "recipe", Contributor: "Chili"}))
	assert.Len(t, l.Steps(), 2)

	require.NoError(t, l.Flush())
	assert.Empty(t, l.Steps())

	var doc struct {
		Expansion struct {
			Timestamp time.Time `json:"timestamp"`
			Steps     []StepLog `json:"steps"`
		} `json:"expansion"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Expansion.Steps, 2)
	assert.Equal(t, "Chili", doc.Expansion.Steps[0].Reference)
	assert.Equal(t, "Chili", doc.Expansion.Steps[1].Contributor)
}

func TestFileExpansionLogger_NilWriter(t *testing.T) {
	l := NewFileExpansionLogger(nil)
	require.NoError(t, l.LogStep(StepLog{Reference: "Milk"}))
	assert.NoError(t, l.Flush())
}

func TestStdoutExpansionLogger(t *testing.T) {
	var buf bytes.Buffer
	l := &StdoutExpansionLogger{out: &buf}

	require.NoError(t, l.LogStep(StepLog{Reference: "Chili", Kind: "recipe"}))
	require.NoError(t, l.LogStep(StepLog{Reference: "Milk", Kind: "ingredient"}))

	out := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, out, 2)
	var step StepLog
	require.NoError(t, json.Unmarshal([]byte(out[1]), &step))
	assert.Equal(t, "Milk", step.Reference)
	assert.NotContains(t, out[0], "contributor", "empty contributor is omitted")
}

func TestNoOpExpansionLogger(t *testing.T) {
	assert.NoError(t, NewNoOpExpansionLogger().LogStep(StepLog{}))
}

func TestNewExpansionLogFilePath(t *testing.T) {
	p := NewExpansionLogFilePath("Uge 42 2025")
	assert.True(t, strings.HasPrefix(p, "./logs/"))
	assert.True(t, strings.HasSuffix(p, ".uge_42_2025.json"))
}

func TestNewOtelProviders_NoEndpoint(t *testing.T) {
	ctx := context.Background()
	tp, mp, shutdown, err := NewOtelProviders(ctx, OtelConfig{ServiceName: "menu-planner", ServiceVersion: "test"})
	require.NoError(t, err)
	require.NotNil(t, tp)
	require.NotNil(t, mp)

	_, span := tp.Tracer(TracerNameCLI).Start(ctx, "test")
	span.End()

	assert.NoError(t, shutdown(ctx))
}

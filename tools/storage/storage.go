package storage

import (
	"context"
	"errors"
)

// RecipeState loads the raw recipe catalog document.
type RecipeState interface {
	Load(ctx context.Context) ([]byte, error)
}

// CategoryState loads the raw category configuration document
// (categories, ingredient placement and staples).
type CategoryState interface {
	Load(ctx context.Context) ([]byte, error)
}

// TestState is a simple in-memory implementation for testing. It serves as
// either state.
type TestState struct {
	data  []byte
	err   error
	loads int
}

func NewTestState(data []byte) *TestState {
	return &TestState{data: data}
}

func NewTestStateWithError() *TestState {
	return &TestState{err: errors.New("not found")}
}

func (t *TestState) Load(ctx context.Context) ([]byte, error) {
	t.loads++
	if t.err != nil {
		return nil, t.err
	}
	return t.data, nil
}

// Loads reports how many times Load was called.
func (t *TestState) Loads() int {
	return t.loads
}

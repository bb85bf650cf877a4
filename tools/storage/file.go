package storage

import (
	"context"
	"fmt"
	"os"
)

// FileState reads a document from the local filesystem.
type FileState struct {
	FilePath string
	kind     string
}

func NewFileRecipeState(filePath string) *FileState {
	return &FileState{FilePath: filePath, kind: "recipes"}
}

func NewFileCategoryState(filePath string) *FileState {
	return &FileState{FilePath: filePath, kind: "categories"}
}

func (f *FileState) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.FilePath)
	if err != nil {
		return nil, fmt.Errorf("read %s file: %w", f.kind, err)
	}
	return b, nil
}

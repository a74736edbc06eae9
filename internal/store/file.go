package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File persists the blob as one JSON file on disk. Saves go through a
// temp-file rename so a crash mid-write never leaves a torn document.
type File struct {
	path string
}

func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &File{path: path}, nil
}

func (f *File) Load(_ context.Context) ([]byte, error) {
	blob, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read document file: %w", err)
	}
	return blob, nil
}

func (f *File) Save(_ context.Context, blob []byte) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0644); err != nil {
		return fmt.Errorf("write document file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace document file: %w", err)
	}
	return nil
}

func (f *File) Close() error { return nil }

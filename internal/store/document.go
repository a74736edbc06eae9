package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"despeses/internal/core"
)

// LoadDocument reads and parses the persisted document. An absent blob
// yields a fresh default document; a blob that fails to parse is discarded
// with a warning and also yields a fresh default. This is never a hard
// failure: losing a corrupt blob beats refusing to start.
func LoadDocument(ctx context.Context, s Store) *core.Document {
	blob, err := s.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return core.NewDocument()
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to load document, starting fresh", "error", err)
		return core.NewDocument()
	}

	var doc core.Document
	if err := json.Unmarshal(blob, &doc); err != nil {
		slog.WarnContext(ctx, "Failed to parse stored document, resetting", "error", err)
		return core.NewDocument()
	}
	doc.Normalize()
	return &doc
}

// SaveDocument serializes and persists the document.
func SaveDocument(ctx context.Context, s Store, doc *core.Document) error {
	blob, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := s.Save(ctx, blob); err != nil {
		return fmt.Errorf("persist document: %w", err)
	}
	return nil
}

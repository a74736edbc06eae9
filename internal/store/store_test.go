package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"despeses/internal/core"
	"despeses/internal/ledger"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := m.Save(ctx, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	blob, err := m.Load(ctx)
	if err != nil || string(blob) != `{"a":1}` {
		t.Fatalf("load = %s, %v", blob, err)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "ledger.json")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if _, err := f.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := f.Save(ctx, []byte("blob")); err != nil {
		t.Fatalf("save: %v", err)
	}
	blob, err := f.Load(ctx)
	if err != nil || string(blob) != "blob" {
		t.Fatalf("load = %s, %v", blob, err)
	}

	// Saves replace wholesale.
	if err := f.Save(ctx, []byte("v2")); err != nil {
		t.Fatalf("save: %v", err)
	}
	blob, _ = f.Load(ctx)
	if string(blob) != "v2" {
		t.Fatalf("load after overwrite = %s", blob)
	}
}

func TestLoadDocumentFresh(t *testing.T) {
	doc := LoadDocument(context.Background(), NewMemory())
	if doc == nil || len(doc.Categories) == 0 {
		t.Fatalf("expected fresh default document, got %+v", doc)
	}
}

func TestLoadDocumentCorruptBlobResets(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Save(ctx, []byte("{not json")); err != nil {
		t.Fatalf("save: %v", err)
	}
	doc := LoadDocument(ctx, m)
	if doc == nil || doc.EntryCount() != 0 {
		t.Fatalf("expected reset document, got %+v", doc)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	doc := core.NewDocument()
	ledger.AddVariable(doc, "2024-05", ledger.EntryInput{Name: "Cinema", Amount: "9.5", Category: "Oci"})
	if err := SaveDocument(ctx, m, doc); err != nil {
		t.Fatalf("save document: %v", err)
	}

	loaded := LoadDocument(ctx, m)
	month := loaded.Months["2024-05"]
	if month == nil || len(month.Variable) != 1 {
		t.Fatalf("round trip lost data: %+v", loaded.Months)
	}
	if month.Variable[0].Amount != 9.5 {
		t.Fatalf("amount = %v", month.Variable[0].Amount)
	}
	if !month.FixedAppliedFromTemplates {
		t.Fatalf("applied flag lost")
	}
}

func TestLoadDocumentDefaultsMissingFields(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	// A legacy blob missing most top-level fields still loads.
	if err := m.Save(ctx, []byte(`{"lastOpenedMonth":"2023-01"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	doc := LoadDocument(ctx, m)
	if doc.Months == nil || doc.FixedTemplates == nil {
		t.Fatalf("missing fields not defaulted: %+v", doc)
	}
	if doc.LastOpenedMonth != "2023-01" {
		t.Fatalf("present field rewritten: %s", doc.LastOpenedMonth)
	}
}

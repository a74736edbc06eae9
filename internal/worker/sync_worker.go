package worker

import (
	"context"
	"fmt"
	"log/slog"

	"despeses/internal/amqp"
	"despeses/internal/csvio"
	"despeses/internal/store"
)

// SheetWriter is the slice of the sheets client the worker needs.
type SheetWriter interface {
	ReplaceAll(ctx context.Context, rows [][]string) error
}

// SyncWorker mirrors the persisted ledger document into a spreadsheet. Each
// document-saved message triggers a full reload and rewrite: the message is
// only a wake-up call, the store is the source of truth.
type SyncWorker struct {
	store  store.Store
	sheets SheetWriter
}

func NewSyncWorker(store store.Store, sheets SheetWriter) *SyncWorker {
	return &SyncWorker{
		store:  store,
		sheets: sheets,
	}
}

// HandleDocumentSaved processes a single document-saved message.
func (w *SyncWorker) HandleDocumentSaved(ctx context.Context, msg *amqp.DocumentSavedMessage) error {
	slog.InfoContext(ctx, "Processing document saved message",
		"months", msg.Months,
		"entries", msg.Entries)

	doc := store.LoadDocument(ctx, w.store)
	rows := csvio.Rows(doc)

	if err := w.sheets.ReplaceAll(ctx, rows); err != nil {
		return fmt.Errorf("replace sheet contents: %w", err)
	}

	slog.InfoContext(ctx, "Document mirrored to spreadsheet", "rows", len(rows))
	return nil
}

// Package services orchestrates ledger operations: every command mutates the
// held document, persists it through the store and notifies the event bus.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"despeses/internal/amqp"
	"despeses/internal/core"
	"despeses/internal/csvio"
	"despeses/internal/ledger"
	"despeses/internal/store"
)

// LedgerService owns the in-memory document behind a single mutex. The
// document has no internal concurrency control, so every operation runs
// under the lock, reads included, since reading a month can initialize it.
type LedgerService struct {
	mu     sync.Mutex
	doc    *core.Document
	store  store.Store
	events *amqp.Client
}

// New loads the persisted document (or starts fresh) and wraps it.
// The events client may be nil; publishing is then skipped.
func New(ctx context.Context, st store.Store, events *amqp.Client) *LedgerService {
	return &LedgerService{
		doc:    store.LoadDocument(ctx, st),
		store:  st,
		events: events,
	}
}

// persist saves the current document and publishes a saved event. Publish
// failures are logged, never surfaced: the local save already succeeded.
func (s *LedgerService) persist(ctx context.Context) error {
	if err := store.SaveDocument(ctx, s.store, s.doc); err != nil {
		return err
	}
	if s.events != nil {
		if err := s.events.PublishDocumentSaved(ctx, len(s.doc.Months), s.doc.EntryCount()); err != nil {
			slog.ErrorContext(ctx, "Failed to publish document saved event", "error", err)
		}
	}
	return nil
}

// DocumentJSON returns the serialized current document.
func (s *LedgerService) DocumentJSON(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(s.doc)
}

// LastOpenedMonth returns the most recently opened month key.
func (s *LedgerService) LastOpenedMonth(_ context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.LastOpenedMonth
}

// OpenMonth initializes the month, records it as last opened and returns a
// copy of its record.
func (s *LedgerService) OpenMonth(ctx context.Context, monthKey string) (core.MonthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	month := ledger.Month(s.doc, monthKey)
	s.doc.LastOpenedMonth = monthKey
	return *month, s.persist(ctx)
}

// Categories returns the current category list.
func (s *LedgerService) Categories(_ context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.doc.Categories...)
}

func (s *LedgerService) AddCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger.AddCategory(s.doc, name)
	return s.persist(ctx)
}

func (s *LedgerService) DeleteCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger.DeleteCategory(s.doc, name)
	return s.persist(ctx)
}

func (s *LedgerService) AddVariable(ctx context.Context, monthKey string, in ledger.EntryInput) (core.ExpenseEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := ledger.AddVariable(s.doc, monthKey, in)
	return entry, s.persist(ctx)
}

func (s *LedgerService) UpdateVariable(ctx context.Context, monthKey, id string, upd ledger.EntryUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger.UpdateVariable(s.doc, monthKey, id, upd)
	return s.persist(ctx)
}

func (s *LedgerService) DeleteVariable(ctx context.Context, monthKey, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger.DeleteVariable(s.doc, monthKey, id)
	return s.persist(ctx)
}

func (s *LedgerService) AddFixed(ctx context.Context, monthKey string, in ledger.EntryInput) (core.ExpenseEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := ledger.AddFixed(s.doc, monthKey, in)
	return entry, s.persist(ctx)
}

func (s *LedgerService) UpdateFixed(ctx context.Context, monthKey, id string, upd ledger.EntryUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger.UpdateFixed(s.doc, monthKey, id, upd)
	return s.persist(ctx)
}

func (s *LedgerService) DeleteFixed(ctx context.Context, monthKey, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger.DeleteFixed(s.doc, monthKey, id)
	return s.persist(ctx)
}

func (s *LedgerService) AddFixedTemplate(ctx context.Context, in ledger.EntryInput, effectiveMonth string) (core.FixedTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl := ledger.AddFixedTemplate(s.doc, in, effectiveMonth)
	return tpl, s.persist(ctx)
}

func (s *LedgerService) UpdateFixedTemplate(ctx context.Context, templateID string, upd ledger.TemplateUpdate, effectiveMonth string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger.UpdateFixedTemplate(s.doc, templateID, upd, effectiveMonth)
	return s.persist(ctx)
}

func (s *LedgerService) DeleteFixedTemplate(ctx context.Context, templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger.DeleteFixedTemplate(s.doc, templateID)
	return s.persist(ctx)
}

// MonthSums returns the fixed and variable totals for a month. Reading a
// never-opened month initializes it, so the document is persisted afterwards.
func (s *LedgerService) MonthSums(ctx context.Context, monthKey string) (fixed, variable float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fixed = ledger.SumFixedForMonth(s.doc, monthKey)
	variable = ledger.SumVariableForMonth(s.doc, monthKey)
	return fixed, variable, s.persist(ctx)
}

func (s *LedgerService) TotalsByCategory(ctx context.Context, monthKey string) ([]ledger.CategoryTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	totals := ledger.TotalsByCategoryForMonth(s.doc, monthKey)
	return totals, s.persist(ctx)
}

func (s *LedgerService) TotalsByYear(ctx context.Context, year int) ([]ledger.MonthTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	series := ledger.TotalsByMonthForYear(s.doc, year)
	return series, s.persist(ctx)
}

// ExportCSV renders the held document as CSV text.
func (s *LedgerService) ExportCSV(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text := csvio.Export(s.doc)
	// The export may have materialized the last opened month.
	return text, s.persist(ctx)
}

// ImportCSV replaces the held document with one parsed from text. On parse
// failure the held document is left untouched and the error is returned.
func (s *LedgerService) ImportCSV(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := csvio.Import(text)
	if err != nil {
		return fmt.Errorf("import csv: %w", err)
	}
	s.doc = doc
	return s.persist(ctx)
}

// Close releases the store and event bus connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}

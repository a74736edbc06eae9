package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"despeses/internal/core"
	"despeses/internal/ledger"
)

type (
	entryPayload struct {
		Name     string `json:"name"`
		Amount   string `json:"amount"`
		Category string `json:"category"`
		Note     string `json:"note"`
	}

	// Update payloads distinguish absent fields from empty ones, so
	// "set amount to 0" and "leave amount alone" stay different requests.
	entryUpdatePayload struct {
		Name     *string `json:"name"`
		Amount   *string `json:"amount"`
		Category *string `json:"category"`
		Note     *string `json:"note"`
	}

	templatePayload struct {
		entryPayload
		EffectiveMonth string `json:"effectiveMonth"`
	}

	templateUpdatePayload struct {
		entryUpdatePayload
		EffectiveMonth string `json:"effectiveMonth"`
	}

	categoryPayload struct {
		Name string `json:"name"`
	}
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// monthKeyParam normalizes the {key} path value. Lenient spellings like
// 2024-5 are accepted; anything else is a 400.
func monthKeyParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := core.NormalizeMonthKey(r.PathValue("key"))
	if key == "" {
		writeError(w, http.StatusBadRequest, "invalid month key")
		return "", false
	}
	return key, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	blob, err := s.ledger.DocumentJSON(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "serialize document")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(blob)
}

func (s *Server) handleOpenMonth(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKeyParam(w, r)
	if !ok {
		return
	}
	month, err := s.ledger.OpenMonth(r.Context(), key)
	if err != nil {
		s.persistError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, month)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Categories(r.Context()))
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var p categoryPayload
	if !decodeBody(w, r, &p) {
		return
	}
	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "category name is required")
		return
	}
	if err := s.ledger.AddCategory(r.Context(), p.Name); err != nil {
		s.persistError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": p.Name})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteCategory(r.Context(), r.PathValue("name")); err != nil {
		s.persistError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// entryKind validates the {kind} path value.
func entryKind(w http.ResponseWriter, r *http.Request) (string, bool) {
	kind := r.PathValue("kind")
	if kind != "fixed" && kind != "variable" {
		writeError(w, http.StatusNotFound, "unknown entry kind")
		return "", false
	}
	return kind, true
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKeyParam(w, r)
	if !ok {
		return
	}
	kind, ok := entryKind(w, r)
	if !ok {
		return
	}
	var p entryPayload
	if !decodeBody(w, r, &p) {
		return
	}
	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "entry name is required")
		return
	}

	in := ledger.EntryInput{Name: p.Name, Amount: p.Amount, Category: p.Category, Note: p.Note}
	var entry core.ExpenseEntry
	var err error
	if kind == "fixed" {
		entry, err = s.ledger.AddFixed(r.Context(), key, in)
	} else {
		entry, err = s.ledger.AddVariable(r.Context(), key, in)
	}
	if err != nil {
		s.persistError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKeyParam(w, r)
	if !ok {
		return
	}
	kind, ok := entryKind(w, r)
	if !ok {
		return
	}
	var p entryUpdatePayload
	if !decodeBody(w, r, &p) {
		return
	}

	upd := ledger.EntryUpdate{Name: p.Name, Amount: p.Amount, Category: p.Category, Note: p.Note}
	var err error
	if kind == "fixed" {
		err = s.ledger.UpdateFixed(r.Context(), key, r.PathValue("id"), upd)
	} else {
		err = s.ledger.UpdateVariable(r.Context(), key, r.PathValue("id"), upd)
	}
	if err != nil {
		s.persistError(w, r, err)
		return
	}
	// Unknown IDs are no-ops, not errors; the command layer stays silent.
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKeyParam(w, r)
	if !ok {
		return
	}
	kind, ok := entryKind(w, r)
	if !ok {
		return
	}
	var err error
	if kind == "fixed" {
		err = s.ledger.DeleteFixed(r.Context(), key, r.PathValue("id"))
	} else {
		err = s.ledger.DeleteVariable(r.Context(), key, r.PathValue("id"))
	}
	if err != nil {
		s.persistError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddTemplate(w http.ResponseWriter, r *http.Request) {
	var p templatePayload
	if !decodeBody(w, r, &p) {
		return
	}
	effective := core.NormalizeMonthKey(p.EffectiveMonth)
	if effective == "" {
		writeError(w, http.StatusBadRequest, "invalid effectiveMonth")
		return
	}
	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "template name is required")
		return
	}
	in := ledger.EntryInput{Name: p.Name, Amount: p.Amount, Category: p.Category, Note: p.Note}
	tpl, err := s.ledger.AddFixedTemplate(r.Context(), in, effective)
	if err != nil {
		s.persistError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var p templateUpdatePayload
	if !decodeBody(w, r, &p) {
		return
	}
	effective := core.NormalizeMonthKey(p.EffectiveMonth)
	if effective == "" {
		writeError(w, http.StatusBadRequest, "invalid effectiveMonth")
		return
	}
	upd := ledger.TemplateUpdate{Name: p.Name, Amount: p.Amount, Category: p.Category, Note: p.Note}
	if err := s.ledger.UpdateFixedTemplate(r.Context(), r.PathValue("id"), upd, effective); err != nil {
		s.persistError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteFixedTemplate(r.Context(), r.PathValue("id")); err != nil {
		s.persistError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMonthSums(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKeyParam(w, r)
	if !ok {
		return
	}
	fixed, variable, err := s.ledger.MonthSums(r.Context(), key)
	if err != nil {
		s.persistError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"monthKey": key,
		"fixed":    fixed,
		"variable": variable,
		"total":    fixed + variable,
	})
}

func (s *Server) handleTotalsByCategory(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKeyParam(w, r)
	if !ok {
		return
	}
	totals, err := s.ledger.TotalsByCategory(r.Context(), key)
	if err != nil {
		s.persistError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleTotalsByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year < 1 || year > 9999 {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	series, err := s.ledger.TotalsByYear(r.Context(), year)
	if err != nil {
		s.persistError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	text, err := s.ledger.ExportCSV(r.Context())
	if err != nil {
		s.persistError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="despeses.csv"`)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, text)
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body")
		return
	}
	if err := s.ledger.ImportCSV(r.Context(), string(body)); err != nil {
		// The held document is untouched on failure.
		writeError(w, http.StatusBadRequest, "import failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

func (s *Server) persistError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "Failed to persist document", "error", err, "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "persist document")
}

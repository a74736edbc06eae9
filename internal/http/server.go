// Package http exposes the ledger commands and queries as a JSON API. It is
// the boundary a renderer talks to; the core never sees a request.
package http

import (
	"net/http"

	"despeses/internal/services"
)

type Server struct {
	http.Server
	ledger *services.LedgerService
}

func NewServer(addr string, ledger *services.LedgerService) *Server {
	s := &Server{ledger: ledger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleHealth)

	mux.HandleFunc("GET /api/document", s.handleGetDocument)
	mux.HandleFunc("GET /api/months/{key}", s.handleOpenMonth)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleAddCategory)
	mux.HandleFunc("DELETE /api/categories/{name}", s.handleDeleteCategory)

	mux.HandleFunc("POST /api/months/{key}/{kind}", s.handleAddEntry)
	mux.HandleFunc("PUT /api/months/{key}/{kind}/{id}", s.handleUpdateEntry)
	mux.HandleFunc("DELETE /api/months/{key}/{kind}/{id}", s.handleDeleteEntry)

	mux.HandleFunc("POST /api/templates", s.handleAddTemplate)
	mux.HandleFunc("PUT /api/templates/{id}", s.handleUpdateTemplate)
	mux.HandleFunc("DELETE /api/templates/{id}", s.handleDeleteTemplate)

	mux.HandleFunc("GET /api/totals/month/{key}", s.handleMonthSums)
	mux.HandleFunc("GET /api/totals/categories/{key}", s.handleTotalsByCategory)
	mux.HandleFunc("GET /api/totals/year/{year}", s.handleTotalsByYear)

	mux.HandleFunc("GET /api/export.csv", s.handleExportCSV)
	mux.HandleFunc("POST /api/import", s.handleImportCSV)

	s.Addr = addr
	s.Handler = withSecurityHeaders(mux)
	return s
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

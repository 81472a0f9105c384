// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayseed/internal/domain"
	"stayseed/internal/storage/memory"
)

// RunReader exposes past seeding runs; satisfied by the redis journal.
type RunReader interface {
	RecentRuns(ctx context.Context, limit int64) ([]string, error)
	Summary(ctx context.Context, runID string) (domain.UploadReport, bool, error)
	Chunks(ctx context.Context, runID string) (map[int]domain.ChunkResult, error)
}

// Handlers serve a PostgREST-shaped stand-in for the remote store.
type Handlers struct {
	Tables *memory.Tables
	Key    string
	Runs   RunReader // optional
}

// maxBody caps one insert request; 50 records are a few tens of KiB.
const maxBody = 4 << 20

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/rest/v1/{table}", h.insertRows)
	s.mux.Get("/rest/v1/{table}", h.listRows)
	if h.Runs != nil {
		s.mux.Get("/seed/runs", h.listRuns)
		s.mux.Get("/seed/runs/{id}", h.getRun)
		s.mux.Get("/seed/runs/{id}/chunks", h.getRunChunks)
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) authorized(r *http.Request) bool {
	return h.Key != "" &&
		r.Header.Get("apikey") == h.Key &&
		r.Header.Get("Authorization") == "Bearer "+h.Key
}

func (h *Handlers) insertRows(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "apikey and bearer token required")
		return
	}
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		writeProblem(w, http.StatusUnsupportedMediaType, "Unsupported Media Type", "body must be application/json")
		return
	}

	var rows []domain.Accommodation
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rows); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "body must be a JSON array of places: "+err.Error())
		return
	}
	for i, row := range rows {
		if !domain.CategoryMatchesTier(row.Category, row.PriceTier) {
			writeProblem(w, http.StatusBadRequest, "Check Violation",
				fmt.Sprintf("row %d: type %q not allowed for price_level %d", i, row.Category, row.PriceTier))
			return
		}
	}

	table := chi.URLParam(r, "table")
	total := h.Tables.Insert(table, rows)
	log.Debug().Str("table", table).Int("rows", len(rows)).Int("total", total).Msg("rows inserted")

	if strings.Contains(r.Header.Get("Prefer"), "return=representation") {
		writeJSON(w, http.StatusCreated, rows)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) listRows(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "apikey and bearer token required")
		return
	}
	rows := h.Tables.List(chi.URLParam(r, "table"))
	if city := r.URL.Query().Get("city"); city != "" {
		// PostgREST filter syntax: ?city=eq.Goa
		city = strings.TrimPrefix(city, "eq.")
		kept := rows[:0]
		for _, row := range rows {
			if row.City == city {
				kept = append(kept, row)
			}
		}
		rows = kept
	}
	if len(rows) == 0 {
		w.Header().Set("Content-Range", "*/0")
	} else {
		w.Header().Set("Content-Range", fmt.Sprintf("0-%d/%d", len(rows)-1, len(rows)))
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handlers) listRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Runs.RecentRuns(r.Context(), 20)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Journal Unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (h *Handlers) getRun(w http.ResponseWriter, r *http.Request) {
	rep, found, err := h.Runs.Summary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Journal Unavailable", err.Error())
		return
	}
	if !found {
		writeProblem(w, http.StatusNotFound, "Not Found", "run not found")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h *Handlers) getRunChunks(w http.ResponseWriter, r *http.Request) {
	chunks, err := h.Runs.Chunks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Journal Unavailable", err.Error())
		return
	}
	if len(chunks) == 0 {
		writeProblem(w, http.StatusNotFound, "Not Found", "no chunks recorded for run")
		return
	}
	writeJSON(w, http.StatusOK, chunks)
}

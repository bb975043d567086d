// Package server exposes the catalog and latest analysis over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/elonfeng/channelpulse/internal/store"
	"github.com/elonfeng/channelpulse/pkg/analytics"
)

// Server provides the read-only HTTP API.
type Server struct {
	store store.Store
	opts  analytics.Options
	port  int
	log   zerolog.Logger
}

// New creates a new HTTP server.
func New(s store.Store, opts analytics.Options, port int, log zerolog.Logger) *Server {
	if port == 0 {
		port = 8080
	}
	return &Server{
		store: s,
		opts:  opts,
		port:  port,
		log:   log,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/videos", s.handleVideos)
	mux.HandleFunc("/api/v1/aggregates", s.handleAggregates)
	mux.HandleFunc("/api/v1/analysis", s.handleAnalysis)
	mux.HandleFunc("/api/v1/runs/latest", s.handleLatestRun)

	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info().Str("addr", addr).Msg("server listening")
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	videos, err := s.store.ListVideos(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  videos,
		"count": len(videos),
	})
}

func (s *Server) handleAggregates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	videos, err := s.store.ListVideos(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(videos) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no videos in catalog"})
		return
	}

	records := analytics.Derive(videos)
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":     analytics.Summarize(records),
		"by_category": analytics.AggregateByCategory(records),
		"by_day":      analytics.AggregateByDay(records),
	})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	videos, err := s.store.ListVideos(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	rep, _, err := analytics.Analyze(videos, s.opts)
	if errors.Is(err, analytics.ErrNoRecords) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no videos in catalog"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// handleLatestRun serves the most recent stored analysis verbatim, so
// clients can read results without triggering a recomputation.
func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	run, err := s.store.LatestRun(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no analysis run stored"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run":     run,
		"results": json.RawMessage(run.ResultsJSON),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

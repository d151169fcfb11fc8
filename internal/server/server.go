// Package server exposes the analyzer and optimizer over HTTP. The core
// stays invocable as a library; this façade only does transport, job
// bookkeeping and artifact serving.
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/greenweb/optimizer/internal/config"
	"github.com/greenweb/optimizer/internal/jobstore"
	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

// Server is the REST API server.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	cfg        config.Config
	jobs       *jobstore.Store

	// Analysis results by project ID.
	analysesMu sync.RWMutex
	analyses   map[string]optimizerun.AnalysisResult
}

// NewServer creates the API server with all routes registered.
func NewServer(cfg config.Config, jobs *jobstore.Store) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		cfg:      cfg,
		jobs:     jobs,
		analyses: make(map[string]optimizerun.AnalysisResult),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /{$}", s.enableCORS(s.handleRoot))
	s.mux.HandleFunc("POST /api/analyze", s.enableCORS(s.handleAnalyze))
	s.mux.HandleFunc("GET /api/analysis/{id}", s.enableCORS(s.handleAnalysisResult))
	s.mux.HandleFunc("POST /api/optimize", s.enableCORS(s.handleOptimize))
	s.mux.HandleFunc("GET /api/optimize/status/{id}", s.enableCORS(s.handleStatus))
	s.mux.HandleFunc("GET /api/optimize/download/{id}", s.enableCORS(s.handleDownload))
	s.mux.HandleFunc("DELETE /api/cleanup/{id}", s.enableCORS(s.handleCleanup))
	s.mux.HandleFunc("OPTIONS /", s.enableCORS(func(http.ResponseWriter, *http.Request) {}))
}

// enableCORS adds CORS headers and short-circuits preflight requests.
func (s *Server) enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

func (s *Server) storeAnalysis(result optimizerun.AnalysisResult) string {
	id := uuid.NewString()
	s.analysesMu.Lock()
	defer s.analysesMu.Unlock()
	s.analyses[id] = result
	return id
}

func (s *Server) getAnalysis(id string) (optimizerun.AnalysisResult, bool) {
	s.analysesMu.RLock()
	defer s.analysesMu.RUnlock()
	result, ok := s.analyses[id]
	return result, ok
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on the configured address. Blocking.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.mux,
	}
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

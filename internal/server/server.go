package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/async"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/jobstore"
)

// Server exposes the RFP pipeline over HTTP: upload a PDF, poll the job,
// download the combined workbook.
type Server struct {
	router    chi.Router
	queue     async.Queue
	jobs      *jobstore.Store
	uploadDir string
	log       *slog.Logger
}

func New(queue async.Queue, jobs *jobstore.Store, uploadDir string, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, err
	}
	s := &Server{
		router:    chi.NewRouter(),
		queue:     queue,
		jobs:      jobs,
		uploadDir: uploadDir,
		log:       logger.With("component", "http"),
	}
	s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(corsMiddleware)
	s.router.Use(s.logRequests)

	s.router.Get("/health", s.handleHealth)
	s.router.Post("/process-rfp", s.handleProcessRFP)
	s.router.Get("/status/{id}", s.handleStatus)
	s.router.Get("/download/{id}", s.handleDownload)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware allows browser clients on any origin; the service carries
// no cookies or credentials.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

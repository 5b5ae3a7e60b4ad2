// Package api exposes the solver over HTTP. It wires one engine per
// supported grid size (each matrix is built once at startup), an optional
// solution cache, and an optional solve-history store behind a chi
// router.
//
// Endpoints:
//   - POST /api/v1/solve    - solve a puzzle
//   - POST /api/v1/validate - check clues for row/column/box conflicts
//   - GET  /api/v1/history  - list stored solve records
//   - GET  /api/v1/history/{id} - fetch one record
//   - GET  /healthz         - liveness check
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mmorckos/sudoku/pkg/cache"
	"github.com/mmorckos/sudoku/pkg/solver"
	"github.com/mmorckos/sudoku/pkg/store"
)

// DefaultCacheTTL bounds how long solved puzzles stay cached.
const DefaultCacheTTL = 24 * time.Hour

// Server holds the shared solving state behind the HTTP handlers.
type Server struct {
	engines map[int]*engineSlot
	cache   cache.Cache
	keyer   cache.Keyer
	store   store.Store
	logger  *log.Logger
	ttl     time.Duration
}

// engineSlot serializes access to one engine. The dancing-links matrix
// is a single mutable resource with a strict single-writer discipline,
// so concurrent requests for the same grid size must queue.
type engineSlot struct {
	mu     sync.Mutex
	engine *solver.Engine
}

// New creates a server. engines maps grid size to a ready engine; c and
// st may be nil to disable caching and history.
func New(engines map[int]*solver.Engine, c cache.Cache, st store.Store, logger *log.Logger) *Server {
	slots := make(map[int]*engineSlot, len(engines))
	for size, e := range engines {
		slots[size] = &engineSlot{engine: e}
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		engines: slots,
		cache:   c,
		keyer:   cache.NewDefaultKeyer(),
		store:   st,
		logger:  logger,
		ttl:     DefaultCacheTTL,
	}
}

// Router assembles the HTTP routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Post("/validate", s.handleValidate)
		r.Get("/history", s.handleHistory)
		r.Get("/history/{id}", s.handleRecord)
	})
	return r
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// requestIDKey is the context key for the per-request ID.
const requestIDKey ctxKey = 0

// requestID attaches a UUID to each request for log correlation and
// echoes it in the X-Request-ID response header.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

// logRequests logs method, path, status, and elapsed time per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond),
		)
	})
}

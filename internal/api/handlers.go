package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mmorckos/sudoku/pkg/cache"
	"github.com/mmorckos/sudoku/pkg/csp"
	"github.com/mmorckos/sudoku/pkg/dlx"
	apperrors "github.com/mmorckos/sudoku/pkg/errors"
	"github.com/mmorckos/sudoku/pkg/grid"
	"github.com/mmorckos/sudoku/pkg/observability"
	"github.com/mmorckos/sudoku/pkg/store"
)

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, appErr *apperrors.Error) {
	writeJSON(w, statusFor(appErr.Code), errorResponse{
		Error: apperrors.UserMessage(appErr),
		Code:  apperrors.GetCode(appErr),
	})
}

// classify wraps domain errors into structured errors with
// machine-readable codes for API clients. Unknown errors are internal
// by definition.
func classify(err error) *apperrors.Error {
	var clueErr *dlx.ClueError
	switch {
	case errors.As(err, &clueErr), errors.Is(err, csp.ErrInvalidClue):
		return apperrors.Wrap(apperrors.ErrCodeInvalidClue, err, "%v", err)
	case errors.Is(err, dlx.ErrUnsolvable), errors.Is(err, csp.ErrUnsolvable):
		return apperrors.Wrap(apperrors.ErrCodeUnsolvable, err, "puzzle has no solution")
	case errors.Is(err, grid.ErrUnsupportedSize):
		return apperrors.Wrap(apperrors.ErrCodeInvalidSize, err, "%v", err)
	case errors.Is(err, grid.ErrBadShape):
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "%v", err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperrors.Wrap(apperrors.ErrCodeTimeout, err, "solve aborted: %v", err)
	default:
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "internal error")
	}
}

// statusFor maps an error code to its HTTP status. Client mistakes are
// 400s; timeouts and internal failures must not masquerade as bad
// requests.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeInternal:
		return http.StatusInternalServerError
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// ---- Solve ----

type solveRequest struct {
	Grid grid.Grid `json:"grid"`
}

type solveResponse struct {
	ID         string         `json:"id,omitempty"`
	Solved     bool           `json:"solved"`
	Grid       grid.Grid      `json:"grid,omitempty"`
	DurationMs int64          `json:"durationMs"`
	Columns    int            `json:"columns,omitempty"`
	Cached     bool           `json:"cached,omitempty"`
	Error      string         `json:"error,omitempty"`
	Code       apperrors.Code `json:"code,omitempty"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid JSON: %v", err))
		return
	}

	size := req.Grid.Size()
	slot, ok := s.engines[size]
	if !ok {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidSize, "unsupported grid size: %d", size))
		return
	}

	key := s.keyer.PuzzleKey(size, slot.engine.Technique(), cache.Hash([]byte(req.Grid.String())))
	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		var solution grid.Grid
		if json.Unmarshal(data, &solution) == nil {
			observability.Cache().OnCacheHit(r.Context(), "puzzle")
			writeJSON(w, http.StatusOK, solveResponse{Solved: true, Grid: solution, Cached: true})
			return
		}
	}
	observability.Cache().OnCacheMiss(r.Context(), "puzzle")

	slot.mu.Lock()
	res, err := slot.engine.Solve(r.Context(), req.Grid)
	slot.mu.Unlock()

	recordID := s.saveRecord(r.Context(), size, slot.engine.Technique(), req.Grid, res.Grid, res.Solved, res.Duration)

	if err != nil {
		appErr := classify(err)
		if apperrors.Is(appErr, apperrors.ErrCodeInternal) {
			s.logger.Error("solve failed", "err", appErr)
		}
		writeJSON(w, statusFor(appErr.Code), solveResponse{
			ID:         recordID,
			Error:      apperrors.UserMessage(appErr),
			Code:       appErr.Code,
			DurationMs: res.Duration.Milliseconds(),
			Columns:    res.Columns,
		})
		return
	}

	if data, merr := json.Marshal(res.Grid); merr == nil {
		if cerr := s.cache.Set(r.Context(), key, data, s.ttl); cerr != nil {
			s.logger.Warn("cache set failed", "err", cerr)
		} else {
			observability.Cache().OnCacheSet(r.Context(), "puzzle", len(data))
		}
	}
	writeJSON(w, http.StatusOK, solveResponse{
		ID:         recordID,
		Solved:     true,
		Grid:       res.Grid,
		DurationMs: res.Duration.Milliseconds(),
		Columns:    res.Columns,
	})
}

// saveRecord persists the solve outcome when a store is configured.
// Failures are logged, never surfaced: history is best-effort.
func (s *Server) saveRecord(ctx context.Context, size int, technique string, input, solution grid.Grid, solved bool, d time.Duration) string {
	if s.store == nil {
		return ""
	}
	rec := &store.Record{
		ID:         uuid.NewString(),
		Size:       size,
		Technique:  technique,
		Input:      input,
		Solution:   solution,
		Solved:     solved,
		DurationMs: d.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		s.logger.Warn("store save failed", "err", err)
		return ""
	}
	return rec.ID
}

// ---- Validate ----

type validateRequest struct {
	Grid grid.Grid `json:"grid"`
}

type validateResponse struct {
	OK        bool        `json:"ok"`
	Conflicts []grid.Cell `json:"conflicts,omitempty"`
	Error     string      `json:"error,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid JSON: %v", err))
		return
	}
	geo, err := grid.GeometryFor(req.Grid.Size())
	if err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidSize, "unsupported grid size: %d", req.Grid.Size()))
		return
	}
	if err := req.Grid.Check(); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "%v", err))
		return
	}
	conflicts := grid.Conflicts(req.Grid, geo)
	writeJSON(w, http.StatusOK, validateResponse{OK: len(conflicts) == 0, Conflicts: conflicts})
}

// ---- History ----

type historyResponse struct {
	Records []store.Meta `json:"records"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "history is not configured"))
		return
	}
	metas, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "listing history: %v", err))
		return
	}
	if metas == nil {
		metas = []store.Meta{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Records: metas})
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "history is not configured"))
		return
	}
	rec, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeNotFound, err, "%v", err))
		return
	}
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "loading record: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ---- Health ----

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

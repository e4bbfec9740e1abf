package dpsserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/udisondev/arkdps/internal/calculator"
	"github.com/udisondev/arkdps/internal/model"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/dps/calculate", s.handleCalculate)
	mux.HandleFunc("POST /api/v1/dps/sweep", s.handleSweep)
	mux.HandleFunc("GET /api/v1/operators", s.handleOperators)
	mux.HandleFunc("GET /api/v1/enemies", s.handleEnemies)
	mux.HandleFunc("GET /api/v1/enemies/{id}", s.handleEnemy)
	mux.HandleFunc("GET /healthz", handleHealth)
	return logRequests(mux)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculator.CalculateRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := s.svc.Calculate(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req calculator.SweepRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := s.svc.Sweep(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOperators(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Operators())
}

func (s *Server) handleEnemies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Enemies())
}

func (s *Server) handleEnemy(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.Enemy(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errBadRequest marks malformed bodies.
var errBadRequest = errors.New("bad request")

// errBodyTooLarge marks bodies above max_body_bytes.
var errBodyTooLarge = errors.New("request body too large")

func (s *Server) decode(w http.ResponseWriter, r *http.Request, out any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return fmt.Errorf("%w: limit %d bytes", errBodyTooLarge, tooLarge.Limit)
		case errors.Is(err, model.ErrInvalidAttackType):
			return err
		default:
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON body", errBadRequest)
	}
	return nil
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusOf maps an error to its HTTP status and machine-readable code.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, calculator.ErrGridTooLarge):
		return http.StatusUnprocessableEntity, "grid_too_large"
	case errors.Is(err, model.ErrLevelIndexOutOfRange):
		return http.StatusUnprocessableEntity, "level_index_out_of_range"
	case errors.Is(err, model.ErrInvalidAttackType):
		return http.StatusUnprocessableEntity, "invalid_attack_type"
	case errors.Is(err, model.ErrInvalidConfiguration):
		return http.StatusUnprocessableEntity, "invalid_configuration"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	msg := err.Error()
	switch {
	case code == "canceled" || code == "deadline_exceeded":
		slog.Debug("request aborted", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = http.StatusText(status)
	case status >= http.StatusInternalServerError:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorBody{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("writing response", "err", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

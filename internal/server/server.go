// Package server implements the /api/logs backend the tracker talks to.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"timekeeper/internal/journal"
	"timekeeper/internal/logging"
	"timekeeper/internal/slot"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// maxBodyBytes bounds POST bodies; an activity is at most 200 characters.
const maxBodyBytes = 16 << 10

// LogRepository is the storage the handlers need.
type LogRepository interface {
	Create(ctx context.Context, activity, slotTime string, at time.Time) (journal.LogEntry, error)
	List(ctx context.Context) ([]journal.LogEntry, error)
}

// Server holds handler dependencies.
type Server struct {
	logs     LogRepository
	validate *validator.Validate
	now      func() time.Time
}

// slotLabelTag names the validation rule used on NewLogRequest.SlotTime.
const slotLabelTag = "slotlabel"

// New creates a Server. now defaults to time.Now when nil.
func New(logs LogRepository, now func() time.Time) (*Server, error) {
	if now == nil {
		now = time.Now
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := registerSlotLabel(v, slotLabelTag); err != nil {
		return nil, fmt.Errorf("failed to register %q validation: %w", slotLabelTag, err)
	}
	return &Server{logs: logs, validate: v, now: now}, nil
}

// registerSlotLabel installs the "H:MM" label check under tag.
func registerSlotLabel(v *validator.Validate, tag string) error {
	return v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, _, err := slot.ParseLabel(fl.Field().String())
		return err == nil
	})
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/logs", func(r chi.Router) {
		r.Get("/", s.handleListLogs)
		r.Post("/", s.handleCreateLog)
	})

	return r
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.logs.List(r.Context())
	if err != nil {
		logging.Get(logging.CategoryServer).Error("list logs failed",
			zap.String("request_id", middleware.GetReqID(r.Context())), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load logs")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	var req journal.NewLogRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && hasRequiredFailure(verrs) {
			writeError(w, http.StatusBadRequest, "Missing data")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	entry, err := s.logs.Create(r.Context(), req.Activity, req.SlotTime, s.now())
	if err != nil {
		logging.Get(logging.CategoryServer).Error("create log failed",
			zap.String("request_id", middleware.GetReqID(r.Context())), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store log")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func hasRequiredFailure(errs validator.ValidationErrors) bool {
	for _, fe := range errs {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Get(logging.CategoryServer).Warn("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// accessLog logs one line per request to the server category.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.Get(logging.CategoryServer).Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

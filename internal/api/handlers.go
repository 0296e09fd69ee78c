// Package api exposes HTTP handlers for the ingestion service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"example.com/ingest/internal/auth"
	"example.com/ingest/internal/coaching"
	"example.com/ingest/internal/ingest"
	"example.com/ingest/internal/persistence/postgres"
)

// BatchProcessor runs one Garmin push batch to completion.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, body []byte) ingest.Result
}

// CoachingClient forwards subjective feedback to the coaching service.
type CoachingClient interface {
	SendSubjectiveParams(ctx context.Context, params coaching.SubjectiveParams) error
}

// FeedbackStore persists subjective feedback on the session's log row.
type FeedbackStore interface {
	UpdateSubjectiveParams(ctx context.Context, params postgres.SubjectiveParams) error
}

// Handler coordinates HTTP requests with the ingestion pipeline.
type Handler struct {
	processor    BatchProcessor
	coaching     CoachingClient
	feedback     FeedbackStore
	authCfg      auth.Config
	maxBodyBytes int64
	logger       *log.Logger
}

// Option configures optional behaviour for the Handler.
type Option func(*Handler)

// WithLogger overrides the logger used for detached-task outcomes.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler builds a Handler.
func NewHandler(processor BatchProcessor, coachingClient CoachingClient, feedback FeedbackStore, authCfg auth.Config, maxBodyBytes int64, opts ...Option) *Handler {
	h := &Handler{
		processor:    processor,
		coaching:     coachingClient,
		feedback:     feedback,
		authCfg:      authCfg,
		maxBodyBytes: maxBodyBytes,
		logger:       log.New(log.Writer(), "[api] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/update/garmin", h.updateGarmin)
	mux.HandleFunc("/subjparams", h.subjParams)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// updateGarmin acknowledges the push immediately and processes the batch in a
// detached task. The caller never waits for, or learns about, per-activity
// outcomes; those surface in logs and metrics only.
func (h *Handler) updateGarmin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to read body")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Processing started"})

	go func() {
		result := h.processor.ProcessBatch(context.Background(), body)
		h.logger.Printf("garmin batch finished: %d %s", result.StatusCode, result.Message)
	}()
}

// SessionID accepts both string and numeric encodings, since clients echo the
// value back from different surfaces.
type SessionID string

// UnmarshalJSON implements json.Unmarshaler.
func (s *SessionID) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*s = SessionID(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return err
	}
	*s = SessionID(asNumber.String())
	return nil
}

// SubjectiveParamsRequest is the payload for POST /subjparams. Scores left
// null are stored as "not reported".
type SubjectiveParamsRequest struct {
	SessionID                SessionID `json:"sessionId"`
	TimestampLocal           int64     `json:"timestampLocal"`
	PerceivedExertion        *float64  `json:"perceivedExertion"`
	PerceivedRecovery        *float64  `json:"perceivedRecovery"`
	PerceivedTrainingSuccess *float64  `json:"perceivedTrainingSuccess"`
}

// Validate ensures request correctness.
func (r SubjectiveParamsRequest) Validate() error {
	if r.SessionID == "" {
		return errors.New("sessionId is required")
	}
	if r.TimestampLocal == 0 {
		return errors.New("timestampLocal is required")
	}
	return nil
}

// subjParams acknowledges immediately, then forwards the feedback to the
// coaching service and attaches it to the log row, each as an independent
// detached task whose failure is only logged.
func (h *Handler) subjParams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req SubjectiveParamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Processing started"})

	token, err := auth.FromAuthorizationHeader(r.Header.Get("Authorization"))
	if err != nil {
		h.logger.Printf("subjparams: %v", err)
		return
	}
	claims, err := auth.Parse(token, h.authCfg)
	if err != nil {
		h.logger.Printf("subjparams: %v", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.Printf("subjparams for user %s: %v", claims.Subject, err)
		return
	}

	userID := claims.Subject
	sessionID := string(req.SessionID)

	go func() {
		params := coaching.SubjectiveParams{
			UserID:                   userID,
			SessionID:                sessionID,
			TimestampLocal:           req.TimestampLocal,
			PerceivedExertion:        scoreValue(req.PerceivedExertion),
			PerceivedRecovery:        scoreValue(req.PerceivedRecovery),
			PerceivedTrainingSuccess: scoreValue(req.PerceivedTrainingSuccess),
		}
		if err := h.coaching.SendSubjectiveParams(context.Background(), params); err != nil {
			h.logger.Printf("subjparams: forwarding to coaching for user %s: %v", userID, err)
			return
		}
		h.logger.Printf("subjparams: forwarded to coaching for user %s session %s", userID, sessionID)
	}()

	go func() {
		params := postgres.SubjectiveParams{
			UserID:                   userID,
			SessionID:                sessionID,
			PerceivedExertion:        req.PerceivedExertion,
			PerceivedRecovery:        req.PerceivedRecovery,
			PerceivedTrainingSuccess: req.PerceivedTrainingSuccess,
		}
		if err := h.feedback.UpdateSubjectiveParams(context.Background(), params); err != nil {
			h.logger.Printf("subjparams: updating log row for user %s: %v", userID, err)
			return
		}
		h.logger.Printf("subjparams: log row updated for user %s session %s", userID, sessionID)
	}()
}

// scoreValue mirrors the stored sentinel for scores the athlete left null.
func scoreValue(score *float64) float64 {
	if score == nil {
		return -0.1
	}
	return *score
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

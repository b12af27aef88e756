package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/abhisek/compass/internal/assessment"
	"github.com/abhisek/compass/internal/evaluation"
	"github.com/abhisek/compass/internal/session"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// maxAnswerBody bounds the answer request body.
const maxAnswerBody = 64 << 10

type answerRequest struct {
	Text string `json:"text"`
}

type evaluationResponse struct {
	Result  *evaluation.Result `json:"result"`
	Summary evaluation.Summary `json:"summary"`
	Message string             `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{Error: &apiError{Code: code, Message: message}}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("encode error response", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, assessment.Questions())
}

func (s *Server) handleListCompetencies(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, assessment.Competencies())
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	s.logger.Info("session created", zap.String("session_id", sess.ID()))
	s.respondJSON(w, http.StatusCreated, sess.Snapshot())
}

// lookup resolves the {id} URL parameter, writing a 404 when unknown.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.Get(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "not_found", "session not found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(chi.URLParam(r, "id")) {
		s.respondError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "session deleted"})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnswerBody)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "too_large", "request body too large")
			return
		}
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := sess.SubmitAnswer(req.Text); err != nil {
		s.respondSessionError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	result, err := sess.RunEvaluation(r.Context())
	if err != nil {
		s.respondSessionError(w, err)
		return
	}

	summary := evaluation.Summarize(result)
	s.respondJSON(w, http.StatusOK, evaluationResponse{
		Result:  result,
		Summary: summary,
		Message: summary.Tier.Message(),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sess.Reset()
	s.respondJSON(w, http.StatusOK, sess.Snapshot())
}

// respondSessionError maps session and evaluation errors to HTTP statuses.
func (s *Server) respondSessionError(w http.ResponseWriter, err error) {
	var (
		validationErr *session.ValidationError
		stateErr      *session.StateError
		configErr     *evaluation.ConfigError
		evalErr       *evaluation.Error
	)

	switch {
	case errors.As(err, &validationErr):
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
	case errors.As(err, &stateErr):
		s.respondError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.As(err, &configErr):
		s.respondError(w, http.StatusServiceUnavailable, "not_configured", err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		s.respondError(w, http.StatusGatewayTimeout, "timeout", err.Error())
	case errors.As(err, &evalErr):
		s.respondError(w, http.StatusBadGateway, "evaluation_failed", err.Error())
	default:
		s.logger.Error("session operation failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

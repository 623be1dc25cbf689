package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"sonix-engine/internal/domain"
	"sonix-engine/internal/domain/model"
)

type sessionCreateRequest struct {
	UserID string `json:"userId"`
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var req sessionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.UserID) == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := s.auth.Mint(w, req.UserID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to mint session token")
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	response := struct {
		Token string `json:"token"`
	}{Token: token}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

type contextUpdateRequest struct {
	Messages     []model.Message        `json:"messages"`
	Preferences  *model.UserPreferences `json:"preferences,omitempty"`
	SystemPrompt string                 `json:"systemPrompt,omitempty"`
}

func (s *Server) handleContextUpdate(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req contextUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := s.responses.UpdateContext(r.Context(), conversationID, req.Messages, req.Preferences, req.SystemPrompt)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error().Err(err).Str("conversation_id", conversationID).Msg("context update failed")
		http.Error(w, "Failed to update context", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleContextGet(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	conv, err := s.responses.GetContext(r.Context(), conversationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error().Err(err).Str("conversation_id", conversationID).Msg("context lookup failed")
		http.Error(w, "Failed to get context", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(conv)
}

type generateRequest struct {
	Message string `json:"message"`
	IsVoice bool   `json:"isVoice"`
}

// handleGenerate runs the engine. The pipeline is total, so this always
// answers 200 with a response record (possibly the fallback).
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	resp := s.responses.GenerateResponse(r.Context(), conversationID, req.Message, req.IsVoice)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	last := r.URL.Query().Get("last")

	response := struct {
		Suggestions []string `json:"suggestions"`
	}{Suggestions: s.suggestions.Suggestions(conversationID, last)}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

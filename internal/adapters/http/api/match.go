// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tribe-app/matchd/internal/domain/model"
)

// matchRequest is the POST /match payload.
type matchRequest struct {
	UserID          string `json:"user_id"`
	Type            string `json:"type"`
	TopK            int    `json:"top_k,omitempty"`
	UniversityAware bool   `json:"university_aware,omitempty"`
}

func (m matchRequest) validate() error {
	if m.UserID == "" {
		return fmt.Errorf("user_id: %w", ErrMissingField)
	}
	if !model.CollectionType(m.Type).Valid() {
		return fmt.Errorf("type %q: %w", m.Type, ErrUnknownType)
	}
	return nil
}

// MatchHandler handles quiz-profile match requests.
type MatchHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps Dependencies, maxLimit int) *MatchHandler {
	return &MatchHandler{deps: deps, maxLimit: maxLimit}
}

// HandleMatch handles POST /match requests.
func (h *MatchHandler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	collection := model.CollectionType(req.Type)
	topK := clampLimit(req.TopK, h.maxLimit)

	var results []model.MatchResult
	var err error
	if req.UniversityAware {
		results, err = h.deps.MatchProfileUniversity(r.Context(), req.UserID, collection, topK)
	} else {
		results, err = h.deps.MatchProfile(r.Context(), req.UserID, collection, topK)
	}
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

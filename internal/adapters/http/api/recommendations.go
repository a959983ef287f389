// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"

	"github.com/tribe-app/matchd/internal/domain/model"
)

// RecommendationsHandler handles personalized recommendation requests.
type RecommendationsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps Dependencies, maxLimit int) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleRecommendations handles GET /recommendations?user_id=&type=&limit=
// requests.
func (h *RecommendationsHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("user_id: %w", ErrMissingField))
		return
	}
	collection := model.CollectionType(r.URL.Query().Get("type"))
	if !collection.Valid() {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("type %q: %w", collection, ErrUnknownType))
		return
	}
	limit, err := parseLimit(r.URL.Query().Get("limit"), h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	results, err := h.deps.Personalized(r.Context(), userID, collection, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/tribe-app/matchd/internal/domain/model"
)

// SimilarHandler handles item-based recommendation requests.
type SimilarHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewSimilarHandler creates a new similar-items handler.
func NewSimilarHandler(deps Dependencies, maxLimit int) *SimilarHandler {
	return &SimilarHandler{deps: deps, maxLimit: maxLimit}
}

// HandleSimilar handles GET /similar?id=&type=&limit= requests.
func (h *SimilarHandler) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("id: %w", ErrMissingField))
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

	results, err := h.deps.SimilarItemsByID(r.Context(), id, collection, limit)
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

// parseLimit parses an optional limit query parameter and enforces the
// configured maximum.
func parseLimit(s string, maxLimit int) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("limit %q: %w", s, ErrBadRequest)
	}
	if n > maxLimit {
		return 0, fmt.Errorf("limit %d > %d: %w", n, maxLimit, ErrLimitExceeded)
	}
	return n, nil
}

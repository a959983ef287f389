// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tribe-app/matchd/internal/domain/dupes"
	"github.com/tribe-app/matchd/internal/domain/model"
	"github.com/tribe-app/matchd/pkg/metrics"
)

// DuplicatesHandler flags suspected duplicate entities before publishing.
type DuplicatesHandler struct {
	deps Dependencies
}

// NewDuplicatesHandler creates a new duplicates handler.
func NewDuplicatesHandler(deps Dependencies) *DuplicatesHandler {
	return &DuplicatesHandler{deps: deps}
}

// duplicatesResponse is the POST /duplicates/check response body.
type duplicatesResponse struct {
	Duplicates []dupes.Match `json:"duplicates"`
}

// HandleCheck handles POST /duplicates/check requests. The body is the
// candidate entity; the response lists suspected duplicates already in
// its collection.
func (h *DuplicatesHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var candidate model.Entity
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if !candidate.Collection.Valid() {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("collection %q: %w", candidate.Collection, ErrUnknownType))
		return
	}

	metrics.RecordDuplicateCheck()
	matches, err := h.deps.CheckDuplicates(r.Context(), candidate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if matches == nil {
		matches = []dupes.Match{}
	}
	writeJSON(w, http.StatusOK, duplicatesResponse{Duplicates: matches})
}

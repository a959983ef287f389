// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tribe-app/matchd/internal/adapters/catalog"
	"github.com/tribe-app/matchd/internal/domain/dupes"
	"github.com/tribe-app/matchd/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// MatchProfile runs the quiz-derived matching path.
	MatchProfile(ctx context.Context, userID string, collection model.CollectionType, topK int) ([]model.MatchResult, error)

	// MatchProfileUniversity is the university-aware variant.
	MatchProfileUniversity(ctx context.Context, userID string, collection model.CollectionType, topK int) ([]model.MatchResult, error)

	// SimilarItemsByID recommends entities similar to a stored item.
	SimilarItemsByID(ctx context.Context, id string, collection model.CollectionType, topK int) ([]model.MatchResult, error)

	// Personalized recommends entities from the user's interaction history.
	Personalized(ctx context.Context, userID string, collection model.CollectionType, topK int) ([]model.MatchResult, error)

	// CheckDuplicates reports suspected duplicates of a candidate entity.
	CheckDuplicates(ctx context.Context, candidate model.Entity) ([]dupes.Match, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	matchHandler      *MatchHandler
	similarHandler    *SimilarHandler
	recsHandler       *RecommendationsHandler
	duplicatesHandler *DuplicatesHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps
// caller-supplied top-K values.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		matchHandler:      NewMatchHandler(deps, maxLimit),
		similarHandler:    NewSimilarHandler(deps, maxLimit),
		recsHandler:       NewRecommendationsHandler(deps, maxLimit),
		duplicatesHandler: NewDuplicatesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/match", MetricsMiddleware(s.matchHandler.HandleMatch, "match"))
	mux.HandleFunc("/similar", MetricsMiddleware(s.similarHandler.HandleSimilar, "similar"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recsHandler.HandleRecommendations, "recommendations"))
	mux.HandleFunc("/duplicates/check", MetricsMiddleware(s.duplicatesHandler.HandleCheck, "duplicates"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound lets handlers translate upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, catalog.ErrProfileNotFound) ||
		errors.Is(err, catalog.ErrEntityNotFound)
}

// clampLimit caps a caller-supplied top-K. Zero or negative means "use
// the engine default" and passes through.
func clampLimit(limit, maxLimit int) int {
	if limit <= 0 {
		return 0
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

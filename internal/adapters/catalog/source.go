// Package catalog defines the read-only data-access contract the engine
// pulls candidates through, plus an in-memory implementation.
package catalog

import (
	"context"
	"time"

	"github.com/tribe-app/matchd/internal/domain/model"
)

// Filter narrows a candidate fetch. The zero value applies no filtering.
type Filter struct {
	// Now excludes entities whose deadline/date has passed. A zero time
	// disables the expiry check.
	Now time.Time

	// ExcludeID drops a single entity, used by item-based mode so an item
	// never recommends itself.
	ExcludeID string

	// University keeps only entities belonging to the given university.
	// Empty keeps all.
	University string

	// Limit caps the fetched pool size; 0 or negative means unlimited.
	Limit int
}

// Source is the narrow interface the engine reads through. Implementations
// own persistence; the engine never writes.
type Source interface {
	// FetchCandidates returns the filtered candidate pool for a
	// collection, in stable catalog order.
	FetchCandidates(ctx context.Context, collection model.CollectionType, f Filter) ([]model.Entity, error)

	// FetchUserHistory returns the user's applications and saved items.
	// Users without history return an empty history, not an error.
	FetchUserHistory(ctx context.Context, userID string) (model.UserHistory, error)

	// FetchProfile returns the user's quiz-derived profile.
	// Returns ErrProfileNotFound for unknown users.
	FetchProfile(ctx context.Context, userID string) (model.Profile, error)
}

package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/tribe-app/matchd/internal/domain/model"
	"github.com/tribe-app/matchd/pkg/metrics"
)

// MemStore is an in-memory Source. Entities keep insertion order per
// collection so ranked ties stay deterministic across calls. It exists for
// the demo server, the smoke harness, and tests; production deployments
// put a Firestore- or Postgres-backed Source behind the same interface.
type MemStore struct {
	mu        sync.RWMutex
	entities  map[model.CollectionType][]model.Entity
	index     map[string]model.Entity
	profiles  map[string]model.Profile
	histories map[string]model.UserHistory
}

// NewMemStore creates an empty in-memory catalog.
func NewMemStore() *MemStore {
	return &MemStore{
		entities:  make(map[model.CollectionType][]model.Entity),
		index:     make(map[string]model.Entity),
		profiles:  make(map[string]model.Profile),
		histories: make(map[string]model.UserHistory),
	}
}

// PutEntity inserts or replaces an entity. Replacement keeps the original
// catalog position.
func (s *MemStore) PutEntity(ctx context.Context, e model.Entity) error {
	if !e.Collection.Valid() {
		return fmt.Errorf("put entity %s: %w", e.ID, ErrUnknownType)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[e.ID]; exists {
		list := s.entities[e.Collection]
		for i := range list {
			if list[i].ID == e.ID {
				list[i] = e
				break
			}
		}
	} else {
		s.entities[e.Collection] = append(s.entities[e.Collection], e)
	}
	s.index[e.ID] = e
	metrics.UpdateCatalogSize(string(e.Collection), len(s.entities[e.Collection]))
	return nil
}

// GetEntity returns an entity by id.
func (s *MemStore) GetEntity(ctx context.Context, id string) (model.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.index[id]
	if !ok {
		return model.Entity{}, fmt.Errorf("get entity %s: %w", id, ErrEntityNotFound)
	}
	return e, nil
}

// PutProfile stores a user's quiz profile.
func (s *MemStore) PutProfile(ctx context.Context, p model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p
}

// RecordApplication appends an applied-to entity to the user's history.
func (s *MemStore) RecordApplication(ctx context.Context, userID string, e model.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.histories[userID]
	h.UserID = userID
	h.Applications = append(h.Applications, e)
	s.histories[userID] = h
}

// RecordSavedItem appends a saved entity to the user's history.
func (s *MemStore) RecordSavedItem(ctx context.Context, userID string, e model.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.histories[userID]
	h.UserID = userID
	h.SavedItems = append(h.SavedItems, e)
	s.histories[userID] = h
}

// FetchCandidates implements Source.
func (s *MemStore) FetchCandidates(ctx context.Context, collection model.CollectionType, f Filter) ([]model.Entity, error) {
	if !collection.Valid() {
		return nil, fmt.Errorf("fetch candidates %q: %w", collection, ErrUnknownType)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Entity, 0, len(s.entities[collection]))
	for _, e := range s.entities[collection] {
		if e.ID == f.ExcludeID {
			continue
		}
		if !f.Now.IsZero() && e.Expired(f.Now) {
			continue
		}
		if f.University != "" && e.University != f.University {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// FetchUserHistory implements Source. Unknown users get an empty history.
func (s *MemStore) FetchUserHistory(ctx context.Context, userID string) (model.UserHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.histories[userID]
	if !ok {
		return model.UserHistory{UserID: userID}, nil
	}
	return h, nil
}

// FetchProfile implements Source.
func (s *MemStore) FetchProfile(ctx context.Context, userID string) (model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return model.Profile{}, fmt.Errorf("fetch profile %s: %w", userID, ErrProfileNotFound)
	}
	return p, nil
}

// Count returns the number of entities in a collection.
func (s *MemStore) Count(ctx context.Context, collection model.CollectionType) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities[collection])
}

// All returns every entity in a collection in catalog order.
func (s *MemStore) All(ctx context.Context, collection model.CollectionType) []model.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Entity, len(s.entities[collection]))
	copy(out, s.entities[collection])
	return out
}

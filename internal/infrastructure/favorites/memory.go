package favorites

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cooktimer/backend/internal/domain"
)

// Compile-time interface check.
var _ domain.FavoriteRepository = (*MemoryStore)(nil)

// MemoryStore keeps favorites in process memory. Contents are lost on restart.
type MemoryStore struct {
	mu        sync.RWMutex
	favorites map[string]domain.Favorite
}

// NewMemoryStore creates an empty in-memory favorite store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{favorites: make(map[string]domain.Favorite)}
}

func (m *MemoryStore) Save(ctx context.Context, favorite *domain.Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favorites[favorite.ID] = clone(*favorite)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*domain.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.favorites[id]
	if !ok {
		return nil, fmt.Errorf("%w: favorite %q", domain.ErrNotFound, id)
	}
	f = clone(f)
	return &f, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]domain.Favorite, error) {
	m.mu.RLock()
	result := make([]domain.Favorite, 0, len(m.favorites))
	for _, f := range m.favorites {
		result = append(result, clone(f))
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.favorites[id]; !ok {
		return fmt.Errorf("%w: favorite %q", domain.ErrNotFound, id)
	}
	delete(m.favorites, id)
	return nil
}

func (m *MemoryStore) RecordUse(ctx context.Context, id string, at time.Time) (*domain.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.favorites[id]
	if !ok {
		return nil, fmt.Errorf("%w: favorite %q", domain.ErrNotFound, id)
	}
	f.UsageCount++
	f.LastUsed = &at
	m.favorites[id] = f

	f = clone(f)
	return &f, nil
}

// clone copies the LastUsed pointer so callers never share it with the store.
func clone(f domain.Favorite) domain.Favorite {
	if f.LastUsed != nil {
		t := *f.LastUsed
		f.LastUsed = &t
	}
	return f
}

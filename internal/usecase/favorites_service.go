package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cooktimer/backend/internal/domain"
)

// FavoriteUse is the result of applying a saved favorite
type FavoriteUse struct {
	Favorite *domain.Favorite        `json:"favorite"`
	Estimate *domain.CookingEstimate `json:"estimate"`
}

// FavoritesService manages saved cooking parameter sets
type FavoritesService struct {
	store     domain.FavoriteRepository
	estimates estimator
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewFavoritesService creates a new favorites service with dependencies
func NewFavoritesService(store domain.FavoriteRepository, estimates estimator, log *zap.Logger) *FavoritesService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FavoritesService{
		store:     store,
		estimates: estimates,
		log:       log.Named("favorites"),
		now:       time.Now,
		newID:     func() string { return ulid.Make().String() },
	}
}

// Save stores a new favorite after checking that its parameters produce an estimate
func (s *FavoritesService) Save(ctx context.Context, request *domain.SaveFavoriteRequest) (*domain.Favorite, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: request is required", domain.ErrInvalidInput)
	}
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	favorite := &domain.Favorite{
		Name:         name,
		FoodID:       request.FoodID,
		TextureID:    request.TextureID,
		MethodID:     request.MethodID,
		Thickness:    request.Thickness,
		StartingTemp: request.StartingTemp,
	}
	if _, err := s.estimates.Estimate(ctx, favorite.EstimateRequest()); err != nil {
		return nil, err
	}

	favorite.ID = s.newID()
	favorite.CreatedAt = s.now().UTC()
	if err := s.store.Save(ctx, favorite); err != nil {
		return nil, err
	}

	s.log.Info("favorite saved", zap.String("id", favorite.ID), zap.String("food", favorite.FoodID))
	return favorite, nil
}

// List returns favorites matching query, ordered by sortBy. An empty sortBy
// orders by most recent use.
func (s *FavoritesService) List(ctx context.Context, sortBy domain.FavoriteSort, query string) ([]domain.Favorite, error) {
	if sortBy == "" {
		sortBy = domain.FavoriteSortRecent
	}
	less, ok := favoriteOrders[sortBy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidInput, sortBy)
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	result := make([]domain.Favorite, 0, len(all))
	for _, f := range all {
		if query == "" ||
			strings.Contains(strings.ToLower(f.Name), query) ||
			strings.Contains(strings.ToLower(f.FoodID), query) {
			result = append(result, f)
		}
	}

	sort.SliceStable(result, func(i, j int) bool { return less(&result[i], &result[j]) })
	return result, nil
}

// Delete removes a favorite
func (s *FavoritesService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Use returns a fresh estimate for the favorite and records the use.
// A favorite that no longer estimates is not counted as used.
func (s *FavoritesService) Use(ctx context.Context, id string) (*FavoriteUse, error) {
	favorite, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	estimate, err := s.estimates.Estimate(ctx, favorite.EstimateRequest())
	if err != nil {
		return nil, err
	}
	favorite, err = s.store.RecordUse(ctx, id, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return &FavoriteUse{Favorite: favorite, Estimate: estimate}, nil
}

var favoriteOrders = map[domain.FavoriteSort]func(a, b *domain.Favorite) bool{
	domain.FavoriteSortName: func(a, b *domain.Favorite) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	},
	domain.FavoriteSortRecent: func(a, b *domain.Favorite) bool {
		ta, tb := lastActivity(a), lastActivity(b)
		return ta.After(tb)
	},
	domain.FavoriteSortPopular: func(a, b *domain.Favorite) bool {
		if a.UsageCount != b.UsageCount {
			return a.UsageCount > b.UsageCount
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	},
}

// lastActivity is the last use, or creation for favorites never used
func lastActivity(f *domain.Favorite) time.Time {
	if f.LastUsed != nil {
		return *f.LastUsed
	}
	return f.CreatedAt
}

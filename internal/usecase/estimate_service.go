package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cooktimer/backend/internal/domain"
)

// EstimateServiceConfig holds configuration for the estimate service
type EstimateServiceConfig struct {
	CacheTTL time.Duration
}

// EstimateService resolves catalog records and runs the estimation engine,
// caching the results
type EstimateService struct {
	catalog  domain.CatalogRepository
	cache    domain.CacheRepository
	log      *zap.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

// NewEstimateService creates a new estimate service with dependencies.
// cache may be nil to disable caching.
func NewEstimateService(
	catalog domain.CatalogRepository,
	cache domain.CacheRepository,
	log *zap.Logger,
	config EstimateServiceConfig,
) *EstimateService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &EstimateService{
		catalog:  catalog,
		cache:    cache,
		log:      log.Named("estimate"),
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Estimate computes the cooking time and safety verdict for a request.
// Flow: validate -> check cache -> resolve catalog -> compute -> adjust -> cache -> return
func (s *EstimateService) Estimate(ctx context.Context, request *domain.EstimateRequest) (*domain.CookingEstimate, error) {
	if err := validateEstimateRequest(request); err != nil {
		return nil, err
	}

	cacheKey := generateCacheKey(request)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		cached.Source = "Cache"
		return cached, nil
	}

	food, err := s.catalog.GetFood(ctx, request.FoodID)
	if err != nil {
		return nil, err
	}
	texture, err := s.catalog.GetTexture(ctx, request.FoodID, request.TextureID)
	if err != nil {
		return nil, err
	}
	method, err := s.catalog.GetMethod(ctx, request.MethodID)
	if err != nil {
		return nil, err
	}

	baseSeconds, err := ComputeCookingTime(food, texture, method, request.Thickness, request.StartingTemp)
	if err != nil {
		return nil, err
	}

	seconds, err := applyAdjustments(food, baseSeconds, request)
	if err != nil {
		return nil, err
	}

	estimate := &domain.CookingEstimate{
		FoodID:             food.ID,
		TextureID:          texture.ID,
		MethodID:           method.ID,
		Thickness:          request.Thickness,
		StartingTemp:       request.StartingTemp,
		BaseSeconds:        baseSeconds,
		Seconds:            seconds,
		Formatted:          FormatDuration(seconds),
		Safe:               IsFoodSafe(food, seconds, method),
		MinimumSafeSeconds: food.MinimumSafeSeconds,
		Source:             "Engine",
		ComputedAt:         s.now(),
	}
	if food.SafetyTemp != nil {
		f := *food.SafetyTemp
		c := FahrenheitToCelsius(f)
		estimate.SafetyTempF = &f
		estimate.SafetyTempC = &c
	}

	if !estimate.Safe {
		s.log.Warn("estimate below food safety minimum",
			zap.String("food", food.ID),
			zap.Int("seconds", seconds),
			zap.Int("minimum", food.MinimumSafeSeconds))
	}

	if err := s.setInCache(ctx, cacheKey, estimate); err != nil {
		s.log.Warn("failed to cache estimate", zap.String("key", cacheKey), zap.Error(err))
	}

	return estimate, nil
}

// CheckSafety judges an arbitrary duration against a food's safety minimum
func (s *EstimateService) CheckSafety(ctx context.Context, foodID, methodID string, seconds int) (*domain.SafetyVerdict, error) {
	if seconds < 0 {
		return nil, fmt.Errorf("%w: seconds must not be negative", domain.ErrInvalidInput)
	}

	food, err := s.catalog.GetFood(ctx, foodID)
	if err != nil {
		return nil, err
	}

	var method *domain.CookingMethod
	if methodID != "" {
		if method, err = s.catalog.GetMethod(ctx, methodID); err != nil {
			return nil, err
		}
	}

	return &domain.SafetyVerdict{
		FoodID:             food.ID,
		Seconds:            seconds,
		Safe:               IsFoodSafe(food, seconds, method),
		MinimumSafeSeconds: food.MinimumSafeSeconds,
	}, nil
}

// validateEstimateRequest rejects malformed requests before any lookup
func validateEstimateRequest(request *domain.EstimateRequest) error {
	if request == nil {
		return fmt.Errorf("%w: request is required", domain.ErrInvalidInput)
	}
	if request.FoodID == "" || request.TextureID == "" || request.MethodID == "" {
		return fmt.Errorf("%w: foodId, textureId and methodId are required", domain.ErrInvalidInput)
	}
	if request.Thickness < domain.MinThickness || request.Thickness > domain.MaxThickness {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidThickness, request.Thickness)
	}
	if !request.StartingTemp.Valid() {
		return fmt.Errorf("%w: got %q", domain.ErrInvalidStartingTemp, request.StartingTemp)
	}
	if (request.BaseServings == 0) != (request.TargetServings == 0) {
		return fmt.Errorf("%w: baseServings and targetServings must be set together", domain.ErrInvalidInput)
	}
	return nil
}

// applyAdjustments applies the egg size adjustment, then servings scaling
func applyAdjustments(food *domain.Food, seconds int, request *domain.EstimateRequest) (int, error) {
	if request.EggSize != "" {
		if food.ID != domain.EggsFoodID {
			return 0, fmt.Errorf("%w: egg size only applies to eggs", domain.ErrInvalidInput)
		}
		adj, err := EggSizeAdjustment(request.EggSize)
		if err != nil {
			return 0, err
		}
		seconds += adj
	}

	if request.TargetServings > 0 {
		scaled, err := ScaleForServings(seconds, request.BaseServings, request.TargetServings)
		if err != nil {
			return 0, err
		}
		seconds = scaled
	}

	return seconds, nil
}

// generateCacheKey creates a normalized cache key from an estimate request.
// Format: "estimate:{food}:{texture}:{method}:{thickness}:{temp}:{egg}:{base}/{target}"
func generateCacheKey(request *domain.EstimateRequest) string {
	return fmt.Sprintf("estimate:%s:%s:%s:%d:%s:%s:%d/%d",
		normalizeKeyPart(request.FoodID),
		normalizeKeyPart(request.TextureID),
		normalizeKeyPart(request.MethodID),
		request.Thickness,
		request.StartingTemp,
		request.EggSize,
		request.BaseServings,
		request.TargetServings,
	)
}

func normalizeKeyPart(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// getFromCache retrieves an estimate from cache
func (s *EstimateService) getFromCache(ctx context.Context, key string) (*domain.CookingEstimate, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case *domain.CookingEstimate:
		copied := *v
		return &copied, nil
	case json.RawMessage:
		var estimate domain.CookingEstimate
		if err := json.Unmarshal(v, &estimate); err != nil {
			return nil, domain.ErrCacheMiss
		}
		return &estimate, nil
	default:
		return nil, domain.ErrCacheMiss
	}
}

// setInCache stores an estimate in cache
func (s *EstimateService) setInCache(ctx context.Context, key string, estimate *domain.CookingEstimate) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, key, estimate, s.cacheTTL)
}

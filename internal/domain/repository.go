package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogRepository provides read-only access to foods, textures and cooking methods
type CatalogRepository interface {
	ListFoods(ctx context.Context, category string) ([]Food, error)
	SearchFoods(ctx context.Context, query string) ([]Food, error)
	GetFood(ctx context.Context, id string) (*Food, error)
	ListTextures(ctx context.Context, foodID string) ([]Texture, error)
	GetTexture(ctx context.Context, foodID, textureID string) (*Texture, error)
	ListMethods(ctx context.Context) ([]CookingMethod, error)
	GetMethod(ctx context.Context, id string) (*CookingMethod, error)
}

// FavoriteRepository defines the interface for favorite persistence
type FavoriteRepository interface {
	Save(ctx context.Context, favorite *Favorite) error
	Get(ctx context.Context, id string) (*Favorite, error)
	List(ctx context.Context) ([]Favorite, error)
	Delete(ctx context.Context, id string) error
	RecordUse(ctx context.Context, id string, at time.Time) (*Favorite, error)
}

// Notifier delivers timer messages to whoever is listening.
type Notifier interface {
	Notify(ctx context.Context, msg string) error
	NotifyUrgent(ctx context.Context, msg string) error
}

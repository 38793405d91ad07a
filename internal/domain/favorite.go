package domain

import "time"

// Favorite is a saved set of cooking parameters
type Favorite struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	FoodID       string       `json:"foodId"`
	TextureID    string       `json:"textureId"`
	MethodID     string       `json:"methodId"`
	Thickness    int          `json:"thickness"`
	StartingTemp StartingTemp `json:"startingTemp"`
	CreatedAt    time.Time    `json:"createdAt"`
	UsageCount   int          `json:"usageCount"`
	LastUsed     *time.Time   `json:"lastUsed,omitempty"`
}

// EstimateRequest returns the estimation request stored by the favorite.
func (f *Favorite) EstimateRequest() *EstimateRequest {
	return &EstimateRequest{
		FoodID:       f.FoodID,
		TextureID:    f.TextureID,
		MethodID:     f.MethodID,
		Thickness:    f.Thickness,
		StartingTemp: f.StartingTemp,
	}
}

// SaveFavoriteRequest represents a request to save a favorite
type SaveFavoriteRequest struct {
	Name         string       `json:"name" binding:"required"`
	FoodID       string       `json:"foodId" binding:"required"`
	TextureID    string       `json:"textureId" binding:"required"`
	MethodID     string       `json:"methodId" binding:"required"`
	Thickness    int          `json:"thickness" binding:"required"`
	StartingTemp StartingTemp `json:"startingTemp" binding:"required"`
}

// FavoriteSort controls favorite list ordering
type FavoriteSort string

const (
	FavoriteSortName    FavoriteSort = "name"
	FavoriteSortRecent  FavoriteSort = "recent"
	FavoriteSortPopular FavoriteSort = "popular"
)

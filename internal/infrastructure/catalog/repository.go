// Package catalog provides the immutable food, texture and cooking method
// catalog. It is loaded and validated once at startup and is safe for
// concurrent reads without locking.
package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cooktimer/backend/internal/domain"
)

// Package-level compiled regex patterns for search normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// Repository is an in-memory domain.CatalogRepository
type Repository struct {
	foods       []domain.Food
	foodIndex   map[string]int
	textures    map[string][]domain.Texture
	methods     []domain.CookingMethod
	methodIndex map[string]int
}

func newRepository(doc document) *Repository {
	r := &Repository{
		foods:       doc.Foods,
		foodIndex:   make(map[string]int, len(doc.Foods)),
		textures:    doc.Textures,
		methods:     doc.Methods,
		methodIndex: make(map[string]int, len(doc.Methods)),
	}
	if r.textures == nil {
		r.textures = map[string][]domain.Texture{}
	}
	for i, f := range r.foods {
		r.foodIndex[f.ID] = i
	}
	for i, m := range r.methods {
		r.methodIndex[m.ID] = i
	}
	return r
}

// ListFoods returns all foods in catalog order, optionally filtered by category
func (r *Repository) ListFoods(ctx context.Context, category string) ([]domain.Food, error) {
	category = strings.ToLower(strings.TrimSpace(category))

	result := make([]domain.Food, 0, len(r.foods))
	for _, f := range r.foods {
		if category != "" && strings.ToLower(f.Category) != category {
			continue
		}
		result = append(result, f)
	}
	return result, nil
}

// SearchFoods returns foods whose name or category contains the normalized
// query. When nothing contains it, names one typo away are returned instead.
func (r *Repository) SearchFoods(ctx context.Context, query string) ([]domain.Food, error) {
	q := normalize(query)
	if q == "" {
		return r.ListFoods(ctx, "")
	}

	var result []domain.Food
	for _, f := range r.foods {
		if strings.Contains(normalize(f.Name), q) || strings.Contains(normalize(f.Category), q) {
			result = append(result, f)
		}
	}
	if len(result) > 0 {
		return result, nil
	}

	for _, f := range r.foods {
		if fuzzyNameMatch(q, normalize(f.Name)) {
			result = append(result, f)
		}
	}
	return result, nil
}

// GetFood returns a copy of the food with the given id
func (r *Repository) GetFood(ctx context.Context, id string) (*domain.Food, error) {
	i, ok := r.foodIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: food %q", domain.ErrNotFound, id)
	}
	food := r.foods[i]
	return &food, nil
}

// ListTextures returns the textures available for a food. A known food
// without textures yields an empty list.
func (r *Repository) ListTextures(ctx context.Context, foodID string) ([]domain.Texture, error) {
	if _, ok := r.foodIndex[foodID]; !ok {
		return nil, fmt.Errorf("%w: food %q", domain.ErrNotFound, foodID)
	}
	textures := r.textures[foodID]
	result := make([]domain.Texture, len(textures))
	copy(result, textures)
	return result, nil
}

// GetTexture returns a single texture of a food
func (r *Repository) GetTexture(ctx context.Context, foodID, textureID string) (*domain.Texture, error) {
	textures, err := r.ListTextures(ctx, foodID)
	if err != nil {
		return nil, err
	}
	for i := range textures {
		if textures[i].ID == textureID {
			return &textures[i], nil
		}
	}
	return nil, fmt.Errorf("%w: texture %q for food %q", domain.ErrNotFound, textureID, foodID)
}

// ListMethods returns all cooking methods in catalog order
func (r *Repository) ListMethods(ctx context.Context) ([]domain.CookingMethod, error) {
	result := make([]domain.CookingMethod, len(r.methods))
	copy(result, r.methods)
	return result, nil
}

// GetMethod returns the cooking method with the given id
func (r *Repository) GetMethod(ctx context.Context, id string) (*domain.CookingMethod, error) {
	i, ok := r.methodIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: cooking method %q", domain.ErrNotFound, id)
	}
	method := r.methods[i]
	return &method, nil
}

// Counts returns the number of foods, textures and methods (for startup logging)
func (r *Repository) Counts() (foods, textures, methods int) {
	for _, ts := range r.textures {
		textures += len(ts)
	}
	return len(r.foods), textures, len(r.methods)
}

// normalize lowercases, strips punctuation and collapses whitespace
func normalize(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

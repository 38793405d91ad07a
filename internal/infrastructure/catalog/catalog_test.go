package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cooktimer/backend/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	repo, err := Default()
	require.NoError(t, err)

	foods, textures, methods := repo.Counts()
	assert.Equal(t, 14, foods)
	assert.Equal(t, 25, textures)
	assert.Equal(t, 7, methods)
}

func TestDefaultCatalog_SafetyData(t *testing.T) {
	repo, err := Default()
	require.NoError(t, err)
	ctx := context.Background()

	chicken, err := repo.GetFood(ctx, "chicken")
	require.NoError(t, err)
	require.NotNil(t, chicken.SafetyTemp)
	assert.Equal(t, 165, *chicken.SafetyTemp)
	assert.Equal(t, 1500, chicken.BaseTime)
	assert.Equal(t, 1200, chicken.MinimumSafeSeconds)
	assert.True(t, chicken.HighRisk())

	eggs, err := repo.GetFood(ctx, "eggs")
	require.NoError(t, err)
	assert.Equal(t, 360, eggs.MinimumSafeSeconds)
	assert.False(t, eggs.HighRisk())

	pasta, err := repo.GetFood(ctx, "pasta")
	require.NoError(t, err)
	assert.Nil(t, pasta.SafetyTemp)
	assert.Zero(t, pasta.MinimumSafeSeconds)

	duck, err := repo.GetFood(ctx, "duck")
	require.NoError(t, err)
	assert.True(t, duck.Premium)
	assert.True(t, duck.HighRisk())
}

func TestRepository_Lookups(t *testing.T) {
	repo, err := Default()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("get texture", func(t *testing.T) {
		texture, err := repo.GetTexture(ctx, "eggs", "jammy")
		require.NoError(t, err)
		assert.Equal(t, 1.0, texture.Multiplier)
	})

	t.Run("same texture id on different foods", func(t *testing.T) {
		pasta, err := repo.GetTexture(ctx, "pasta", "well-done")
		require.NoError(t, err)
		beef, err := repo.GetTexture(ctx, "beef", "well-done")
		require.NoError(t, err)
		assert.Equal(t, 1.25, pasta.Multiplier)
		assert.Equal(t, 1.3, beef.Multiplier)
	})

	t.Run("food without textures", func(t *testing.T) {
		textures, err := repo.ListTextures(ctx, "lobster")
		require.NoError(t, err)
		assert.Empty(t, textures)
	})

	t.Run("unknown food", func(t *testing.T) {
		_, err := repo.GetFood(ctx, "tofu")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		_, err = repo.ListTextures(ctx, "tofu")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("unknown texture", func(t *testing.T) {
		_, err := repo.GetTexture(ctx, "eggs", "scrambled")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("methods", func(t *testing.T) {
		methods, err := repo.ListMethods(ctx)
		require.NoError(t, err)
		require.Len(t, methods, 7)
		assert.Equal(t, "boiling", methods[0].ID)

		m, err := repo.GetMethod(ctx, "grilling")
		require.NoError(t, err)
		assert.Equal(t, 0.65, m.Multiplier)

		_, err = repo.GetMethod(ctx, "sous-vide")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("returned values are copies", func(t *testing.T) {
		food, err := repo.GetFood(ctx, "rice")
		require.NoError(t, err)
		food.BaseTime = 1

		again, err := repo.GetFood(ctx, "rice")
		require.NoError(t, err)
		assert.Equal(t, 900, again.BaseTime)
	})
}

func TestRepository_ListAndSearchFoods(t *testing.T) {
	repo, err := Default()
	require.NoError(t, err)
	ctx := context.Background()

	grains, err := repo.ListFoods(ctx, "Grain")
	require.NoError(t, err)
	var ids []string
	for _, f := range grains {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"pasta", "rice", "quinoa", "risotto"}, ids)

	found, err := repo.SearchFoods(ctx, "  CHICK! ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "chicken", found[0].ID)

	all, err := repo.SearchFoods(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 14)

	none, err := repo.SearchFoods(ctx, "tofu")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ``},
		{"malformed", `foods: [`},
		{"unknown field", "foods:\n  - id: a\n    baseTime: 10\n    colour: red\nmethods:\n  - id: m\n    multiplier: 1\n"},
		{"no foods", "methods:\n  - id: m\n    multiplier: 1\n"},
		{"no methods", "foods:\n  - id: a\n    baseTime: 10\n"},
		{"zero base time", "foods:\n  - id: a\n    baseTime: 0\nmethods:\n  - id: m\n    multiplier: 1\n"},
		{"duplicate food", "foods:\n  - id: a\n    baseTime: 1\n  - id: a\n    baseTime: 2\nmethods:\n  - id: m\n    multiplier: 1\n"},
		{"texture for unknown food", "foods:\n  - id: a\n    baseTime: 1\ntextures:\n  b:\n    - id: t\n      multiplier: 1\nmethods:\n  - id: m\n    multiplier: 1\n"},
		{"negative texture multiplier", "foods:\n  - id: a\n    baseTime: 1\ntextures:\n  a:\n    - id: t\n      multiplier: -1\nmethods:\n  - id: m\n    multiplier: 1\n"},
		{"zero method multiplier", "foods:\n  - id: a\n    baseTime: 1\nmethods:\n  - id: m\n    multiplier: 0\n"},
		{"duplicate method", "foods:\n  - id: a\n    baseTime: 1\nmethods:\n  - id: m\n    multiplier: 1\n  - id: m\n    multiplier: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.True(t, errors.Is(err, domain.ErrInvalidCatalog), "error = %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses embedded catalog", func(t *testing.T) {
		repo, err := Load("")
		require.NoError(t, err)
		foods, _, _ := repo.Counts()
		assert.Equal(t, 14, foods)
	})

	t.Run("loads override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		content := "foods:\n  - id: tofu\n    name: Tofu\n    category: protein\n    baseTime: 300\ntextures:\n  tofu:\n    - id: crispy\n      multiplier: 1.2\nmethods:\n  - id: pan-frying\n    multiplier: 0.7\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		repo, err := Load(path)
		require.NoError(t, err)

		tofu, err := repo.GetFood(context.Background(), "tofu")
		require.NoError(t, err)
		assert.Equal(t, 300, tofu.BaseTime)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

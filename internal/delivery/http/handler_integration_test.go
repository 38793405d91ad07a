package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cooktimer/backend/config"
	"github.com/cooktimer/backend/internal/infrastructure/cache"
	"github.com/cooktimer/backend/internal/infrastructure/catalog"
	"github.com/cooktimer/backend/internal/infrastructure/favorites"
	"github.com/cooktimer/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*"},
		},
		Cache:     config.CacheConfig{Type: "memory", TTL: time.Hour},
		RateLimit: config.RateLimitConfig{PerIP: 6000, Burst: 1000},
		Timer:     config.TimerConfig{TickInterval: time.Second, MaxTimers: 3, AlmostDoneSeconds: 30},
		Favorites: config.FavoritesConfig{Driver: "memory"},
	}
}

type testServer struct {
	router *gin.Engine
	timers *usecase.TimerService
}

// setupTestRouter wires the real services over in-memory stores
func setupTestRouter(t *testing.T, cfg *config.Config, withFavorites bool) *testServer {
	t.Helper()

	repo, err := catalog.Default()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	estimates := usecase.NewEstimateService(repo, cache.NewMemoryCache(ctx, time.Minute), nil,
		usecase.EstimateServiceConfig{CacheTTL: cfg.Cache.TTL})
	timers := usecase.NewTimerService(estimates, nil, usecase.TimerServiceConfig{
		MaxTimers:         cfg.Timer.MaxTimers,
		AlmostDoneSeconds: cfg.Timer.AlmostDoneSeconds,
	})
	var favs *usecase.FavoritesService
	if withFavorites {
		favs = usecase.NewFavoritesService(favorites.NewMemoryStore(), estimates, nil)
	}

	handler := NewHandler(repo, estimates, timers, favs, nil)
	return &testServer{router: SetupRouter(cfg, handler, nil), timers: timers}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return response
}

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		srv := setupTestRouter(t, testConfig(), true)

		w := srv.do("GET", "/health", "")

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}
		response := decode(t, w)
		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "cooktimer-backend" {
			t.Errorf("service = %v, want cooktimer-backend", response["service"])
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		srv := setupTestRouter(t, testConfig(), true)

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			w := srv.do(method, "/health", "")
			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

func TestCatalogEndpoints(t *testing.T) {
	srv := setupTestRouter(t, testConfig(), true)

	t.Run("lists all foods", func(t *testing.T) {
		w := srv.do("GET", "/api/v1/foods", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["foods"], 14)
	})

	t.Run("filters by category", func(t *testing.T) {
		w := srv.do("GET", "/api/v1/foods?category=grain", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["foods"], 4)
	})

	t.Run("searches by name", func(t *testing.T) {
		w := srv.do("GET", "/api/v1/foods?q=chick", "")
		require.Equal(t, http.StatusOK, w.Code)
		foods := decode(t, w)["foods"].([]interface{})
		require.Len(t, foods, 1)
		assert.Equal(t, "chicken", foods[0].(map[string]interface{})["id"])
	})

	t.Run("gets a food", func(t *testing.T) {
		w := srv.do("GET", "/api/v1/foods/eggs", "")
		require.Equal(t, http.StatusOK, w.Code)
		food := decode(t, w)
		assert.Equal(t, "Eggs", food["name"])
		assert.Equal(t, float64(160), food["safetyTemp"])
	})

	t.Run("unknown food is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, srv.do("GET", "/api/v1/foods/tofu", "").Code)
		assert.Equal(t, http.StatusNotFound, srv.do("GET", "/api/v1/foods/tofu/textures", "").Code)
	})

	t.Run("lists textures", func(t *testing.T) {
		w := srv.do("GET", "/api/v1/foods/eggs/textures", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["textures"], 4)
	})

	t.Run("lists methods", func(t *testing.T) {
		w := srv.do("GET", "/api/v1/methods", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["methods"], 7)
	})
}

func TestEstimateEndpoints(t *testing.T) {
	srv := setupTestRouter(t, testConfig(), true)

	t.Run("estimates cooking time", func(t *testing.T) {
		body := `{"foodId":"chicken","textureId":"juicy","methodId":"baking-350","thickness":3,"startingTemp":"cold"}`
		w := srv.do("POST", "/api/v1/estimates", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		est := decode(t, w)
		assert.Equal(t, float64(2048), est["seconds"])
		assert.Equal(t, "34:08", est["formatted"])
		assert.Equal(t, true, est["safe"])
		assert.Equal(t, float64(74), est["safetyTempC"])
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", `{"foodId":`, http.StatusBadRequest},
		{"missing fields", `{"foodId":"eggs"}`, http.StatusBadRequest},
		{"thickness out of range", `{"foodId":"eggs","textureId":"jammy","methodId":"boiling","thickness":9,"startingTemp":"room"}`, http.StatusBadRequest},
		{"unknown temperature", `{"foodId":"eggs","textureId":"jammy","methodId":"boiling","thickness":3,"startingTemp":"lukewarm"}`, http.StatusBadRequest},
		{"unknown food", `{"foodId":"tofu","textureId":"soft","methodId":"boiling","thickness":3,"startingTemp":"room"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do("POST", "/api/v1/estimates", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Contains(t, decode(t, w), "error")
		})
	}

	t.Run("safety check", func(t *testing.T) {
		w := srv.do("POST", "/api/v1/estimates/safety", `{"foodId":"chicken","seconds":1000}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decode(t, w)["safe"])

		w = srv.do("POST", "/api/v1/estimates/safety", `{"foodId":"chicken"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTimerEndpoints(t *testing.T) {
	srv := setupTestRouter(t, testConfig(), true)

	w := srv.do("POST", "/api/v1/timers", `{"name":"Pasta","seconds":300}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id := created["id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, "idle", created["state"].(map[string]interface{})["status"])

	status := func(w *httptest.ResponseRecorder) string {
		t.Helper()
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode(t, w)["state"].(map[string]interface{})["status"].(string)
	}

	assert.Equal(t, "running", status(srv.do("POST", "/api/v1/timers/"+id+"/start", "")))
	assert.Equal(t, http.StatusConflict, srv.do("POST", "/api/v1/timers/"+id+"/start", "").Code)
	assert.Equal(t, "paused", status(srv.do("POST", "/api/v1/timers/"+id+"/pause", "")))
	assert.Equal(t, "running", status(srv.do("POST", "/api/v1/timers/"+id+"/resume", "")))

	srv.timers.TickAll(context.Background())

	w = srv.do("GET", "/api/v1/timers/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(299), decode(t, w)["state"].(map[string]interface{})["remaining"])
	assert.Equal(t, "4:59", decode(t, w)["formatted"])

	w = srv.do("POST", "/api/v1/timers/"+id+"/extend", `{"seconds":60}`)
	assert.Equal(t, "running", status(w))

	w = srv.do("PUT", "/api/v1/timers/"+id+"/time", `{"seconds":240}`)
	assert.Equal(t, "idle", status(w))

	assert.Equal(t, http.StatusBadRequest, srv.do("PUT", "/api/v1/timers/"+id+"/time", `{"seconds":-1}`).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do("POST", "/api/v1/timers/"+id+"/extend", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest,
		srv.do("POST", "/api/v1/timers/"+id+"/extend", `{"seconds":9223372036854775807}`).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do("PUT", "/api/v1/timers/"+id+"/time", `{"seconds":86401}`).Code)
	assert.Equal(t, "idle", status(srv.do("POST", "/api/v1/timers/"+id+"/reset", "")))

	w = srv.do("GET", "/api/v1/timers", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["timers"], 1)

	assert.Equal(t, http.StatusNoContent, srv.do("DELETE", "/api/v1/timers/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, srv.do("GET", "/api/v1/timers/"+id, "").Code)
}

func TestTimerEndpoints_Errors(t *testing.T) {
	srv := setupTestRouter(t, testConfig(), true)

	unsafe := `{"estimate":{"foodId":"chicken","textureId":"juicy","methodId":"grilling","thickness":1,"startingTemp":"warm"}}`
	assert.Equal(t, http.StatusUnprocessableEntity, srv.do("POST", "/api/v1/timers", unsafe).Code)

	forced := `{"force":true,"estimate":{"foodId":"chicken","textureId":"juicy","methodId":"grilling","thickness":1,"startingTemp":"warm"}}`
	assert.Equal(t, http.StatusCreated, srv.do("POST", "/api/v1/timers", forced).Code)

	assert.Equal(t, http.StatusBadRequest, srv.do("POST", "/api/v1/timers", `{"name":"none"}`).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do("POST", "/api/v1/timers", `{"seconds":5,"priority":"urgent"}`).Code)

	// MaxTimers is 3
	assert.Equal(t, http.StatusCreated, srv.do("POST", "/api/v1/timers", `{"seconds":5}`).Code)
	assert.Equal(t, http.StatusCreated, srv.do("POST", "/api/v1/timers", `{"seconds":5}`).Code)
	assert.Equal(t, http.StatusConflict, srv.do("POST", "/api/v1/timers", `{"seconds":5}`).Code)

	assert.Equal(t, http.StatusNotFound, srv.do("POST", "/api/v1/timers/missing/pause", "").Code)
}

func TestFavoriteEndpoints(t *testing.T) {
	srv := setupTestRouter(t, testConfig(), true)

	body := `{"name":"Ramen eggs","foodId":"eggs","textureId":"jammy","methodId":"boiling","thickness":3,"startingTemp":"room"}`
	w := srv.do("POST", "/api/v1/favorites", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	w = srv.do("POST", "/api/v1/favorites/"+id+"/use", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	use := decode(t, w)
	assert.Equal(t, float64(420), use["estimate"].(map[string]interface{})["seconds"])
	assert.Equal(t, float64(1), use["favorite"].(map[string]interface{})["usageCount"])

	w = srv.do("GET", "/api/v1/favorites?sort=popular&q=ramen", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["favorites"], 1)

	assert.Equal(t, http.StatusBadRequest, srv.do("GET", "/api/v1/favorites?sort=stars", "").Code)
	assert.Equal(t, http.StatusBadRequest, srv.do("POST", "/api/v1/favorites", `{"name":"x"}`).Code)

	assert.Equal(t, http.StatusNoContent, srv.do("DELETE", "/api/v1/favorites/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, srv.do("DELETE", "/api/v1/favorites/"+id, "").Code)
}

func TestFavoriteEndpoints_NotConfigured(t *testing.T) {
	srv := setupTestRouter(t, testConfig(), false)

	w := srv.do("GET", "/api/v1/favorites", "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Contains(t, decode(t, w)["error"], "not configured")
}

func TestRateLimitIntegration(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{PerIP: 1, Burst: 2}
	srv := setupTestRouter(t, cfg, true)

	assert.Equal(t, http.StatusOK, srv.do("GET", "/api/v1/methods", "").Code)
	assert.Equal(t, http.StatusOK, srv.do("GET", "/api/v1/methods", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, srv.do("GET", "/api/v1/methods", "").Code)

	// health is outside the limited group
	assert.Equal(t, http.StatusOK, srv.do("GET", "/health", "").Code)
}

// TestCORSIntegration tests CORS headers work end-to-end with full router
func TestCORSIntegration(t *testing.T) {
	srv := setupTestRouter(t, testConfig(), true)

	req := httptest.NewRequest("GET", "/api/v1/methods", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:5173")
	}
}

// TestJSONResponses tests that all responses are valid JSON
func TestJSONResponses(t *testing.T) {
	endpoints := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/api/v1/foods"},
		{"GET", "/api/v1/timers"},
		{"POST", "/api/v1/estimates"},
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.method+" "+endpoint.path, func(t *testing.T) {
			srv := setupTestRouter(t, testConfig(), true)

			w := srv.do(endpoint.method, endpoint.path, "")

			gotContentType := w.Header().Get("Content-Type")
			wantContentType := "application/json; charset=utf-8"
			if gotContentType != wantContentType {
				t.Errorf("Content-Type = %q, want %q", gotContentType, wantContentType)
			}
			decode(t, w)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cooktimer/backend/internal/domain"
	"github.com/cooktimer/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog   domain.CatalogRepository
	estimates *usecase.EstimateService
	timers    *usecase.TimerService
	favorites *usecase.FavoritesService
	log       *zap.Logger
}

// NewHandler creates a new HTTP handler. favorites may be nil, in which case
// the favorites endpoints return 501.
func NewHandler(
	catalog domain.CatalogRepository,
	estimates *usecase.EstimateService,
	timers *usecase.TimerService,
	favorites *usecase.FavoritesService,
	log *zap.Logger,
) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		catalog:   catalog,
		estimates: estimates,
		timers:    timers,
		favorites: favorites,
		log:       log.Named("handler"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cooktimer-backend",
		"version": "1.0.0",
	})
}

// ListFoods lists catalog foods, optionally filtered by category or a search query
func (h *Handler) ListFoods(c *gin.Context) {
	var (
		foods []domain.Food
		err   error
	)
	if q := c.Query("q"); q != "" {
		foods, err = h.catalog.SearchFoods(c.Request.Context(), q)
	} else {
		foods, err = h.catalog.ListFoods(c.Request.Context(), c.Query("category"))
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

// GetFood returns a single food
func (h *Handler) GetFood(c *gin.Context) {
	food, err := h.catalog.GetFood(c.Request.Context(), c.Param("foodId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// ListTextures returns the textures available for a food
func (h *Handler) ListTextures(c *gin.Context) {
	textures, err := h.catalog.ListTextures(c.Request.Context(), c.Param("foodId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"textures": textures})
}

// ListMethods returns all cooking methods
func (h *Handler) ListMethods(c *gin.Context) {
	methods, err := h.catalog.ListMethods(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"methods": methods})
}

// CreateEstimate computes a cooking time estimate
func (h *Handler) CreateEstimate(c *gin.Context) {
	var req domain.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	estimate, err := h.estimates.Estimate(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, estimate)
}

// safetyRequest is the body of a safety check
type safetyRequest struct {
	FoodID   string `json:"foodId" binding:"required"`
	MethodID string `json:"methodId"`
	Seconds  *int   `json:"seconds" binding:"required"`
}

// CheckSafety judges an arbitrary cooking time against a food's safety minimum
func (h *Handler) CheckSafety(c *gin.Context) {
	var req safetyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	verdict, err := h.estimates.CheckSafety(c.Request.Context(), req.FoodID, req.MethodID, *req.Seconds)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// ListTimers returns all timers in priority order
func (h *Handler) ListTimers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timers": h.timers.List(c.Request.Context())})
}

// CreateTimer creates a timer from seconds or an estimate
func (h *Handler) CreateTimer(c *gin.Context) {
	var req domain.CreateTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	t, err := h.timers.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GetTimer returns a single timer
func (h *Handler) GetTimer(c *gin.Context) {
	t, err := h.timers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTimer removes a timer
func (h *Handler) DeleteTimer(c *gin.Context) {
	if err := h.timers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondTimer writes the result of a timer state change
func (h *Handler) respondTimer(c *gin.Context, t *domain.Timer, err error) {
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// StartTimer starts an idle timer
func (h *Handler) StartTimer(c *gin.Context) {
	t, err := h.timers.Start(c.Request.Context(), c.Param("id"))
	h.respondTimer(c, t, err)
}

// PauseTimer pauses a running timer
func (h *Handler) PauseTimer(c *gin.Context) {
	t, err := h.timers.Pause(c.Request.Context(), c.Param("id"))
	h.respondTimer(c, t, err)
}

// ResumeTimer resumes a paused timer
func (h *Handler) ResumeTimer(c *gin.Context) {
	t, err := h.timers.Resume(c.Request.Context(), c.Param("id"))
	h.respondTimer(c, t, err)
}

// ResetTimer returns a timer to idle
func (h *Handler) ResetTimer(c *gin.Context) {
	t, err := h.timers.Reset(c.Request.Context(), c.Param("id"))
	h.respondTimer(c, t, err)
}

// secondsRequest carries a duration for set-time and extend
type secondsRequest struct {
	Seconds *int `json:"seconds" binding:"required"`
}

// SetTimerTime replaces a timer's duration and stops it
func (h *Handler) SetTimerTime(c *gin.Context) {
	var req secondsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}
	t, err := h.timers.SetTime(c.Request.Context(), c.Param("id"), *req.Seconds)
	h.respondTimer(c, t, err)
}

// ExtendTimer adds time to a timer without stopping it
func (h *Handler) ExtendTimer(c *gin.Context) {
	var req secondsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}
	t, err := h.timers.Extend(c.Request.Context(), c.Param("id"), *req.Seconds)
	h.respondTimer(c, t, err)
}

// ListFavorites lists saved favorites (?sort=name|recent|popular&q=)
func (h *Handler) ListFavorites(c *gin.Context) {
	if !h.favoritesConfigured(c) {
		return
	}
	list, err := h.favorites.List(c.Request.Context(), domain.FavoriteSort(c.Query("sort")), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": list})
}

// SaveFavorite saves a new favorite
func (h *Handler) SaveFavorite(c *gin.Context) {
	if !h.favoritesConfigured(c) {
		return
	}
	var req domain.SaveFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	favorite, err := h.favorites.Save(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

// DeleteFavorite removes a favorite
func (h *Handler) DeleteFavorite(c *gin.Context) {
	if !h.favoritesConfigured(c) {
		return
	}
	if err := h.favorites.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UseFavorite records a use and returns a fresh estimate
func (h *Handler) UseFavorite(c *gin.Context) {
	if !h.favoritesConfigured(c) {
		return
	}
	use, err := h.favorites.Use(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, use)
}

func (h *Handler) favoritesConfigured(c *gin.Context) bool {
	if h.favorites == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "favorites are not configured"})
		return false
	}
	return true
}

// respondBindError reports a malformed request body
func (h *Handler) respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidThickness),
		errors.Is(err, domain.ErrInvalidStartingTemp):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrTooManyTimers):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnsafeTime):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

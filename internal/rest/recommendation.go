package rest

import (
	"animeRecommender/domain"
	"animeRecommender/pkg/logger"
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const defaultCount = 10

type (
	RecommendationHandler struct {
		validate *validator.Validate
		service  RecommendationService
		timeout  time.Duration
	}

	RecommendationService interface {
		RecommendForUser(ctx context.Context, userID, n int) ([]domain.UserRecommendation, error)
		SimilarAnime(ctx context.Context, animeID, n int) ([]domain.SimilarAnime, error)
		Hybrid(ctx context.Context, userID int) ([]string, error)
		PopularAnime(ctx context.Context, n int) ([]domain.PopularAnime, error)
		ValidUsers(ctx context.Context, limit int) ([]int, int, error)
		ValidAnime(ctx context.Context, limit int) ([]domain.AnimeSummary, int, error)
		Health() domain.Health
	}

	UserRecommendationRequest struct {
		UserID             *int `json:"user_id" validate:"required"`
		NumRecommendations int  `json:"num_recommendations" validate:"gte=0,lte=1000"`
	}

	AnimeRecommendationRequest struct {
		AnimeID            *int `json:"anime_id" validate:"required"`
		NumRecommendations int  `json:"num_recommendations" validate:"gte=0,lte=1000"`
	}

	HybridRecommendationRequest struct {
		UserID *int `json:"user_id" validate:"required"`
	}

	PopularQuery struct {
		NumRecommendations int `query:"num_recommendations" validate:"gte=0,lte=1000"`
	}

	ListQuery struct {
		Limit int `query:"limit" validate:"gte=0,lte=1000"`
	}

	RecommendationResponse[T any] struct {
		Recommendations []T `json:"recommendations"`
	}

	HybridResponse struct {
		UserID          int      `json:"user_id"`
		Recommendations []string `json:"recommendations"`
	}

	ValidUsersResponse struct {
		ValidUserIDs []int  `json:"valid_user_ids"`
		TotalUsers   int    `json:"total_users"`
		Message      string `json:"message"`
	}

	ValidAnimeResponse struct {
		ValidAnime []domain.AnimeSummary `json:"valid_anime"`
		TotalAnime int                   `json:"total_anime"`
		Message    string                `json:"message"`
	}

	HealthResponse struct {
		Status      string `json:"status"`
		ModelLoaded bool   `json:"model_loaded"`
		DataLoaded  bool   `json:"data_loaded"`
		NumUsers    int    `json:"num_users"`
		NumAnime    int    `json:"num_anime"`
	}

	RootResponse struct {
		Message   string   `json:"message"`
		Endpoints []string `json:"endpoints"`
	}
)

func NewRecommendationHandler(service RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate: validator.New(),
		service:  service,
		timeout:  10 * time.Second,
	}
}

func countOrDefault(n int) int {
	if n == 0 {
		return defaultCount
	}
	return n
}

// bind decodes and validates req, answering 400 itself when either fails.
func (h *RecommendationHandler) bind(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		logger.Error("Invalid request body", err, "path", c.Path())
		return false, c.JSON(http.StatusBadRequest, ResponseError{Message: msgInvalidRequest})
	}

	if err := h.validate.Struct(req); err != nil {
		logger.Error("Failed to validate request", err, "path", c.Path())
		return false, c.JSON(http.StatusBadRequest, ResponseError{Message: msgInvalidRequest})
	}

	return true, nil
}

// fail maps NotFound to 404 and everything else to a generic 500.
func (h *RecommendationHandler) fail(c echo.Context, msg string, err error) error {
	if nf, ok := notFoundMessage(err); ok {
		logger.Warn(msg, "path", c.Path(), "error", err.Error())
		return c.JSON(http.StatusNotFound, ResponseError{Message: nf})
	}

	logger.Error(msg, err, "path", c.Path())
	return c.JSON(http.StatusInternalServerError, ResponseError{Message: msgInternal})
}

func (h *RecommendationHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, RootResponse{
		Message: "Welcome to the Anime Recommendation API",
		Endpoints: []string{
			"/recommend/user",
			"/recommend/similar",
			"/recommend/hybrid",
			"/recommend/popular",
			"/valid-users",
			"/valid-anime",
			"/health",
		},
	})
}

func (h *RecommendationHandler) RecommendForUser(c echo.Context) error {
	var req UserRecommendationRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.RecommendForUser(ctx, *req.UserID, countOrDefault(req.NumRecommendations))
	if err != nil {
		return h.fail(c, "Failed to generate user recommendations", err)
	}

	return c.JSON(http.StatusOK, RecommendationResponse[domain.UserRecommendation]{Recommendations: recs})
}

func (h *RecommendationHandler) RecommendSimilar(c echo.Context) error {
	var req AnimeRecommendationRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.SimilarAnime(ctx, *req.AnimeID, countOrDefault(req.NumRecommendations))
	if err != nil {
		return h.fail(c, "Failed to find similar anime", err)
	}

	return c.JSON(http.StatusOK, RecommendationResponse[domain.SimilarAnime]{Recommendations: recs})
}

// RecommendHybrid answers 404 for unknown users. Any other pipeline failure
// degrades to an empty list.
func (h *RecommendationHandler) RecommendHybrid(c echo.Context) error {
	var req HybridRecommendationRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.Hybrid(ctx, *req.UserID)
	if err != nil {
		if nf, ok := notFoundMessage(err); ok {
			return c.JSON(http.StatusNotFound, ResponseError{Message: nf})
		}
		recs = []string{}
	}

	return c.JSON(http.StatusOK, HybridResponse{UserID: *req.UserID, Recommendations: recs})
}

func (h *RecommendationHandler) RecommendPopular(c echo.Context) error {
	var q PopularQuery
	if ok, err := h.bind(c, &q); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.PopularAnime(ctx, countOrDefault(q.NumRecommendations))
	if err != nil {
		return h.fail(c, "Failed to get popular anime", err)
	}

	return c.JSON(http.StatusOK, RecommendationResponse[domain.PopularAnime]{Recommendations: recs})
}

func (h *RecommendationHandler) ValidUsers(c echo.Context) error {
	var q ListQuery
	if ok, err := h.bind(c, &q); !ok {
		return err
	}

	ids, total, err := h.service.ValidUsers(c.Request().Context(), countOrDefault(q.Limit))
	if err != nil {
		return h.fail(c, "Failed to get valid users", err)
	}

	return c.JSON(http.StatusOK, ValidUsersResponse{
		ValidUserIDs: ids,
		TotalUsers:   total,
		Message:      "Use these IDs to test the /recommend/user endpoint",
	})
}

func (h *RecommendationHandler) ValidAnime(c echo.Context) error {
	var q ListQuery
	if ok, err := h.bind(c, &q); !ok {
		return err
	}

	anime, total, err := h.service.ValidAnime(c.Request().Context(), countOrDefault(q.Limit))
	if err != nil {
		return h.fail(c, "Failed to get valid anime", err)
	}

	return c.JSON(http.StatusOK, ValidAnimeResponse{
		ValidAnime: anime,
		TotalAnime: total,
		Message:    "Use these IDs to test the /recommend/similar endpoint",
	})
}

func (h *RecommendationHandler) Health(c echo.Context) error {
	health := h.service.Health()
	return c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		ModelLoaded: health.ModelLoaded,
		DataLoaded:  health.DataLoaded,
		NumUsers:    health.NumUsers,
		NumAnime:    health.NumAnime,
	})
}

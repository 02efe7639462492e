package router

import (
	"animeRecommender/internal/middleware"
	"animeRecommender/internal/rest"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New returns an echo instance with the shared middleware stack.
func New(allowOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	return e
}

func SetupRecommendationRoutes(e *echo.Echo, handler *rest.RecommendationHandler) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.Health)
	e.GET("/valid-users", handler.ValidUsers)
	e.GET("/valid-anime", handler.ValidAnime)

	reco := e.Group("/recommend")
	reco.POST("/user", handler.RecommendForUser)
	reco.POST("/similar", handler.RecommendSimilar)
	reco.POST("/hybrid", handler.RecommendHybrid)
	reco.GET("/popular", handler.RecommendPopular)
}

func SetupWebRoutes(e *echo.Echo, handler *rest.WebHandler) {
	e.GET("/", handler.Index)
	e.POST("/", handler.Recommend)
}

func SetupMetricsRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

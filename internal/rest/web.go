package rest

import (
	"animeRecommender/pkg/logger"
	"context"
	"embed"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const indexTemplate = "index.html"

// TemplateRenderer renders the embedded page templates for echo.
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: t}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

type (
	HybridRecommender interface {
		Hybrid(ctx context.Context, userID int) ([]string, error)
	}

	WebHandler struct {
		service HybridRecommender
		timeout time.Duration
	}

	IndexPage struct {
		Submitted       bool
		UserID          string
		Recommendations []string
	}
)

func NewWebHandler(service HybridRecommender) *WebHandler {
	return &WebHandler{
		service: service,
		timeout: 10 * time.Second,
	}
}

func (h *WebHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, indexTemplate, IndexPage{})
}

// Recommend reads the userID form field and renders hybrid recommendations
// for it. Bad input renders the page with no recommendations.
func (h *WebHandler) Recommend(c echo.Context) error {
	raw := c.FormValue("userID")
	page := IndexPage{Submitted: true, UserID: raw}

	userID, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		logger.Error("Invalid user ID format", err, "user_id", raw)
		return c.Render(http.StatusOK, indexTemplate, page)
	}

	logger.Info("Processing recommendation request", "user_id", userID)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.Hybrid(ctx, userID)
	switch {
	case err != nil:
		logger.Error("Error generating recommendations", err, "user_id", userID)
	case len(recs) == 0:
		logger.Warn("No recommendations generated", "user_id", userID)
	default:
		logger.Info("Generated recommendations", "user_id", userID, "count", len(recs))
	}

	page.Recommendations = recs
	return c.Render(http.StatusOK, indexTemplate, page)
}

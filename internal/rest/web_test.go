package rest

import (
	"animeRecommender/domain"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWeb(t *testing.T, handler func(*WebHandler) echo.HandlerFunc, svc HybridRecommender, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	rec := httptest.NewRecorder()
	require.NoError(t, handler(NewWebHandler(svc))(e.NewContext(req, rec)))
	return rec
}

func formRequest(userID string) *http.Request {
	form := url.Values{"userID": {userID}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestWebIndex(t *testing.T) {
	rec := serveWeb(t, func(h *WebHandler) echo.HandlerFunc { return h.Index }, &fakeRecommendationService{},
		httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="userID"`)
	assert.NotContains(t, rec.Body.String(), "No recommendations found")
}

func TestWebRecommend(t *testing.T) {
	svc := &fakeRecommendationService{hybrid: []string{"Cowboy Bebop", "Trigun"}}

	rec := serveWeb(t, func(h *WebHandler) echo.HandlerFunc { return h.Recommend }, svc, formRequest(" 42 "))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42, svc.gotID)
	assert.Contains(t, rec.Body.String(), "<li>Cowboy Bebop</li>")
	assert.Contains(t, rec.Body.String(), "<li>Trigun</li>")
}

func TestWebRecommend_InvalidUserID(t *testing.T) {
	svc := &fakeRecommendationService{hybrid: []string{"never shown"}}

	rec := serveWeb(t, func(h *WebHandler) echo.HandlerFunc { return h.Recommend }, svc, formRequest("abc"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, svc.hybridCalls)
	assert.NotContains(t, rec.Body.String(), "<li>")
	assert.Contains(t, rec.Body.String(), "No recommendations found")
}

func TestWebRecommend_UnknownUser(t *testing.T) {
	svc := &fakeRecommendationService{err: domain.NewNotFoundError(domain.EntityUser, 5)}

	rec := serveWeb(t, func(h *WebHandler) echo.HandlerFunc { return h.Recommend }, svc, formRequest("5"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No recommendations found")
}

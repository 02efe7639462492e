package rest

import (
	"animeRecommender/domain"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecommendationService struct {
	userRecs    []domain.UserRecommendation
	similar     []domain.SimilarAnime
	hybrid      []string
	popular     []domain.PopularAnime
	validUsers  []int
	validAnime  []domain.AnimeSummary
	err         error
	gotN        int
	gotID       int
	hybridCalls int
}

func (f *fakeRecommendationService) RecommendForUser(_ context.Context, userID, n int) ([]domain.UserRecommendation, error) {
	f.gotID, f.gotN = userID, n
	return f.userRecs, f.err
}

func (f *fakeRecommendationService) SimilarAnime(_ context.Context, animeID, n int) ([]domain.SimilarAnime, error) {
	f.gotID, f.gotN = animeID, n
	return f.similar, f.err
}

func (f *fakeRecommendationService) Hybrid(_ context.Context, userID int) ([]string, error) {
	f.hybridCalls++
	f.gotID = userID
	if f.err != nil {
		return []string{}, f.err
	}
	return f.hybrid, nil
}

func (f *fakeRecommendationService) PopularAnime(_ context.Context, n int) ([]domain.PopularAnime, error) {
	f.gotN = n
	return f.popular, f.err
}

func (f *fakeRecommendationService) ValidUsers(_ context.Context, limit int) ([]int, int, error) {
	f.gotN = limit
	if limit < len(f.validUsers) {
		return f.validUsers[:limit], len(f.validUsers), f.err
	}
	return f.validUsers, len(f.validUsers), f.err
}

func (f *fakeRecommendationService) ValidAnime(_ context.Context, limit int) ([]domain.AnimeSummary, int, error) {
	f.gotN = limit
	if limit < len(f.validAnime) {
		return f.validAnime[:limit], len(f.validAnime), f.err
	}
	return f.validAnime, len(f.validAnime), f.err
}

func (f *fakeRecommendationService) Health() domain.Health {
	return domain.Health{ModelLoaded: true, DataLoaded: true, NumUsers: len(f.validUsers), NumAnime: len(f.validAnime)}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req
}

func serve(t *testing.T, handler echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler(c))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestRecommendForUser(t *testing.T) {
	svc := &fakeRecommendationService{userRecs: []domain.UserRecommendation{
		{AnimeDetails: domain.AnimeDetails{AnimeID: 1, Name: "A", Genres: "Action, Drama", Type: "TV"}, RecommendationScore: 0.9},
	}}
	h := NewRecommendationHandler(svc)

	rec := serve(t, h.RecommendForUser, jsonRequest(http.MethodPost, "/recommend/user", `{"user_id": 7}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, svc.gotID)
	assert.Equal(t, defaultCount, svc.gotN)

	var body map[string][]map[string]any
	decode(t, rec, &body)
	require.Len(t, body["recommendations"], 1)
	got := body["recommendations"][0]
	assert.Equal(t, "A", got["name"])
	assert.Equal(t, "Action, Drama", got["genres"])
	assert.Equal(t, 0.9, got["recommendation_score"])
	for _, key := range []string{"anime_id", "score", "episodes", "type"} {
		assert.Contains(t, got, key)
	}
}

func TestRecommendForUser_NotFound(t *testing.T) {
	svc := &fakeRecommendationService{err: domain.NewNotFoundError(domain.EntityUser, 99)}
	h := NewRecommendationHandler(svc)

	rec := serve(t, h.RecommendForUser, jsonRequest(http.MethodPost, "/recommend/user", `{"user_id": 99, "num_recommendations": 3}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 3, svc.gotN)
	var body ResponseError
	decode(t, rec, &body)
	assert.Contains(t, body.Message, "User ID 99 not found")
}

func TestRecommendForUser_BadRequest(t *testing.T) {
	cases := map[string]string{
		"missing user":  `{"num_recommendations": 5}`,
		"too many":      `{"user_id": 1, "num_recommendations": 5000}`,
		"negative":      `{"user_id": 1, "num_recommendations": -1}`,
		"malformed":     `{"user_id": `,
		"wrong type":    `{"user_id": "abc"}`,
		"empty payload": ``,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &fakeRecommendationService{}
			h := NewRecommendationHandler(svc)

			rec := serve(t, h.RecommendForUser, jsonRequest(http.MethodPost, "/recommend/user", body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ResponseError
			decode(t, rec, &resp)
			assert.Equal(t, msgInvalidRequest, resp.Message)
		})
	}
}

func TestRecommendForUser_InternalErrorIsGeneric(t *testing.T) {
	svc := &fakeRecommendationService{err: errors.New("matrix exploded at row 12")}
	h := NewRecommendationHandler(svc)

	rec := serve(t, h.RecommendForUser, jsonRequest(http.MethodPost, "/recommend/user", `{"user_id": 1}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "matrix exploded")
}

func TestRecommendSimilar(t *testing.T) {
	svc := &fakeRecommendationService{similar: []domain.SimilarAnime{
		{AnimeDetails: domain.AnimeDetails{AnimeID: 2, Name: "B"}, Similarity: 0.5},
	}}
	h := NewRecommendationHandler(svc)

	rec := serve(t, h.RecommendSimilar, jsonRequest(http.MethodPost, "/recommend/similar", `{"anime_id": 1, "num_recommendations": 4}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.gotID)
	assert.Equal(t, 4, svc.gotN)
	assert.Contains(t, rec.Body.String(), `"similarity":0.5`)
}

func TestRecommendSimilar_NotFound(t *testing.T) {
	svc := &fakeRecommendationService{err: domain.NewNotFoundError(domain.EntityAnime, 5)}
	h := NewRecommendationHandler(svc)

	rec := serve(t, h.RecommendSimilar, jsonRequest(http.MethodPost, "/recommend/similar", `{"anime_id": 5}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/valid-anime")
}

func TestRecommendHybrid(t *testing.T) {
	svc := &fakeRecommendationService{hybrid: []string{"E", "B"}}
	h := NewRecommendationHandler(svc)

	rec := serve(t, h.RecommendHybrid, jsonRequest(http.MethodPost, "/recommend/hybrid", `{"user_id": 10}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body HybridResponse
	decode(t, rec, &body)
	assert.Equal(t, HybridResponse{UserID: 10, Recommendations: []string{"E", "B"}}, body)
}

func TestRecommendHybrid_NotFound(t *testing.T) {
	svc := &fakeRecommendationService{err: domain.NewNotFoundError(domain.EntityUser, 3)}
	h := NewRecommendationHandler(svc)

	rec := serve(t, h.RecommendHybrid, jsonRequest(http.MethodPost, "/recommend/hybrid", `{"user_id": 3}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecommendHybrid_FailureIsEmpty(t *testing.T) {
	svc := &fakeRecommendationService{err: errors.New("boom")}
	h := NewRecommendationHandler(svc)

	rec := serve(t, h.RecommendHybrid, jsonRequest(http.MethodPost, "/recommend/hybrid", `{"user_id": 3}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id": 3, "recommendations": []}`, rec.Body.String())
}

func TestRecommendPopular(t *testing.T) {
	svc := &fakeRecommendationService{popular: []domain.PopularAnime{
		{AnimeDetails: domain.AnimeDetails{AnimeID: 1, Name: "A"}, AvgRating: 9.2, NumRatings: 300},
	}}
	h := NewRecommendationHandler(svc)

	rec := serve(t, h.RecommendPopular, httptest.NewRequest(http.MethodGet, "/recommend/popular?num_recommendations=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.gotN)
	assert.Contains(t, rec.Body.String(), `"num_ratings":300`)
	assert.Contains(t, rec.Body.String(), `"avg_rating":9.2`)
}

func TestRecommendPopular_InvalidQuery(t *testing.T) {
	h := NewRecommendationHandler(&fakeRecommendationService{})

	rec := serve(t, h.RecommendPopular, httptest.NewRequest(http.MethodGet, "/recommend/popular?num_recommendations=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidAnime_Limit(t *testing.T) {
	svc := &fakeRecommendationService{validAnime: []domain.AnimeSummary{
		{AnimeID: 1, Name: "A"}, {AnimeID: 2, Name: "B"}, {AnimeID: 3, Name: "C"}, {AnimeID: 4, Name: "D"},
	}}
	h := NewRecommendationHandler(svc)

	rec := serve(t, h.ValidAnime, httptest.NewRequest(http.MethodGet, "/valid-anime?limit=3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body ValidAnimeResponse
	decode(t, rec, &body)
	assert.Len(t, body.ValidAnime, 3)
	assert.Equal(t, 4, body.TotalAnime)
	assert.NotEmpty(t, body.Message)
}

func TestValidUsers_DefaultLimit(t *testing.T) {
	svc := &fakeRecommendationService{validUsers: []int{1, 2}}
	h := NewRecommendationHandler(svc)

	rec := serve(t, h.ValidUsers, httptest.NewRequest(http.MethodGet, "/valid-users", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultCount, svc.gotN)
	var body ValidUsersResponse
	decode(t, rec, &body)
	assert.Equal(t, []int{1, 2}, body.ValidUserIDs)
	assert.Equal(t, 2, body.TotalUsers)
}

func TestHealth(t *testing.T) {
	h := NewRecommendationHandler(&fakeRecommendationService{validUsers: []int{1, 2, 3}})

	rec := serve(t, h.Health, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.JSONEq(t, `{"status":"healthy","model_loaded":true,"data_loaded":true,"num_users":3,"num_anime":0}`, rec.Body.String())
}

func TestRoot(t *testing.T) {
	h := NewRecommendationHandler(&fakeRecommendationService{})

	rec := serve(t, h.Root, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/recommend/hybrid")
}

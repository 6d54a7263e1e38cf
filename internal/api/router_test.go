package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pukadigital/content-hub/internal/cache"
	"github.com/pukadigital/content-hub/internal/config"
	"github.com/pukadigital/content-hub/internal/fallback"
	"github.com/pukadigital/content-hub/internal/handlers"
	"github.com/pukadigital/content-hub/internal/logger"
	"github.com/pukadigital/content-hub/internal/models"
	"github.com/pukadigital/content-hub/internal/resolver"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGateway struct {
	posts []models.Post
	err   error
}

func (g *fakeGateway) FetchPosts(context.Context, string, int) ([]models.Post, error) {
	return g.posts, g.err
}

func (g *fakeGateway) FetchPostBySlug(_ context.Context, _, slug string) (models.Post, error) {
	for _, p := range g.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Post{}, models.ErrNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:        "localhost",
			Port:        8060,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Content: config.ContentConfig{
			Tenant:       "pukadigital",
			DefaultLimit: 20,
		},
		Site: config.SiteConfig{
			BaseURL: "https://pukadigital.com",
			Title:   "PukaDigital",
		},
	}
}

func newTestServer(t *testing.T, gw resolver.Gateway) *gin.Engine {
	t.Helper()

	cfg := testConfig()
	store := cache.NewMemory(5 * time.Minute)
	res := resolver.New(resolver.Config{
		Tenant:   cfg.Content.Tenant,
		Gateway:  gw,
		Fallback: fallback.NewStore(fallback.DefaultPosts()),
		Cache:    store,
		Logger:   logger.NewNop(),
	})

	posts := handlers.NewPostsHandler(res, store, cfg.Site, cfg.Content.DefaultLimit, logger.NewNop())

	return NewRouter(cfg, Deps{
		Posts:  posts,
		Logger: logger.NewNop(),
	})
}

func TestRouter_Health(t *testing.T) {
	router := newTestServer(t, &fakeGateway{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestRouter_PostsEndToEnd(t *testing.T) {
	gw := &fakeGateway{posts: []models.Post{
		{Slug: "launch", Title: "Launch", Content: "We are live"},
	}}
	router := newTestServer(t, gw)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Posts []models.Post `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Posts, 1)
	assert.Equal(t, models.SourceRemote, body.Posts[0].Source)
}

func TestRouter_PostsFallbackOnGatewayFailure(t *testing.T) {
	router := newTestServer(t, &fakeGateway{err: assert.AnError})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Posts  []models.Post           `json:"posts"`
		Status models.ResolutionStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Posts, 3)
	assert.False(t, body.Status.IsConnected)
}

func TestRouter_Sitemap(t *testing.T) {
	router := newTestServer(t, &fakeGateway{err: assert.AnError})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/blog/welcome-post")
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestServer(t, &fakeGateway{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestServer(t, &fakeGateway{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/posts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

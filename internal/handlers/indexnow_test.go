package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pukadigital/content-hub/internal/indexnow"
	"github.com/pukadigital/content-hub/internal/logger"
	"github.com/pukadigital/content-hub/internal/models"
)

type stubSubmitter struct {
	enabled   bool
	err       error
	submitted [][]string
}

func (s *stubSubmitter) Submit(_ context.Context, urls []string) error {
	s.submitted = append(s.submitted, urls)
	return s.err
}

func (s *stubSubmitter) IsEnabled() bool { return s.enabled }

func newIndexNowRouter(h *IndexNowHandler) *gin.Engine {
	router := gin.New()
	router.POST("/api/v1/indexnow", h.Submit)
	return router
}

func TestIndexNowHandler_Submit(t *testing.T) {
	submitter := &stubSubmitter{enabled: true}
	h := NewIndexNowHandler(&stubResolver{}, submitter, testSite(), logger.NewNop())
	router := newIndexNowRouter(h)

	body := strings.NewReader(`{"urls":["https://pukadigital.com/blog/first"]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/indexnow", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, submitter.submitted, 1)
	assert.Equal(t, []string{"https://pukadigital.com/blog/first"}, submitter.submitted[0])
}

func TestIndexNowHandler_Submit_CollectsSiteURLs(t *testing.T) {
	submitter := &stubSubmitter{enabled: true}
	resolver := &stubResolver{posts: samplePosts()}
	h := NewIndexNowHandler(resolver, submitter, testSite(), logger.NewNop())
	router := newIndexNowRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/indexnow", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, submitter.submitted, 1)
	assert.Equal(t, []string{
		"https://pukadigital.com/",
		"https://pukadigital.com/blog",
		"https://pukadigital.com/blog/first",
		"https://pukadigital.com/blog/second",
	}, submitter.submitted[0])
}

func TestIndexNowHandler_Submit_Disabled(t *testing.T) {
	submitter := &stubSubmitter{enabled: false}
	h := NewIndexNowHandler(&stubResolver{}, submitter, testSite(), logger.NewNop())
	router := newIndexNowRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/indexnow", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "indexnow disabled")
	assert.Empty(t, submitter.submitted)
}

func TestIndexNowHandler_Submit_InvalidBody(t *testing.T) {
	submitter := &stubSubmitter{enabled: true}
	h := NewIndexNowHandler(&stubResolver{}, submitter, testSite(), logger.NewNop())
	router := newIndexNowRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/indexnow", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, submitter.submitted)
}

func TestIndexNowHandler_Submit_CircuitOpen(t *testing.T) {
	submitter := &stubSubmitter{enabled: true, err: indexnow.ErrCircuitOpen}
	h := NewIndexNowHandler(&stubResolver{posts: samplePosts()}, submitter, testSite(), logger.NewNop())
	router := newIndexNowRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/indexnow", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestIndexNowHandler_Submit_UpstreamFailure(t *testing.T) {
	submitter := &stubSubmitter{enabled: true, err: assert.AnError}
	h := NewIndexNowHandler(&stubResolver{posts: []models.Post{{Slug: "only"}}}, submitter, testSite(), logger.NewNop())
	router := newIndexNowRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/indexnow", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pukadigital/content-hub/internal/config"
	"github.com/pukadigital/content-hub/internal/indexnow"
	"github.com/pukadigital/content-hub/internal/logger"
)

// URLSubmitter notifies search engines about changed URLs.
type URLSubmitter interface {
	Submit(ctx context.Context, urls []string) error
	IsEnabled() bool
}

type IndexNowHandler struct {
	resolver  ContentResolver
	submitter URLSubmitter
	site      config.SiteConfig
	logger    logger.Logger
}

func NewIndexNowHandler(
	resolver ContentResolver,
	submitter URLSubmitter,
	site config.SiteConfig,
	log logger.Logger,
) *IndexNowHandler {
	return &IndexNowHandler{
		resolver:  resolver,
		submitter: submitter,
		site:      site,
		logger:    log,
	}
}

type indexNowRequest struct {
	URLs []string `json:"urls"`
}

// Submit pushes the requested URLs to the IndexNow endpoint. With an
// empty request body it submits the site root, the blog index and every
// currently resolvable post URL.
func (h *IndexNowHandler) Submit(c *gin.Context) {
	if !h.submitter.IsEnabled() {
		c.JSON(http.StatusOK, gin.H{
			"submitted": false,
			"reason":    "indexnow disabled",
		})
		return
	}

	var req indexNowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	urls := req.URLs
	if len(urls) == 0 {
		urls = h.collectSiteURLs(c.Request.Context())
	}

	if err := h.submitter.Submit(c.Request.Context(), urls); err != nil {
		if errors.Is(err, indexnow.ErrCircuitOpen) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Submission temporarily unavailable"})
			return
		}
		h.logger.Warn("IndexNow submission failed",
			logger.Int("urls", len(urls)),
			logger.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Submission failed"})
		return
	}

	h.logger.Info("IndexNow submission accepted",
		logger.Int("urls", len(urls)),
	)
	c.JSON(http.StatusAccepted, gin.H{
		"submitted": true,
		"count":     len(urls),
	})
}

func (h *IndexNowHandler) collectSiteURLs(ctx context.Context) []string {
	urls := []string{
		h.site.BaseURL + "/",
		h.site.BaseURL + "/blog",
	}

	posts, _ := h.resolver.GetAllPosts(ctx, feedPostLimit)
	for _, post := range posts {
		urls = append(urls, h.site.BaseURL+"/blog/"+post.Slug)
	}
	return urls
}

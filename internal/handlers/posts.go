package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pukadigital/content-hub/internal/cache"
	"github.com/pukadigital/content-hub/internal/config"
	"github.com/pukadigital/content-hub/internal/logger"
	"github.com/pukadigital/content-hub/internal/models"
)

// ContentResolver is the caller-facing contract of the resolution layer.
// These two operations are the only entry points page-rendering code,
// the feed builders and IndexNow submission are permitted to depend on.
type ContentResolver interface {
	GetAllPosts(ctx context.Context, limit int) ([]models.Post, models.ResolutionStatus)
	GetPostBySlug(ctx context.Context, slug string) (models.Post, error)
	Status() (models.ResolutionStatus, bool)
}

type PostsHandler struct {
	resolver     ContentResolver
	cache        cache.Store
	site         config.SiteConfig
	defaultLimit int
	logger       logger.Logger
}

func NewPostsHandler(
	resolver ContentResolver,
	cacheStore cache.Store,
	site config.SiteConfig,
	defaultLimit int,
	log logger.Logger,
) *PostsHandler {
	return &PostsHandler{
		resolver:     resolver,
		cache:        cacheStore,
		site:         site,
		defaultLimit: defaultLimit,
		logger:       log,
	}
}

// List serves the blog listing. It never fails: a degraded backend still
// renders the fallback dataset.
func (h *PostsHandler) List(c *gin.Context) {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	posts, status := h.resolver.GetAllPosts(c.Request.Context(), limit)

	c.JSON(http.StatusOK, gin.H{
		"posts":  posts,
		"count":  len(posts),
		"status": status,
	})
}

// GetBySlug serves a single post, or a 404 when neither the remote
// source nor the fallback dataset has it.
func (h *PostsHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.resolver.GetPostBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, models.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
			return
		}
		h.logger.Debug("Post not found",
			logger.String("slug", slug),
		)
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// Status reports the most recent resolution outcome and cache counters.
func (h *PostsHandler) Status(c *gin.Context) {
	body := gin.H{"cache": h.cache.Stats()}

	if status, known := h.resolver.Status(); known {
		body["resolution"] = status
	} else {
		body["resolution"] = nil
	}

	c.JSON(http.StatusOK, body)
}

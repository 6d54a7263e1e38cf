package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pukadigital/content-hub/internal/config"
	"github.com/pukadigital/content-hub/internal/handlers"
	"github.com/pukadigital/content-hub/internal/logger"
	"github.com/pukadigital/content-hub/internal/telemetry"
)

const corsMaxAgeHours = 12

// Deps bundles everything the router needs wired in.
type Deps struct {
	Posts    *handlers.PostsHandler
	IndexNow *handlers.IndexNowHandler
	Metrics  *telemetry.Metrics
	Logger   logger.Logger
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "accept", "origin", "Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	// Middleware
	router.Use(ginLogger(deps.Logger))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(telemetry.Handler()))
	}

	// Crawl surfaces
	router.GET("/sitemap.xml", deps.Posts.Sitemap)
	router.GET("/rss.xml", deps.Posts.RSS)

	// API v1
	v1 := router.Group("/api/v1")
	v1.GET("/posts", deps.Posts.List)
	v1.GET("/posts/:slug", deps.Posts.GetBySlug)
	v1.GET("/status", deps.Posts.Status)

	if deps.IndexNow != nil {
		v1.POST("/indexnow", deps.IndexNow.Submit)
	}

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}

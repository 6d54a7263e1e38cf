package bootstrap

import (
	"github.com/pukadigital/content-hub/internal/api"
	"github.com/pukadigital/content-hub/internal/cache"
	"github.com/pukadigital/content-hub/internal/config"
	"github.com/pukadigital/content-hub/internal/fallback"
	"github.com/pukadigital/content-hub/internal/gateway"
	"github.com/pukadigital/content-hub/internal/handlers"
	"github.com/pukadigital/content-hub/internal/indexnow"
	"github.com/pukadigital/content-hub/internal/logger"
	"github.com/pukadigital/content-hub/internal/resolver"
	"github.com/pukadigital/content-hub/internal/telemetry"
)

// SetupGateway creates the remote content API client.
func SetupGateway(cfg *config.Config, log logger.Logger) *gateway.Client {
	return gateway.NewClient(gateway.Config{
		BaseURL: cfg.Content.APIBaseURL,
		Timeout: cfg.Content.GatewayTimeout,
	}, log)
}

// SetupFallback builds the static backup dataset.
func SetupFallback(log logger.Logger) *fallback.Store {
	store := fallback.NewStore(fallback.DefaultPosts())
	log.Info("Fallback dataset loaded",
		logger.Int("posts", store.Len()),
	)
	return store
}

// SetupHTTPServer creates and configures the HTTP server.
func SetupHTTPServer(
	cfg *config.Config,
	res *resolver.Resolver,
	store cache.Store,
	metrics *telemetry.Metrics,
	log logger.Logger,
) *api.Server {
	posts := handlers.NewPostsHandler(res, store, cfg.Site, cfg.Content.DefaultLimit, log)

	key := cfg.IndexNow.Key
	if !cfg.IndexNow.Enabled {
		key = ""
	}
	client := indexnow.NewClient(indexnow.Config{
		Endpoint: cfg.IndexNow.Endpoint,
		Key:      key,
		SiteURL:  cfg.Site.BaseURL,
	})
	submitter := handlers.NewIndexNowHandler(res, client, cfg.Site, log)

	return api.NewServer(cfg, api.Deps{
		Posts:    posts,
		IndexNow: submitter,
		Metrics:  metrics,
		Logger:   log,
	})
}

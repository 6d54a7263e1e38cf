// Package resolver is the single entry point callers use to obtain
// posts. It orchestrates the remote gateway, the revalidation cache and
// the local fallback store, and owns the fallback policy.
package resolver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pukadigital/content-hub/internal/cache"
	"github.com/pukadigital/content-hub/internal/events"
	"github.com/pukadigital/content-hub/internal/gateway"
	"github.com/pukadigital/content-hub/internal/logger"
	"github.com/pukadigital/content-hub/internal/models"
	"github.com/pukadigital/content-hub/internal/telemetry"
)

// Gateway fetches posts from the remote content API.
type Gateway interface {
	FetchPosts(ctx context.Context, tenant string, limit int) ([]models.Post, error)
	FetchPostBySlug(ctx context.Context, tenant, slug string) (models.Post, error)
}

// FallbackStore serves the static backup dataset.
type FallbackStore interface {
	All() []models.Post
	BySlug(slug string) (models.Post, bool)
}

// Config assembles a Resolver. Gateway, Fallback and Cache are injected
// so tests can substitute all three without global state.
type Config struct {
	Tenant    string
	Gateway   Gateway
	Fallback  FallbackStore
	Cache     cache.Store
	Publisher *events.Publisher  // optional
	Metrics   *telemetry.Metrics // optional
	Logger    logger.Logger
}

// Resolver resolves content requests with remote-first, fallback-second
// semantics. Safe for concurrent use.
type Resolver struct {
	tenant    string
	gateway   Gateway
	fallback  FallbackStore
	cache     cache.Store
	publisher *events.Publisher
	metrics   *telemetry.Metrics
	log       logger.Logger

	mu          sync.Mutex
	lastStatus  models.ResolutionStatus
	statusKnown bool
}

// New creates a Resolver from cfg.
func New(cfg Config) *Resolver {
	return &Resolver{
		tenant:    cfg.Tenant,
		gateway:   cfg.Gateway,
		fallback:  cfg.Fallback,
		cache:     cfg.Cache,
		publisher: cfg.Publisher,
		metrics:   cfg.Metrics,
		log:       cfg.Logger,
	}
}

// GetAllPosts returns up to limit posts and the status describing which
// source satisfied the request. It is total: any gateway failure, and a
// successful but empty remote response, degrade to the full fallback
// dataset instead of an error.
//
// limit == 0 is answered with an empty remote-path list: no network
// call is made and the fallback store is not consulted.
func (r *Resolver) GetAllPosts(ctx context.Context, limit int) ([]models.Post, models.ResolutionStatus) {
	if limit == 0 {
		return []models.Post{}, models.ResolutionStatus{
			IsConnected: false,
			Source:      models.SourceRemote,
		}
	}

	key := cache.ListKey(r.tenant, limit)
	if posts, ok := r.cache.Get(ctx, key); ok {
		r.metrics.RecordCacheEvent("hit")
		// Only successful gateway responses are cached, so a hit is
		// always a remote-sourced result.
		return posts, models.ResolutionStatus{
			IsConnected: true,
			Source:      models.SourceRemote,
		}
	}
	r.metrics.RecordCacheEvent("miss")

	start := time.Now()
	posts, err := r.gateway.FetchPosts(ctx, r.tenant, limit)
	latency := time.Since(start)
	r.metrics.ObserveGatewayDuration(latency)

	switch {
	case err != nil:
		r.metrics.RecordGatewayFailure(gateway.FailureReason(err))
		r.log.Warn("Remote content fetch failed, serving fallback",
			logger.String("tenant", r.tenant),
			logger.Int("limit", limit),
			logger.Duration("latency", latency),
			logger.Error(err),
		)
		return r.resolveListFallback(latency, err.Error())

	case len(posts) == 0:
		// An empty but healthy CMS is indistinguishable from a
		// misconfigured tenant here, so it degrades like an outage.
		r.log.Warn("Remote content source returned no posts, serving fallback",
			logger.String("tenant", r.tenant),
			logger.Int("limit", limit),
		)
		return r.resolveListFallback(latency, "remote source returned no posts")
	}

	for i := range posts {
		posts[i].Source = models.SourceRemote
	}
	r.cache.Set(ctx, key, posts)
	r.metrics.RecordResolution(string(models.SourceRemote))

	status := models.ResolutionStatus{
		IsConnected: true,
		Source:      models.SourceRemote,
		LatencyMs:   latency.Milliseconds(),
	}
	r.updateStatus(status, "")

	return posts, status
}

// GetPostBySlug resolves one post: gateway first, fallback second. It is
// the one operation allowed to fail, since callers need to distinguish a
// missing post from a degraded system. Gateway diagnostics are absorbed;
// the caller only ever sees ErrNotFound or ErrInvalidArgument.
func (r *Resolver) GetPostBySlug(ctx context.Context, slug string) (models.Post, error) {
	if slug == "" {
		return models.Post{}, models.ErrInvalidArgument
	}

	key := cache.PostKey(r.tenant, slug)
	if posts, ok := r.cache.Get(ctx, key); ok && len(posts) == 1 {
		r.metrics.RecordCacheEvent("hit")
		return posts[0], nil
	}
	r.metrics.RecordCacheEvent("miss")

	start := time.Now()
	post, err := r.gateway.FetchPostBySlug(ctx, r.tenant, slug)
	r.metrics.ObserveGatewayDuration(time.Since(start))

	if err == nil {
		post.Source = models.SourceRemote
		r.cache.Set(ctx, key, []models.Post{post})
		r.metrics.RecordResolution(string(models.SourceRemote))
		return post, nil
	}

	if errors.Is(err, models.ErrInvalidArgument) {
		return models.Post{}, err
	}
	if !errors.Is(err, models.ErrNotFound) {
		r.metrics.RecordGatewayFailure(gateway.FailureReason(err))
		r.log.Warn("Remote post lookup failed, trying fallback",
			logger.String("tenant", r.tenant),
			logger.String("slug", slug),
			logger.Error(err),
		)
	}

	if post, ok := r.fallback.BySlug(slug); ok {
		r.metrics.RecordResolution(string(models.SourceFallback))
		return post, nil
	}

	return models.Post{}, models.ErrNotFound
}

// Status returns the status of the most recent fresh list resolution.
// ok is false until the first list request has been served.
func (r *Resolver) Status() (models.ResolutionStatus, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastStatus, r.statusKnown
}

func (r *Resolver) resolveListFallback(latency time.Duration, reason string) ([]models.Post, models.ResolutionStatus) {
	posts := r.fallback.All()
	r.metrics.RecordResolution(string(models.SourceFallback))

	status := models.ResolutionStatus{
		IsConnected: false,
		Source:      models.SourceFallback,
		LatencyMs:   latency.Milliseconds(),
	}
	r.updateStatus(status, reason)

	return posts, status
}

// updateStatus records the latest fresh resolution and publishes an
// event when connectivity flips. Cache hits never reach here, so events
// reflect actual gateway observations.
func (r *Resolver) updateStatus(status models.ResolutionStatus, reason string) {
	r.mu.Lock()
	prevKnown := r.statusKnown
	prevConnected := r.lastStatus.IsConnected
	r.lastStatus = status
	r.statusKnown = true
	r.mu.Unlock()

	if !status.IsConnected && (!prevKnown || prevConnected) {
		r.publisher.PublishAsync(events.ResolutionEvent{
			EventType: events.ResolutionDegraded,
			Tenant:    r.tenant,
			Source:    status.Source,
			LatencyMs: status.LatencyMs,
			Reason:    reason,
		})
		return
	}

	if status.IsConnected && prevKnown && !prevConnected {
		r.publisher.PublishAsync(events.ResolutionEvent{
			EventType: events.ResolutionRecovered,
			Tenant:    r.tenant,
			Source:    status.Source,
			LatencyMs: status.LatencyMs,
		})
	}
}

// Package cache provides the revalidation-window cache layered over the
// remote content gateway. It is an optimization only: a miss or an
// expired entry always means a fresh gateway attempt, and no correctness
// depends on it.
package cache

import (
	"context"
	"fmt"

	"github.com/pukadigital/content-hub/internal/models"
)

// Store caches resolved post lists keyed by the exact request
// parameters. Single posts are stored as one-element lists.
type Store interface {
	// Get returns the cached posts for key, or ok=false on miss/expiry.
	Get(ctx context.Context, key string) (posts []models.Post, ok bool)
	// Set stores posts under key for the store's revalidation window.
	Set(ctx context.Context, key string, posts []models.Post)
	// Stats reports hit/miss counters for the status endpoint.
	Stats() Stats
}

// Stats holds cache counters. Expired entries count as misses too.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Expired int64 `json:"expired"`
	Entries int   `json:"entries"`
}

// ListKey builds the cache key for a tenant-scoped list request.
func ListKey(tenant string, limit int) string {
	return fmt.Sprintf("posts:%s:limit:%d", tenant, limit)
}

// PostKey builds the cache key for a tenant-scoped slug lookup.
func PostKey(tenant, slug string) string {
	return fmt.Sprintf("posts:%s:slug:%s", tenant, slug)
}

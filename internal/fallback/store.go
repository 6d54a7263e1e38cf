// Package fallback holds the hand-curated posts served when the remote
// content API is unreachable. The store is read-only for the life of the
// process, so unsynchronized concurrent reads are safe.
package fallback

import "github.com/pukadigital/content-hub/internal/models"

// Store serves the static backup dataset. Pure and synchronous: no I/O,
// no failure modes.
type Store struct {
	posts  []models.Post
	bySlug map[string]models.Post
}

// NewStore seeds a store from a static dataset. Posts are normalized and
// tagged source=fallback once, at construction.
func NewStore(posts []models.Post) *Store {
	tagged := make([]models.Post, 0, len(posts))
	bySlug := make(map[string]models.Post, len(posts))
	for _, post := range posts {
		if post.Slug == "" {
			continue
		}
		post.Normalize()
		post.Source = models.SourceFallback
		tagged = append(tagged, post)
		bySlug[post.Slug] = post
	}
	return &Store{posts: tagged, bySlug: bySlug}
}

// All returns every fallback post, tagged source=fallback.
func (s *Store) All() []models.Post {
	posts := make([]models.Post, len(s.posts))
	copy(posts, s.posts)
	return posts
}

// BySlug returns the fallback post for slug, if present.
func (s *Store) BySlug(slug string) (models.Post, bool) {
	post, ok := s.bySlug[slug]
	return post, ok
}

// Len reports how many posts the store holds.
func (s *Store) Len() int {
	return len(s.posts)
}

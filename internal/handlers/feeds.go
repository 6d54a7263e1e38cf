package handlers

import (
	"encoding/xml"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"

	"github.com/pukadigital/content-hub/internal/logger"
)

const feedPostLimit = 20

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders the XML sitemap from the current post listing. The
// hybrid resolution layer guarantees a usable listing even degraded, so
// the sitemap is always complete.
func (h *PostsHandler) Sitemap(c *gin.Context) {
	posts, _ := h.resolver.GetAllPosts(c.Request.Context(), feedPostLimit)

	urls := []sitemapURL{
		{Loc: h.site.BaseURL + "/", ChangeFreq: "daily", Priority: "1.0"},
		{Loc: h.site.BaseURL + "/blog", ChangeFreq: "daily", Priority: "0.8"},
	}
	for _, post := range posts {
		entry := sitemapURL{
			Loc:        h.site.BaseURL + "/blog/" + post.Slug,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		}
		if published := post.PublishedAt(); !published.IsZero() {
			entry.LastMod = published.Format("2006-01-02")
		}
		urls = append(urls, entry)
	}

	body, err := xml.MarshalIndent(sitemapURLSet{URLs: urls}, "", "  ")
	if err != nil {
		h.logger.Error("Failed to render sitemap",
			logger.Error(err),
		)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), body...))
}

// RSS renders the blog feed from the current post listing.
func (h *PostsHandler) RSS(c *gin.Context) {
	posts, _ := h.resolver.GetAllPosts(c.Request.Context(), feedPostLimit)

	feed := &feeds.Feed{
		Title:       h.site.Title,
		Link:        &feeds.Link{Href: h.site.BaseURL},
		Description: h.site.Description,
	}

	for _, post := range posts {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       post.Title,
			Link:        &feeds.Link{Href: h.site.BaseURL + "/blog/" + post.Slug},
			Description: post.Excerpt,
			Content:     post.Content,
			Created:     post.PublishedAt(),
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		h.logger.Error("Failed to render RSS feed",
			logger.Error(err),
		)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

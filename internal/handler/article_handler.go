package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naijatruths892-ship-it/Naija-truths/internal/feed"
	"github.com/naijatruths892-ship-it/Naija-truths/internal/model"
	"github.com/naijatruths892-ship-it/Naija-truths/internal/repository"
	"github.com/naijatruths892-ship-it/Naija-truths/pkg/retry"
)

// ArticleStore is the reader-facing slice of the article repository.
type ArticleStore interface {
	FetchPage(ctx context.Context, q feed.PageQuery) ([]model.Article, error)
	GetByID(ctx context.Context, id string) (*model.Article, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) error
	SearchPrefix(ctx context.Context, field, value string, limit int) ([]model.Article, error)
}

// ArticleCache fronts single-article point reads. A nil-safe no-op
// implementation is fine; the cache only ever saves a read.
type ArticleCache interface {
	Get(ctx context.Context, id string) (*model.Article, bool)
	Set(ctx context.Context, a *model.Article)
}

type ArticleHandler struct {
	store ArticleStore
	cache ArticleCache
}

func NewArticleHandler(store ArticleStore, cache ArticleCache) *ArticleHandler {
	return &ArticleHandler{store: store, cache: cache}
}

func (h *ArticleHandler) GetLatestFeed(c *gin.Context) {
	h.feedPage(c, feed.LatestQuery)
}

func (h *ArticleHandler) GetBreakingFeed(c *gin.Context) {
	h.feedPage(c, feed.BreakingQuery)
}

func (h *ArticleHandler) GetPoliticsFeed(c *gin.Context) {
	h.feedPage(c, feed.PoliticsQuery)
}

func (h *ArticleHandler) GetCategoryFeed(c *gin.Context) {
	slug := c.Param("slug")
	if !knownCategory(slug) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown section"})
		return
	}
	h.feedPage(c, feed.CategoryQuery(slug))
}

// feedPage runs one page of a feed. Each request gets its own
// controller resumed at the cursor the client sent back, so feeds for
// different clients and sections never share state.
func (h *ArticleHandler) feedPage(c *gin.Context, build feed.Builder) {
	after, err := feed.DecodeCursor(c.Query("cursor"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cursor"})
		return
	}

	ctrl := feed.NewController(h.store, build)
	ctrl.Resume(after)

	page, err := ctrl.LoadNextPage(c.Request.Context())
	if err != nil {
		slog.Error("error loading feed page", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := FeedResponse{
		Articles: toArticleResponses(page.Items),
		HasMore:  page.HasMore,
		Empty:    page.First && len(page.Items) == 0,
	}
	if page.HasMore {
		res.NextCursor = feed.EncodeCursor(ctrl.Cursor())
	}
	c.JSON(http.StatusOK, res)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	article, cached := h.cache.Get(ctx, id)
	if !cached {
		var err error
		article, err = retry.Do(ctx, retry.DefaultAttempts, retry.DefaultDelay, func(ctx context.Context) (*model.Article, error) {
			return h.store.GetByID(ctx, id)
		})
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		if err != nil {
			slog.Error("error fetching article", "error", err, "article_id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		h.cache.Set(ctx, article)
	}

	// Views are best effort; a failed increment never hides the page.
	if err := h.store.IncrementViews(ctx, id); err != nil {
		slog.Warn("error incrementing views", "error", err, "article_id", id)
	} else {
		article.Views++
	}

	c.JSON(http.StatusOK, toArticleResponse(*article))
}

func (h *ArticleHandler) LikeArticle(c *gin.Context) {
	id := c.Param("id")

	err := h.store.IncrementLikes(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		slog.Error("error incrementing likes", "error", err, "article_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "liked"})
}

func (h *ArticleHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	articles, err := feed.SearchMerge(c.Request.Context(), h.store, q, feed.SearchLimit)
	if err != nil {
		slog.Error("error searching articles", "error", err, "query", q)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Articles: toArticleResponses(articles),
		Count:    len(articles),
	})
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	_, err := h.store.FetchPage(c.Request.Context(), feed.PageQuery{
		Collection: feed.ArticlesCollection,
		OrderBy:    "created_at",
		Descending: true,
		Limit:      1,
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func knownCategory(slug string) bool {
	for _, c := range model.Categories {
		if c == slug {
			return true
		}
	}
	return false
}

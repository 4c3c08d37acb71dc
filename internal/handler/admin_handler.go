package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/naijatruths892-ship-it/Naija-truths/internal/feed"
	"github.com/naijatruths892-ship-it/Naija-truths/internal/model"
	"github.com/naijatruths892-ship-it/Naija-truths/internal/repository"
	"github.com/naijatruths892-ship-it/Naija-truths/pkg/llm"
)

// AdminStore is the authoring/moderation slice of the article
// repository.
type AdminStore interface {
	Create(ctx context.Context, a *model.Article) error
	Update(ctx context.Context, id string, a *model.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Article, error)
	FetchPage(ctx context.Context, q feed.PageQuery) ([]model.Article, error)
	SearchPrefix(ctx context.Context, field, value string, limit int) ([]model.Article, error)
	SearchDateRange(ctx context.Context, from, to time.Time, limit int) ([]model.Article, error)
}

// CommentPurger cascades an article deletion to its comment tree.
type CommentPurger interface {
	DeleteByArticle(ctx context.Context, articleID string) error
}

// CacheInvalidator drops a cached article after an edit or delete.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, id string)
}

type AdminHandler struct {
	store     AdminStore
	comments  CommentPurger
	cache     CacheInvalidator
	assistant llm.SummaryClient
}

func NewAdminHandler(store AdminStore, comments CommentPurger, cache CacheInvalidator, assistant llm.SummaryClient) *AdminHandler {
	return &AdminHandler{store: store, comments: comments, cache: cache, assistant: assistant}
}

func (h *AdminHandler) CreateArticle(c *gin.Context) {
	var in model.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	// Reject bad input before any database call.
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article := in.Article()
	if err := h.store.Create(c.Request.Context(), article); err != nil {
		slog.Error("error creating article", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	slog.Info("article created", "article_id", article.ID, "category", article.Category)
	c.JSON(http.StatusCreated, toArticleResponse(*article))
}

func (h *AdminHandler) UpdateArticle(c *gin.Context) {
	id := c.Param("id")

	var in model.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.store.Update(c.Request.Context(), id, in.Article())
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		slog.Error("error updating article", "error", err, "article_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	err := h.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		slog.Error("error deleting article", "error", err, "article_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := h.comments.DeleteByArticle(ctx, id); err != nil {
		// The article is gone; orphaned comments are a cleanup
		// problem, not a failed delete.
		slog.Error("error purging comments", "error", err, "article_id", id)
	}
	h.cache.Invalidate(ctx, id)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *AdminHandler) ListArticles(c *gin.Context) {
	after, err := feed.DecodeCursor(c.Query("cursor"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cursor"})
		return
	}

	ctrl := feed.NewController(h.store, feed.AdminListQuery)
	ctrl.Resume(after)

	page, err := ctrl.LoadNextPage(c.Request.Context())
	if err != nil {
		slog.Error("error listing articles", "error", err)
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

// SearchArticles looks up articles either by prefix (q) or by an exact
// creation date range (from/to, inclusive dates).
func (h *AdminHandler) SearchArticles(c *gin.Context) {
	ctx := c.Request.Context()

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		to := from
		if toStr := c.Query("to"); toStr != "" {
			to, err = time.Parse("2006-01-02", toStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
				return
			}
		}
		if to.Before(from) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must not precede from"})
			return
		}

		articles, err := h.store.SearchDateRange(ctx, from, to.AddDate(0, 0, 1), feed.AdminListLimit)
		if err != nil {
			slog.Error("error searching by date range", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, SearchResponse{Articles: toArticleResponses(articles), Count: len(articles)})
		return
	}

	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	articles, err := feed.SearchMerge(ctx, h.store, q, feed.AdminListLimit)
	if err != nil {
		slog.Error("error searching articles", "error", err, "query", q)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, SearchResponse{Articles: toArticleResponses(articles), Count: len(articles)})
}

func (h *AdminHandler) SuggestSummary(c *gin.Context) {
	if h.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Summary assistant not configured"})
		return
	}

	id := c.Param("id")
	article, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		slog.Error("error fetching article", "error", err, "article_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	result, err := h.assistant.SuggestSummary(llm.SuggestInput{Title: article.Title, Content: article.Content})
	if err != nil {
		slog.Error("error suggesting summary", "error", err, "article_id", id)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Summary assistant error"})
		return
	}

	c.JSON(http.StatusOK, SuggestSummaryResponse{
		Summary:   result.Summary,
		ModelUsed: result.ModelUsed,
	})
}

package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/naijatruths892-ship-it/Naija-truths/internal/model"
)

const (
	articleCachePrefix = "naijatruths:article:"
	articleCacheTTL    = 5 * time.Minute
)

// ArticleCache is a read-through Redis cache for single-article
// lookups. Cache trouble is never surfaced to readers; a miss or a
// Redis error just falls back to the database.
type ArticleCache struct {
	rdb *redis.Client
}

func NewArticleCache(rdb *redis.Client) *ArticleCache {
	return &ArticleCache{rdb: rdb}
}

func (c *ArticleCache) Get(ctx context.Context, id string) (*model.Article, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, articleCachePrefix+id).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("article cache read failed", "article_id", id, "error", err)
		return nil, false
	}

	var a model.Article
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		slog.Warn("article cache entry corrupt", "article_id", id, "error", err)
		return nil, false
	}
	return &a, true
}

func (c *ArticleCache) Set(ctx context.Context, a *model.Article) {
	if c == nil || c.rdb == nil || a == nil {
		return
	}

	raw, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, articleCachePrefix+a.ID, raw, articleCacheTTL).Err(); err != nil {
		slog.Warn("article cache write failed", "article_id", a.ID, "error", err)
	}
}

func (c *ArticleCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, articleCachePrefix+id).Err(); err != nil {
		slog.Warn("article cache invalidation failed", "article_id", id, "error", err)
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/naijatruths892-ship-it/Naija-truths/internal/feed"
	"github.com/naijatruths892-ship-it/Naija-truths/internal/model"
	"github.com/naijatruths892-ship-it/Naija-truths/internal/repository"
)

type fakeStore struct {
	pages    [][]model.Article
	pageCall int
	article  *model.Article
	byField  map[string][]model.Article
	err      error

	likedID  string
	viewedID string
}

func (f *fakeStore) FetchPage(ctx context.Context, q feed.PageQuery) ([]model.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.pageCall >= len(f.pages) {
		return []model.Article{}, nil
	}
	page := f.pages[f.pageCall]
	f.pageCall++
	return page, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*model.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.article == nil || f.article.ID != id {
		return nil, repository.ErrNotFound
	}
	copied := *f.article
	return &copied, nil
}

func (f *fakeStore) IncrementViews(ctx context.Context, id string) error {
	f.viewedID = id
	return nil
}

func (f *fakeStore) IncrementLikes(ctx context.Context, id string) error {
	if f.article == nil || f.article.ID != id {
		return repository.ErrNotFound
	}
	f.likedID = id
	return nil
}

func (f *fakeStore) SearchPrefix(ctx context.Context, field, value string, limit int) ([]model.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byField[field], nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, id string) (*model.Article, bool) { return nil, false }
func (noopCache) Set(ctx context.Context, a *model.Article)                 {}

func newTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewArticleHandler(store, noopCache{})
	r.GET("/feed/latest", h.GetLatestFeed)
	r.GET("/feed/politics", h.GetPoliticsFeed)
	r.GET("/feed/category/:slug", h.GetCategoryFeed)
	r.GET("/articles/:id", h.GetArticle)
	r.POST("/articles/:id/like", h.LikeArticle)
	r.GET("/search", h.Search)
	r.GET("/health", h.GetHealth)
	return r
}

func sixArticles() []model.Article {
	base := time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC)
	out := make([]model.Article, 6)
	for i := range out {
		out[i] = model.Article{
			ID:        string(rune('a' + i)),
			Title:     "Senate passes appropriation bill",
			Category:  model.CategoryPolitics,
			CreatedAt: base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}

func TestGetLatestFeed_FullPage(t *testing.T) {
	store := &fakeStore{pages: [][]model.Article{sixArticles()}}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/feed/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res FeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 6, len(res.Articles))
	assert.Equal(t, true, res.HasMore)
	assert.NotEqual(t, "", res.NextCursor)
	assert.Equal(t, false, res.Empty)
}

func TestGetLatestFeed_CursorRoundTrip(t *testing.T) {
	first := sixArticles()
	second := []model.Article{{
		ID:        "g",
		Title:     "NNPC announces refinery restart date",
		CreatedAt: time.Date(2026, 8, 9, 8, 0, 0, 0, time.UTC),
	}}
	store := &fakeStore{pages: [][]model.Article{first, second}}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/feed/latest", nil))
	var page1 FeedResponse
	json.Unmarshal(w.Body.Bytes(), &page1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/feed/latest?cursor="+page1.NextCursor, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var page2 FeedResponse
	json.Unmarshal(w.Body.Bytes(), &page2)
	assert.Equal(t, 1, len(page2.Articles))
	assert.Equal(t, false, page2.HasMore)
	assert.Equal(t, "", page2.NextCursor)
	assert.Equal(t, false, page2.Empty)
}

func TestGetLatestFeed_EmptyFirstPage(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/feed/latest", nil))

	var res FeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0, len(res.Articles))
	assert.Equal(t, true, res.Empty)
	assert.Equal(t, false, res.HasMore)
}

func TestGetLatestFeed_InvalidCursor(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/feed/latest?cursor=%21%21bogus", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCategoryFeed_UnknownSection(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/feed/category/gossip", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArticle_Found(t *testing.T) {
	store := &fakeStore{article: &model.Article{
		ID:        "art-1",
		Title:     "Lagos unveils new rail line",
		Views:     41,
		CreatedAt: time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC),
	}}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/articles/art-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var res ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Lagos unveils new rail line", res.Title)
	assert.Equal(t, int64(42), res.Views) // view counted on read
	assert.Equal(t, "art-1", store.viewedID)
	assert.Equal(t, "2026-08-12T10:00:00Z", res.PublishedAt)
}

func TestGetArticle_MissingTimestampRendersPlaceholder(t *testing.T) {
	store := &fakeStore{article: &model.Article{ID: "art-2", Title: "Undated wire story goes out"}}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/articles/art-2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var res ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, DateUnavailable, res.PublishedAt)
}

func TestLikeArticle(t *testing.T) {
	store := &fakeStore{article: &model.Article{ID: "art-1"}}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/articles/art-1/like", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "art-1", store.likedID)
}

func TestLikeArticle_NotFound(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/articles/ghost/like", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearch_MergesTitleAndWriter(t *testing.T) {
	store := &fakeStore{byField: map[string][]model.Article{
		feed.FieldTitleLower: {{ID: "a"}, {ID: "b"}},
		feed.FieldWriter:     {{ID: "b"}, {ID: "c"}},
	}}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/search?q=abuja", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var res SearchResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 3, res.Count)
}

func TestSearch_MissingQuery(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/search", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHealth_Unhealthy(t *testing.T) {
	store := &fakeStore{err: errors.New("DB down")}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

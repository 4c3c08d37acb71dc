package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/naijatruths892-ship-it/Naija-truths/internal/model"
)

// memFetcher pages over an in-memory article list the way the store
// does: newest first, resuming strictly after the cursor.
type memFetcher struct {
	articles []model.Article
	calls    int
	failNext int
	failErr  error
}

func (f *memFetcher) FetchPage(ctx context.Context, q PageQuery) ([]model.Article, error) {
	f.calls++
	if f.failNext > 0 {
		f.failNext--
		return nil, f.failErr
	}

	var out []model.Article
	for _, a := range f.articles {
		if q.Equality != nil && q.Equality.Field == "category" && a.Category != q.Equality.Value {
			continue
		}
		if q.After != nil {
			if a.CreatedAt.After(q.After.LastCreatedAt) {
				continue
			}
			if a.CreatedAt.Equal(q.After.LastCreatedAt) && a.ID >= q.After.LastID {
				continue
			}
		}
		out = append(out, a)
		if len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func makeArticles(n int) []model.Article {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	articles := make([]model.Article, 0, n)
	// Newest first, matching the store's descending order.
	for i := n; i >= 1; i-- {
		articles = append(articles, model.Article{
			ID:        fmt.Sprintf("a%03d", i),
			Title:     fmt.Sprintf("Article %d", i),
			Category:  model.CategoryPolitics,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return articles
}

func newTestController(f Fetcher, build Builder) *Controller {
	c := NewController(f, build)
	c.SetRetryPolicy(3, 0)
	return c
}

func TestLoadNextPage_CoversAllItemsOnce(t *testing.T) {
	for _, total := range []int{0, 1, 5, 6, 7, 12, 13, 20} {
		fetcher := &memFetcher{articles: makeArticles(total)}
		ctrl := newTestController(fetcher, LatestQuery)

		seen := map[string]bool{}
		pages := 0
		for {
			page, err := ctrl.LoadNextPage(context.Background())
			assert.Equal(t, nil, err)
			if len(page.Items) > 0 {
				pages++
			}
			for _, a := range page.Items {
				if seen[a.ID] {
					t.Fatalf("total=%d: item %s returned twice", total, a.ID)
				}
				seen[a.ID] = true
			}
			if !page.HasMore {
				break
			}
		}

		wantPages := (total + FeedPageSize - 1) / FeedPageSize
		assert.Equal(t, wantPages, pages)
		assert.Equal(t, total, len(seen))
		assert.Equal(t, StateExhausted, ctrl.State())
	}
}

func TestLoadNextPage_DescendingOrder(t *testing.T) {
	fetcher := &memFetcher{articles: makeArticles(15)}
	ctrl := newTestController(fetcher, LatestQuery)

	var all []model.Article
	for {
		page, err := ctrl.LoadNextPage(context.Background())
		assert.Equal(t, nil, err)
		all = append(all, page.Items...)
		if !page.HasMore {
			break
		}
	}

	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Fatalf("items out of order at %d: %v after %v", i, all[i].CreatedAt, all[i-1].CreatedAt)
		}
	}
}

func TestLoadNextPage_EightItemsPageSixEndToEnd(t *testing.T) {
	fetcher := &memFetcher{articles: makeArticles(8)}
	ctrl := newTestController(fetcher, LatestQuery)

	page1, err := ctrl.LoadNextPage(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 6, len(page1.Items))
	assert.Equal(t, true, page1.HasMore)
	assert.Equal(t, true, page1.First)

	page2, err := ctrl.LoadNextPage(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(page2.Items))
	assert.Equal(t, false, page2.HasMore)
	assert.Equal(t, false, page2.First)
	assert.Equal(t, StateExhausted, ctrl.State())

	fetches := fetcher.calls
	page3, err := ctrl.LoadNextPage(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(page3.Items))
	assert.Equal(t, false, page3.HasMore)
	assert.Equal(t, fetches, fetcher.calls) // no-op, nothing fetched
}

func TestLoadNextPage_EmptyFirstPageIsDistinct(t *testing.T) {
	fetcher := &memFetcher{}
	ctrl := newTestController(fetcher, LatestQuery)

	page, err := ctrl.LoadNextPage(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, true, page.First)
	assert.Equal(t, 0, len(page.Items))
	assert.Equal(t, false, page.HasMore)
}

func TestReset_ReproducesFirstPage(t *testing.T) {
	fetcher := &memFetcher{articles: makeArticles(14)}
	ctrl := newTestController(fetcher, LatestQuery)

	first, err := ctrl.LoadNextPage(context.Background())
	assert.Equal(t, nil, err)
	_, err = ctrl.LoadNextPage(context.Background())
	assert.Equal(t, nil, err)

	ctrl.Reset(nil)
	assert.Equal(t, StateIdle, ctrl.State())

	again, err := ctrl.LoadNextPage(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, true, again.First)
	assert.Equal(t, len(first.Items), len(again.Items))
	for i := range first.Items {
		assert.Equal(t, first.Items[i].ID, again.Items[i].ID)
	}
}

func TestReset_SwitchesFilter(t *testing.T) {
	articles := makeArticles(6)
	articles[0].Category = model.CategorySports
	fetcher := &memFetcher{articles: articles}
	ctrl := newTestController(fetcher, LatestQuery)

	page, err := ctrl.LoadNextPage(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 6, len(page.Items))

	ctrl.Reset(CategoryQuery(model.CategorySports))
	page, err = ctrl.LoadNextPage(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(page.Items))
	assert.Equal(t, model.CategorySports, page.Items[0].Category)
}

func TestLoadNextPage_FailureKeepsCursor(t *testing.T) {
	fetcher := &memFetcher{articles: makeArticles(12)}
	ctrl := newTestController(fetcher, LatestQuery)

	page1, err := ctrl.LoadNextPage(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 6, len(page1.Items))

	sentinel := errors.New("connection reset")
	fetcher.failNext = 3 // exhaust all retry attempts
	fetcher.failErr = sentinel

	_, err = ctrl.LoadNextPage(context.Background())
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	assert.Equal(t, StateLoaded, ctrl.State())
	assert.Equal(t, true, ctrl.HasMore())

	// Retrying resumes from the same position, not a stale one.
	page2, err := ctrl.LoadNextPage(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 6, len(page2.Items))
	for _, a := range page2.Items {
		for _, b := range page1.Items {
			assert.NotEqual(t, a.ID, b.ID)
		}
	}
}

func TestLoadNextPage_FailureRetriesBeforeSurfacing(t *testing.T) {
	fetcher := &memFetcher{articles: makeArticles(6), failNext: 2, failErr: errors.New("flaky")}
	ctrl := newTestController(fetcher, LatestQuery)

	page, err := ctrl.LoadNextPage(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 6, len(page.Items))
	assert.Equal(t, 3, fetcher.calls)
}

// blockingFetcher holds a fetch open until released.
type blockingFetcher struct {
	enter   chan struct{}
	release chan struct{}
	result  []model.Article
}

func (f *blockingFetcher) FetchPage(ctx context.Context, q PageQuery) ([]model.Article, error) {
	f.enter <- struct{}{}
	<-f.release
	return f.result, nil
}

func TestLoadNextPage_RejectsConcurrentLoad(t *testing.T) {
	fetcher := &blockingFetcher{
		enter:   make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	ctrl := newTestController(fetcher, LatestQuery)

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.LoadNextPage(context.Background())
		done <- err
	}()
	<-fetcher.enter

	_, err := ctrl.LoadNextPage(context.Background())
	if !errors.Is(err, ErrLoadInProgress) {
		t.Fatalf("expected ErrLoadInProgress, got %v", err)
	}

	close(fetcher.release)
	assert.Equal(t, nil, <-done)
}

func TestReset_SupersedesInFlightLoad(t *testing.T) {
	fetcher := &blockingFetcher{
		enter:   make(chan struct{}, 1),
		release: make(chan struct{}),
		result:  makeArticles(6),
	}
	ctrl := newTestController(fetcher, LatestQuery)

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.LoadNextPage(context.Background())
		done <- err
	}()
	<-fetcher.enter

	ctrl.Reset(nil)
	close(fetcher.release)

	err := <-done
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
	// The stale response must not have advanced the new cursor.
	if ctrl.Cursor() != nil {
		t.Fatalf("stale response moved the cursor: %+v", ctrl.Cursor())
	}
	assert.Equal(t, StateIdle, ctrl.State())
}

package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/naijatruths892-ship-it/Naija-truths/internal/model"
	"github.com/naijatruths892-ship-it/Naija-truths/pkg/retry"
)

// State is the controller's position in its load lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateExhausted
)

var (
	// ErrLoadInProgress is returned when LoadNextPage is called while a
	// page fetch for the same controller is already in flight.
	ErrLoadInProgress = errors.New("feed: load already in progress")

	// ErrSuperseded is returned for a fetch whose result arrived after
	// a Reset; its items were discarded and the cursor was not moved.
	ErrSuperseded = errors.New("feed: load superseded by reset")
)

// Fetcher executes one page query against the article store.
type Fetcher interface {
	FetchPage(ctx context.Context, q PageQuery) ([]model.Article, error)
}

// Page is the result of one LoadNextPage call.
type Page struct {
	Items   []model.Article
	HasMore bool
	// First reports whether this was the first page since the last
	// reset. An empty first page means the feed has no items at all,
	// which callers render differently from running out of pages.
	First bool
}

// Controller drives one logical feed: it owns the pagination cursor,
// builds page queries, runs them through the retry wrapper and hands
// back pages. Loads are serialized; concurrent LoadNextPage calls on
// the same controller fail with ErrLoadInProgress. Each reset bumps a
// generation counter so a response from a superseded fetch can never
// advance the new cursor.
type Controller struct {
	fetcher Fetcher

	mu      sync.Mutex
	build   Builder
	state   State
	cursor  *Cursor
	hasMore bool
	gen     uint64

	attempts int
	delay    time.Duration
}

func NewController(fetcher Fetcher, build Builder) *Controller {
	return &Controller{
		fetcher:  fetcher,
		build:    build,
		state:    StateIdle,
		attempts: retry.DefaultAttempts,
		delay:    retry.DefaultDelay,
	}
}

// SetRetryPolicy overrides the per-fetch retry bounds.
func (c *Controller) SetRetryPolicy(attempts int, delay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts = attempts
	c.delay = delay
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Cursor returns the resume position after the most recent page, nil
// before the first page.
func (c *Controller) Cursor() *Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Resume seeds the cursor so the next load continues after a position
// obtained earlier (for example from a wire token). Only valid before
// the first load or right after a reset.
func (c *Controller) Resume(cur *Cursor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateIdle {
		c.cursor = cur
	}
}

// Reset discards the cursor and, when build is non-nil, switches the
// feed to a new filter. Any in-flight fetch is superseded: its result
// will be discarded when it lands.
func (c *Controller) Reset(build Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if build != nil {
		c.build = build
	}
	c.cursor = nil
	c.hasMore = false
	c.state = StateIdle
	c.gen++
}

// LoadNextPage fetches the next page of the feed. On success the
// cursor advances to the last returned item and HasMore reports
// whether a full page came back. A short page moves the controller to
// Exhausted; further calls are no-ops returning an empty page. When
// the fetch fails after retries the cursor is left where it was and
// the controller returns to Loaded so the same page can be retried.
func (c *Controller) LoadNextPage(ctx context.Context) (Page, error) {
	c.mu.Lock()
	switch c.state {
	case StateLoading:
		c.mu.Unlock()
		return Page{}, ErrLoadInProgress
	case StateExhausted:
		c.mu.Unlock()
		return Page{HasMore: false}, nil
	}

	first := c.cursor == nil
	gen := c.gen
	q := c.build(c.cursor)
	c.state = StateLoading
	c.mu.Unlock()

	items, err := retry.Do(ctx, c.attempts, c.delay, func(ctx context.Context) ([]model.Article, error) {
		return c.fetcher.FetchPage(ctx, q)
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return Page{}, ErrSuperseded
	}

	if err != nil {
		// Cursor untouched: a retried LoadNextPage resumes from the
		// same position instead of skipping or repeating a page.
		c.state = StateLoaded
		c.hasMore = true
		return Page{}, err
	}

	if len(items) > 0 {
		last := items[len(items)-1]
		c.cursor = &Cursor{LastCreatedAt: last.CreatedAt, LastID: last.ID}
	}

	c.hasMore = len(items) == q.Limit
	if c.hasMore {
		c.state = StateLoaded
	} else {
		c.state = StateExhausted
	}

	return Page{Items: items, HasMore: c.hasMore, First: first}, nil
}

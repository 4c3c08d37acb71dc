// Package feed holds the paginated feed machinery: the page query
// description executed by the article store, the cursor it resumes
// from, the feed controller state machine and the search merge.
package feed

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/naijatruths892-ship-it/Naija-truths/internal/model"
)

const ArticlesCollection = "articles"

// Page sizes are fixed per surface.
const (
	FeedPageSize   = 6
	SearchLimit    = 10
	AdminListLimit = 50
)

// prefixUpperBound closes a prefix range: every string starting with
// the prefix sorts at or below prefix + this suffix.
const prefixUpperBound = "\uf8ff"

// Cursor points at the last item of the previously fetched page. It is
// only valid for the exact (collection, filter, ordering) tuple that
// produced it; a reset discards it.
type Cursor struct {
	LastCreatedAt time.Time
	LastID        string
}

// Equality selects documents whose field equals a value.
type Equality struct {
	Field string
	Value any
}

// Prefix selects documents whose string field starts with Value.
type Prefix struct {
	Field string
	Value string
}

// Range returns the lexical bounds that emulate "starts with".
func (p Prefix) Range() (lo, hi string) {
	return p.Value, p.Value + prefixUpperBound
}

// PageQuery describes one filtered, ordered, limited fetch against a
// collection, optionally resuming strictly after a prior page's last
// item. Ordering is always applied before the limit.
type PageQuery struct {
	Collection string
	Equality   *Equality
	Prefix     *Prefix
	OrderBy    string
	Descending bool
	Limit      int
	After      *Cursor
}

// Builder produces the page query for a feed, resuming after the given
// cursor when it is non-nil.
type Builder func(after *Cursor) PageQuery

func LatestQuery(after *Cursor) PageQuery {
	return PageQuery{
		Collection: ArticlesCollection,
		OrderBy:    "created_at",
		Descending: true,
		Limit:      FeedPageSize,
		After:      after,
	}
}

func CategoryQuery(slug string) Builder {
	return func(after *Cursor) PageQuery {
		return PageQuery{
			Collection: ArticlesCollection,
			Equality:   &Equality{Field: "category", Value: slug},
			OrderBy:    "created_at",
			Descending: true,
			Limit:      FeedPageSize,
			After:      after,
		}
	}
}

func PoliticsQuery(after *Cursor) PageQuery {
	return CategoryQuery(model.CategoryPolitics)(after)
}

func BreakingQuery(after *Cursor) PageQuery {
	return PageQuery{
		Collection: ArticlesCollection,
		Equality:   &Equality{Field: "breaking_news", Value: true},
		OrderBy:    "created_at",
		Descending: true,
		Limit:      FeedPageSize,
		After:      after,
	}
}

func AdminListQuery(after *Cursor) PageQuery {
	return PageQuery{
		Collection: ArticlesCollection,
		OrderBy:    "created_at",
		Descending: true,
		Limit:      AdminListLimit,
		After:      after,
	}
}

// EncodeCursor renders a cursor as an opaque wire token. A nil cursor
// encodes to the empty string.
func EncodeCursor(c *Cursor) string {
	if c == nil {
		return ""
	}
	raw := fmt.Sprintf("%d|%s", c.LastCreatedAt.UnixNano(), c.LastID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a wire token produced by EncodeCursor. The empty
// string decodes to a nil cursor (first page).
func DecodeCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("decode cursor: malformed token")
	}
	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	return &Cursor{LastCreatedAt: time.Unix(0, nanos).UTC(), LastID: parts[1]}, nil
}

package feed

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/naijatruths892-ship-it/Naija-truths/internal/model"
)

// Fields the search merge queries.
const (
	FieldTitleLower = "title_lower"
	FieldWriter     = "writer"
)

// Searcher runs one bounded prefix-range query against a single field.
type Searcher interface {
	SearchPrefix(ctx context.Context, field, value string, limit int) ([]model.Article, error)
}

// SearchMerge runs the title and writer prefix queries concurrently
// and merges the results by document id; an id seen in both keeps the
// position of its first appearance. If either query fails the whole
// merge fails and both result sets are discarded. The merge does not
// paginate: each side is a single fetch bounded by limit.
func SearchMerge(ctx context.Context, s Searcher, query string, limit int) ([]model.Article, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []model.Article{}, nil
	}
	if limit <= 0 {
		limit = SearchLimit
	}

	var byTitle, byWriter []model.Article
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byTitle, err = s.SearchPrefix(gctx, FieldTitleLower, q, limit)
		return err
	})
	g.Go(func() error {
		var err error
		byWriter, err = s.SearchPrefix(gctx, FieldWriter, q, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(byTitle)+len(byWriter))
	merged := make([]model.Article, 0, len(byTitle)+len(byWriter))
	for _, a := range byTitle {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		merged = append(merged, a)
	}
	for _, a := range byWriter {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		merged = append(merged, a)
	}
	return merged, nil
}

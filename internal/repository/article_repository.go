package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/naijatruths892-ship-it/Naija-truths/internal/feed"
	"github.com/naijatruths892-ship-it/Naija-truths/internal/model"
)

// ErrNotFound marks a point read whose entity does not exist. It is
// terminal for that entity; the retry wrapper will surface it
// unchanged after exhausting attempts.
var ErrNotFound = errors.New("not found")

const (
	articlesCollection = feed.ArticlesCollection
	commentsCollection = "comments"
	repliesCollection  = "replies"
)

type ArticleRepository struct {
	db *mongo.Database
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(ctx context.Context, a *model.Article) error {
	a.ID = primitive.NewObjectID().Hex()
	a.TitleLower = strings.ToLower(a.Title)
	a.CreatedAt = time.Now().UTC()
	a.Likes = 0
	a.Views = 0

	_, err := r.db.Collection(articlesCollection).InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*model.Article, error) {
	var a model.Article
	err := r.db.Collection(articlesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Update rewrites the editable fields of an article. Counters and the
// creation timestamp are never touched by an edit.
func (r *ArticleRepository) Update(ctx context.Context, id string, a *model.Article) error {
	update := bson.M{"$set": bson.M{
		"title":         a.Title,
		"title_lower":   strings.ToLower(a.Title),
		"writer":        a.Writer,
		"summary":       a.Summary,
		"content":       a.Content,
		"image_url":     a.ImageURL,
		"video_url":     a.VideoURL,
		"category":      a.Category,
		"breaking_news": a.BreakingNews,
		"verified":      a.Verified,
	}}

	res, err := r.db.Collection(articlesCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update article %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Collection(articlesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete article %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) IncrementViews(ctx context.Context, id string) error {
	return r.increment(ctx, id, "views")
}

func (r *ArticleRepository) IncrementLikes(ctx context.Context, id string) error {
	return r.increment(ctx, id, "likes")
}

func (r *ArticleRepository) increment(ctx context.Context, id, field string) error {
	res, err := r.db.Collection(articlesCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: 1}},
	)
	if err != nil {
		return fmt.Errorf("increment %s on %s: %w", field, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FetchPage executes a feed page query: filter, order, limit, and when
// a cursor is present, only items strictly after it under the declared
// ordering (id is the tiebreaker for equal timestamps).
func (r *ArticleRepository) FetchPage(ctx context.Context, q feed.PageQuery) ([]model.Article, error) {
	filter := bson.M{}
	if q.Equality != nil {
		filter[q.Equality.Field] = q.Equality.Value
	}
	if q.Prefix != nil {
		lo, hi := q.Prefix.Range()
		filter[q.Prefix.Field] = bson.M{"$gte": lo, "$lte": hi}
	}

	dir := 1
	if q.Descending {
		dir = -1
	}

	if q.After != nil {
		cmp := "$gt"
		if q.Descending {
			cmp = "$lt"
		}
		filter["$or"] = bson.A{
			bson.M{q.OrderBy: bson.M{cmp: q.After.LastCreatedAt}},
			bson.M{q.OrderBy: q.After.LastCreatedAt, "_id": bson.M{cmp: q.After.LastID}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: q.OrderBy, Value: dir}, {Key: "_id", Value: dir}}).
		SetLimit(int64(q.Limit))

	cur, err := r.db.Collection(q.Collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch page of %s: %w", q.Collection, err)
	}
	defer cur.Close(ctx)

	articles := []model.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode page of %s: %w", q.Collection, err)
	}
	return articles, nil
}

// SearchPrefix runs one bounded prefix-range query on a string field.
func (r *ArticleRepository) SearchPrefix(ctx context.Context, field, value string, limit int) ([]model.Article, error) {
	lo, hi := feed.Prefix{Field: field, Value: value}.Range()

	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.db.Collection(articlesCollection).Find(ctx, bson.M{field: bson.M{"$gte": lo, "$lte": hi}}, opts)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", field, err)
	}
	defer cur.Close(ctx)

	articles := []model.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode search %s: %w", field, err)
	}
	return articles, nil
}

// SearchDateRange is the admin search alternative: articles created
// within [from, to), newest first.
func (r *ArticleRepository) SearchDateRange(ctx context.Context, from, to time.Time, limit int) ([]model.Article, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	filter := bson.M{"created_at": bson.M{"$gte": from, "$lt": to}}
	cur, err := r.db.Collection(articlesCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search date range: %w", err)
	}
	defer cur.Close(ctx)

	articles := []model.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode date range: %w", err)
	}
	return articles, nil
}

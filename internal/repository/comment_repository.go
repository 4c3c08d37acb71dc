package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/naijatruths892-ship-it/Naija-truths/internal/model"
)

// CommentRepository persists the comments and replies attached to
// articles. Both are append-only: there is no edit or delete surface
// for readers, only the cascade when an article is removed.
type CommentRepository struct {
	db *mongo.Database
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) AddComment(ctx context.Context, c *model.Comment) error {
	c.ID = primitive.NewObjectID().Hex()
	c.CreatedAt = time.Now().UTC()

	_, err := r.db.Collection(commentsCollection).InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) ListByArticle(ctx context.Context, articleID string) ([]model.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.db.Collection(commentsCollection).Find(ctx, bson.M{"article_id": articleID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments for %s: %w", articleID, err)
	}
	defer cur.Close(ctx)

	comments := []model.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("decode comments for %s: %w", articleID, err)
	}
	return comments, nil
}

func (r *CommentRepository) AddReply(ctx context.Context, rep *model.Reply) error {
	rep.ID = primitive.NewObjectID().Hex()
	rep.CreatedAt = time.Now().UTC()

	// A reply belongs to exactly one comment; refuse orphans.
	n, err := r.db.Collection(commentsCollection).CountDocuments(ctx, bson.M{"_id": rep.CommentID})
	if err != nil {
		return fmt.Errorf("check comment %s: %w", rep.CommentID, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	_, err = r.db.Collection(repliesCollection).InsertOne(ctx, rep)
	if err != nil {
		return fmt.Errorf("insert reply: %w", err)
	}
	return nil
}

func (r *CommentRepository) ListReplies(ctx context.Context, commentID string) ([]model.Reply, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.db.Collection(repliesCollection).Find(ctx, bson.M{"comment_id": commentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list replies for %s: %w", commentID, err)
	}
	defer cur.Close(ctx)

	replies := []model.Reply{}
	if err := cur.All(ctx, &replies); err != nil {
		return nil, fmt.Errorf("decode replies for %s: %w", commentID, err)
	}
	return replies, nil
}

// DeleteByArticle removes an article's comments and their replies,
// used when an admin deletes the article itself.
func (r *CommentRepository) DeleteByArticle(ctx context.Context, articleID string) error {
	cur, err := r.db.Collection(commentsCollection).Find(ctx, bson.M{"article_id": articleID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return fmt.Errorf("find comments for %s: %w", articleID, err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return fmt.Errorf("decode comment id: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return err
	}

	if len(ids) > 0 {
		if _, err := r.db.Collection(repliesCollection).DeleteMany(ctx, bson.M{"comment_id": bson.M{"$in": ids}}); err != nil {
			return fmt.Errorf("delete replies for %s: %w", articleID, err)
		}
	}

	if _, err := r.db.Collection(commentsCollection).DeleteMany(ctx, bson.M{"article_id": articleID}); err != nil {
		return fmt.Errorf("delete comments for %s: %w", articleID, err)
	}
	return nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

const collectionComments = "comments"

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection(collectionComments)}
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ArticleID string             `bson:"article_id"`
	Text      string             `bson:"text"`
	Published bool               `bson:"published"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d commentDoc) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		ArticleID: d.ArticleID,
		Text:      d.Text,
		Published: d.Published,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := commentDoc{
		UserID:    c.UserID,
		ArticleID: c.ArticleID,
		Text:      c.Text,
		Published: c.Published,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := objectID(id, domain.ErrCommentNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc commentDoc
	if err := findOne(ctx, r.col, bson.M{"_id": oid}, &doc, domain.ErrCommentNotFound); err != nil {
		if err == domain.ErrCommentNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CommentRepository) List(ctx context.Context, filter ports.CommentFilter, page ports.Page, sort ports.Sort) ([]*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, commentFilter(filter), findOptions(page, sort))
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	out := make([]*domain.Comment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CommentRepository) Count(ctx context.Context, filter ports.CommentFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, commentFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}

// CountByArticles groups comments by article in a single aggregation.
func (r *CommentRepository) CountByArticles(ctx context.Context, articleIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(articleIDs))
	if len(articleIDs) == 0 {
		return out, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"article_id": bson.M{"$in": articleIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$article_id", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count comments by article: %w", err)
	}
	var rows []struct {
		ArticleID string `bson:"_id"`
		Count     int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode comment counts: %w", err)
	}
	for _, row := range rows {
		out[row.ArticleID] = row.Count
	}
	return out, nil
}

func (r *CommentRepository) Publish(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := objectID(id, domain.ErrCommentNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"published": true, "updated_at": time.Now().UTC()}}
	var doc commentDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, afterUpdate()).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("publish comment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrCommentNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteByArticle(ctx context.Context, articleID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"article_id": articleID}); err != nil {
		return fmt.Errorf("delete article comments: %w", err)
	}
	return nil
}

// EnsureIndexes creates the listing indexes.
func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "article_id", Value: 1}, {Key: "published", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: 1}}},
	})
	return err
}

func commentFilter(f ports.CommentFilter) bson.M {
	out := bson.M{}
	if f.ArticleID != "" {
		out["article_id"] = f.ArticleID
	}
	if f.Published != nil {
		out["published"] = *f.Published
	}
	return out
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

const collectionArticles = "articles"

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(collectionArticles)}
}

type articleDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	CategoryID string             `bson:"category_id"`
	Title      string             `bson:"title"`
	URL        string             `bson:"url"`
	Spoiler    string             `bson:"spoiler,omitempty"`
	Content    string             `bson:"content"`
	CoverImage string             `bson:"cover_image,omitempty"`
	Picture    string             `bson:"picture,omitempty"`
	Published  bool               `bson:"published"`
	Views      int64              `bson:"views"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func newArticleDoc(a *domain.Article) articleDoc {
	return articleDoc{
		UserID:     a.UserID,
		CategoryID: a.CategoryID,
		Title:      a.Title,
		URL:        a.URL,
		Spoiler:    a.Spoiler,
		Content:    a.Content,
		CoverImage: a.CoverImage,
		Picture:    a.Picture,
		Published:  a.Published,
		Views:      a.Views,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (d articleDoc) toDomain() *domain.Article {
	return &domain.Article{
		ID:         d.ID.Hex(),
		UserID:     d.UserID,
		CategoryID: d.CategoryID,
		Title:      d.Title,
		URL:        d.URL,
		Spoiler:    d.Spoiler,
		Content:    d.Content,
		CoverImage: d.CoverImage,
		Picture:    d.Picture,
		Published:  d.Published,
		Views:      d.Views,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newArticleDoc(a)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrArticleURLTaken
		}
		return nil, fmt.Errorf("insert article: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := objectID(id, domain.ErrArticleNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ArticleRepository) FindByURL(ctx context.Context, url string) (*domain.Article, error) {
	return r.findOne(ctx, bson.M{"url": url})
}

func (r *ArticleRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Article, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Article{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find())
}

func (r *ArticleRepository) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	return r.modify(ctx, id, bson.M{"$set": patchSet(patch, time.Now().UTC())})
}

func (r *ArticleRepository) SetPublished(ctx context.Context, id string) (*domain.Article, error) {
	return r.modify(ctx, id, bson.M{"$set": bson.M{"published": true, "updated_at": time.Now().UTC()}})
}

// IncrementViews relies on $inc being atomic on a single document.
func (r *ArticleRepository) IncrementViews(ctx context.Context, id string) (*domain.Article, error) {
	return r.modify(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrArticleNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) List(ctx context.Context, filter ports.ArticleFilter, page ports.Page, sort ports.Sort) ([]*domain.Article, error) {
	return r.find(ctx, articleFilter(filter), findOptions(page, sort))
}

func (r *ArticleRepository) Count(ctx context.Context, filter ports.ArticleFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, articleFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

func (r *ArticleRepository) modify(ctx context.Context, id string, update bson.M) (*domain.Article, error) {
	oid, err := objectID(id, domain.ErrArticleNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc articleDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, afterUpdate()).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.ErrArticleNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, domain.ErrArticleURLTaken
	case err != nil:
		return nil, fmt.Errorf("update article: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ArticleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc articleDoc
	if err := findOne(ctx, r.col, filter, &doc, domain.ErrArticleNotFound); err != nil {
		if err == domain.ErrArticleNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ArticleRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	var docs []articleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}

	out := make([]*domain.Article, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// EnsureIndexes creates the unique url index and the listing indexes.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "url", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "views", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	})
	return err
}

func articleFilter(f ports.ArticleFilter) bson.M {
	out := bson.M{}
	if f.Published != nil {
		out["published"] = *f.Published
	}
	if f.OwnerID != "" {
		out["user_id"] = f.OwnerID
	}
	if f.CategoryID != "" {
		out["category_id"] = f.CategoryID
	}
	return out
}

func patchSet(p domain.ArticlePatch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("title", p.Title)
	put("url", p.URL)
	put("spoiler", p.Spoiler)
	put("content", p.Content)
	put("cover_image", p.CoverImage)
	put("picture", p.Picture)
	put("category_id", p.CategoryID)
	return set
}

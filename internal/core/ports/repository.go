package ports

import (
	"context"

	"github.com/newsroom/publishing-api/internal/core/domain"
)

// Lookups by a unique key return a domain.ErrNotFound-wrapping error on a
// miss; writes that break a unique index return a domain.ErrConflict-wrapping
// error.

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// List returns users ordered newest first, skipping excludeID when set.
	List(ctx context.Context, excludeID string, page Page) ([]*domain.User, error)
	Count(ctx context.Context, excludeID string) (int64, error)
}

// CategoryRepository persists article categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindByURL(ctx context.Context, url string) (*domain.Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error)
}

// ArticleFilter narrows article listings. Zero fields do not filter.
type ArticleFilter struct {
	Published  *bool
	OwnerID    string
	CategoryID string
}

// ArticleRepository persists articles.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	FindByURL(ctx context.Context, url string) (*domain.Article, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Article, error)
	Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error)
	SetPublished(ctx context.Context, id string) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
	// IncrementViews atomically adds one view and returns the updated article.
	IncrementViews(ctx context.Context, id string) (*domain.Article, error)
	List(ctx context.Context, filter ArticleFilter, page Page, sort Sort) ([]*domain.Article, error)
	Count(ctx context.Context, filter ArticleFilter) (int64, error)
}

// CommentFilter narrows comment listings. Zero fields do not filter.
type CommentFilter struct {
	ArticleID string
	Published *bool
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	List(ctx context.Context, filter CommentFilter, page Page, sort Sort) ([]*domain.Comment, error)
	Count(ctx context.Context, filter CommentFilter) (int64, error)
	// CountByArticles returns the number of comments per article ID.
	CountByArticles(ctx context.Context, articleIDs []string) (map[string]int64, error)
	Publish(ctx context.Context, id string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByArticle(ctx context.Context, articleID string) error
}

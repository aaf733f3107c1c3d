package ports

import (
	"context"
	"io"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/pkg/token"
)

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Session is the outcome of a login or refresh.
type Session struct {
	User    *domain.User
	Access  token.Issued
	Refresh token.Issued
}

// AuthService covers sign-up, sign-in and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	ForgotPassword(ctx context.Context, email string) error
	RestorePassword(ctx context.Context, claim domain.Claim, password string) error
	Logout(ctx context.Context, refreshToken string) error
}

// CreateArticleInput is the author-supplied part of a new article.
type CreateArticleInput struct {
	Title      string
	URL        string
	Spoiler    string
	Content    string
	CoverImage string
	Picture    string
	CategoryID string
}

// ArticleDetail is an article enriched with its category and comment count.
type ArticleDetail struct {
	Article      *domain.Article
	Category     *domain.Category
	CommentCount int64
}

// ArticleService covers authoring, moderation and reading of articles.
type ArticleService interface {
	ListPublished(ctx context.Context, page Page) (*PageResult[ArticleDetail], error)
	ListPopular(ctx context.Context, page Page) (*PageResult[ArticleDetail], error)
	ListByCategory(ctx context.Context, categoryURL string, page Page) (*PageResult[ArticleDetail], error)
	ListDrafts(ctx context.Context, claim domain.Claim, page Page) (*PageResult[ArticleDetail], error)
	GetPublished(ctx context.Context, url string) (*ArticleDetail, error)
	GetPrivate(ctx context.Context, claim domain.Claim, url string) (*ArticleDetail, error)
	Create(ctx context.Context, claim domain.Claim, in CreateArticleInput) (*domain.Article, error)
	Update(ctx context.Context, claim domain.Claim, id string, patch domain.ArticlePatch) (*domain.Article, error)
	Delete(ctx context.Context, claim domain.Claim, id string) error
	Publish(ctx context.Context, claim domain.Claim, id string) (*domain.Article, error)
}

// ArticleRef is the minimal article reference shown next to a comment.
type ArticleRef struct {
	ID    string
	Title string
}

// CommentDetail is a comment with its author and, for moderation, its article.
type CommentDetail struct {
	Comment *domain.Comment
	Author  *domain.UserView
	Article *ArticleRef
}

// CommentService covers commenting and comment moderation.
type CommentService interface {
	Create(ctx context.Context, claim domain.Claim, articleID, text string) (*domain.Comment, error)
	ListForArticle(ctx context.Context, articleID string, page Page) (*PageResult[CommentDetail], error)
	ListDrafts(ctx context.Context, page Page) (*PageResult[CommentDetail], error)
	Publish(ctx context.Context, claim domain.Claim, id string) (*domain.Comment, error)
	Delete(ctx context.Context, claim domain.Claim, id string) error
}

// CategoryService manages categories.
type CategoryService interface {
	Create(ctx context.Context, title, url string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}

// UserService manages accounts from an administrator's point of view.
type UserService interface {
	List(ctx context.Context, claim domain.Claim, page Page) (*PageResult[domain.UserView], error)
	Me(ctx context.Context, claim domain.Claim) (*domain.UserView, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
}

// UploadFile is one multipart file handed to the image service.
type UploadFile struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageService stores and removes article images.
type ImageService interface {
	// Upload stores each file and returns its public URL keyed by form field.
	Upload(ctx context.Context, files []UploadFile) (map[string]string, error)
	// Delete removes the objects referenced by public URLs or bare keys.
	Delete(ctx context.Context, paths []string) error
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

type ArticleService struct {
	articles   ports.ArticleRepository
	categories ports.CategoryRepository
	comments   ports.CommentRepository
	log        zerolog.Logger
}

func NewArticleService(
	articles ports.ArticleRepository,
	categories ports.CategoryRepository,
	comments ports.CommentRepository,
	log zerolog.Logger,
) *ArticleService {
	return &ArticleService{articles: articles, categories: categories, comments: comments, log: log}
}

func published(v bool) *bool { return &v }

// ListPublished returns published articles, newest first.
func (s *ArticleService) ListPublished(ctx context.Context, page ports.Page) (*ports.PageResult[ports.ArticleDetail], error) {
	return s.list(ctx, ports.ArticleFilter{Published: published(true)}, page, ports.SortNewest)
}

// ListPopular returns published articles, most viewed first.
func (s *ArticleService) ListPopular(ctx context.Context, page ports.Page) (*ports.PageResult[ports.ArticleDetail], error) {
	return s.list(ctx, ports.ArticleFilter{Published: published(true)}, page, ports.SortMostViewed)
}

// ListByCategory returns published articles of the category at categoryURL.
func (s *ArticleService) ListByCategory(ctx context.Context, categoryURL string, page ports.Page) (*ports.PageResult[ports.ArticleDetail], error) {
	category, err := s.categories.FindByURL(ctx, categoryURL)
	if err != nil {
		return nil, err
	}
	filter := ports.ArticleFilter{Published: published(true), CategoryID: category.ID}
	return s.list(ctx, filter, page, ports.SortNewest)
}

// ListDrafts returns unpublished articles: all of them for an ADMIN, only the
// caller's own for anyone else.
func (s *ArticleService) ListDrafts(ctx context.Context, claim domain.Claim, page ports.Page) (*ports.PageResult[ports.ArticleDetail], error) {
	filter := ports.ArticleFilter{Published: published(false), OwnerID: domain.DraftOwnerScope(claim)}
	return s.list(ctx, filter, page, ports.SortNewest)
}

// GetPublished returns a published article and counts the read.
func (s *ArticleService) GetPublished(ctx context.Context, url string) (*ports.ArticleDetail, error) {
	article, err := s.articles.FindByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	if !article.Published {
		return nil, domain.ErrArticleNotFound
	}

	viewed, err := s.articles.IncrementViews(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, viewed)
}

// GetPrivate returns an article regardless of state when claim may see it.
func (s *ArticleService) GetPrivate(ctx context.Context, claim domain.Claim, url string) (*ports.ArticleDetail, error) {
	article, err := s.articles.FindByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := domain.CanViewPrivate(claim, article.UserID); err != nil {
		return nil, err
	}
	return s.detail(ctx, article)
}

// Create stores a new draft owned by the caller.
func (s *ArticleService) Create(ctx context.Context, claim domain.Claim, in ports.CreateArticleInput) (*domain.Article, error) {
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.articles.Create(ctx, &domain.Article{
		UserID:     claim.ID,
		CategoryID: in.CategoryID,
		Title:      in.Title,
		URL:        in.URL,
		Spoiler:    in.Spoiler,
		Content:    in.Content,
		CoverImage: in.CoverImage,
		Picture:    in.Picture,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("article_id", created.ID).Str("user_id", claim.ID).Msg("article created")
	return created, nil
}

// Update applies patch when the caller owns the article or is an ADMIN.
func (s *ArticleService) Update(ctx context.Context, claim domain.Claim, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanModify(claim, article.UserID); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return article, nil
	}
	if patch.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}
	return s.articles.Update(ctx, id, patch)
}

// Delete removes the article and its comments when the caller owns it or is
// an ADMIN.
func (s *ArticleService) Delete(ctx context.Context, claim domain.Claim, id string) error {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.CanModify(claim, article.UserID); err != nil {
		return err
	}
	if err := s.comments.DeleteByArticle(ctx, id); err != nil {
		return fmt.Errorf("delete article comments: %w", err)
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("article_id", id).Str("user_id", claim.ID).Msg("article deleted")
	return nil
}

// Publish moves a draft to published. Publishing twice is a no-op.
func (s *ArticleService) Publish(ctx context.Context, claim domain.Claim, id string) (*domain.Article, error) {
	if err := domain.CanPublishArticle(claim); err != nil {
		return nil, err
	}
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Published {
		return article, nil
	}

	out, err := s.articles.SetPublished(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("article_id", id).Msg("article published")
	return out, nil
}

func (s *ArticleService) list(ctx context.Context, filter ports.ArticleFilter, page ports.Page, sort ports.Sort) (*ports.PageResult[ports.ArticleDetail], error) {
	items, err := s.articles.List(ctx, filter, page, sort)
	if err != nil {
		return nil, err
	}
	count, err := s.articles.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	details, err := s.enrich(ctx, items)
	if err != nil {
		return nil, err
	}
	return &ports.PageResult[ports.ArticleDetail]{Data: details, Limit: page.Limit, Offset: page.Offset, Count: count}, nil
}

func (s *ArticleService) detail(ctx context.Context, a *domain.Article) (*ports.ArticleDetail, error) {
	details, err := s.enrich(ctx, []*domain.Article{a})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// enrich attaches categories and comment counts with one lookup each.
func (s *ArticleService) enrich(ctx context.Context, items []*domain.Article) ([]ports.ArticleDetail, error) {
	out := make([]ports.ArticleDetail, 0, len(items))
	if len(items) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(items))
	categoryIDs := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, a := range items {
		ids = append(ids, a.ID)
		if _, ok := seen[a.CategoryID]; !ok && a.CategoryID != "" {
			seen[a.CategoryID] = struct{}{}
			categoryIDs = append(categoryIDs, a.CategoryID)
		}
	}

	categories, err := s.categories.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	byID := make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	counts, err := s.comments.CountByArticles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	for _, a := range items {
		out = append(out, ports.ArticleDetail{
			Article:      a,
			Category:     byID[a.CategoryID],
			CommentCount: counts[a.ID],
		})
	}
	return out, nil
}

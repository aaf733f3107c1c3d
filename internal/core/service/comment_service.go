package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

type CommentService struct {
	comments ports.CommentRepository
	articles ports.ArticleRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewCommentService(
	comments ports.CommentRepository,
	articles ports.ArticleRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *CommentService {
	return &CommentService{comments: comments, articles: articles, users: users, log: log}
}

// Create stores a draft comment by the caller on an existing article.
func (s *CommentService) Create(ctx context.Context, claim domain.Claim, articleID, text string) (*domain.Comment, error) {
	if _, err := s.articles.FindByID(ctx, articleID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.comments.Create(ctx, &domain.Comment{
		UserID:    claim.ID,
		ArticleID: articleID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("comment_id", created.ID).Str("article_id", articleID).Msg("comment created")
	return created, nil
}

// ListForArticle returns the published comments of an article, newest first.
func (s *CommentService) ListForArticle(ctx context.Context, articleID string, page ports.Page) (*ports.PageResult[ports.CommentDetail], error) {
	filter := ports.CommentFilter{ArticleID: articleID, Published: published(true)}
	return s.list(ctx, filter, page, ports.SortNewest, false)
}

// ListDrafts returns comments awaiting moderation, oldest first.
func (s *CommentService) ListDrafts(ctx context.Context, page ports.Page) (*ports.PageResult[ports.CommentDetail], error) {
	filter := ports.CommentFilter{Published: published(false)}
	return s.list(ctx, filter, page, ports.SortOldest, true)
}

// Publish moves a draft comment to published. Publishing twice is a no-op.
func (s *CommentService) Publish(ctx context.Context, claim domain.Claim, id string) (*domain.Comment, error) {
	if err := domain.CanPublishComment(claim); err != nil {
		return nil, err
	}
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.Published {
		return comment, nil
	}

	out, err := s.comments.Publish(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("comment_id", id).Str("user_id", claim.ID).Msg("comment published")
	return out, nil
}

// Delete removes a comment when the caller wrote it or is an ADMIN.
func (s *CommentService) Delete(ctx context.Context, claim domain.Claim, id string) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.CanModify(claim, comment.UserID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("comment_id", id).Str("user_id", claim.ID).Msg("comment deleted")
	return nil
}

func (s *CommentService) list(ctx context.Context, filter ports.CommentFilter, page ports.Page, sort ports.Sort, withArticle bool) (*ports.PageResult[ports.CommentDetail], error) {
	items, err := s.comments.List(ctx, filter, page, sort)
	if err != nil {
		return nil, err
	}
	count, err := s.comments.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	authors, err := s.authors(ctx, items)
	if err != nil {
		return nil, err
	}
	var articles map[string]*ports.ArticleRef
	if withArticle {
		if articles, err = s.articleRefs(ctx, items); err != nil {
			return nil, err
		}
	}

	data := make([]ports.CommentDetail, 0, len(items))
	for _, c := range items {
		data = append(data, ports.CommentDetail{
			Comment: c,
			Author:  authors[c.UserID],
			Article: articles[c.ArticleID],
		})
	}
	return &ports.PageResult[ports.CommentDetail]{Data: data, Limit: page.Limit, Offset: page.Offset, Count: count}, nil
}

func (s *CommentService) authors(ctx context.Context, items []*domain.Comment) (map[string]*domain.UserView, error) {
	ids := uniqueIDs(items, func(c *domain.Comment) string { return c.UserID })
	out := make(map[string]*domain.UserView, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load comment authors: %w", err)
	}
	for _, u := range users {
		view := u.View()
		// Comment listings show who wrote it, not their role.
		view.Role = ""
		out[u.ID] = &view
	}
	return out, nil
}

func (s *CommentService) articleRefs(ctx context.Context, items []*domain.Comment) (map[string]*ports.ArticleRef, error) {
	ids := uniqueIDs(items, func(c *domain.Comment) string { return c.ArticleID })
	out := make(map[string]*ports.ArticleRef, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	articles, err := s.articles.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load comment articles: %w", err)
	}
	for _, a := range articles {
		out[a.ID] = &ports.ArticleRef{ID: a.ID, Title: a.Title}
	}
	return out, nil
}

func uniqueIDs[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		k := key(it)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

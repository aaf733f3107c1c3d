package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

type CategoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

func (s *CategoryService) Create(ctx context.Context, title, url string) (*domain.Category, error) {
	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Category{
		Title:     strings.TrimSpace(title),
		URL:       strings.TrimSpace(url),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("category_id", created.ID).Str("url", created.URL).Msg("category created")
	return created, nil
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.FindAll(ctx)
}

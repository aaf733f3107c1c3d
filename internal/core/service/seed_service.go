package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
	"github.com/newsroom/publishing-api/internal/pkg/password"
)

const seedPassword = "11111111"

type seedArticle struct {
	url       string
	category  string
	published bool
}

type seedUser struct {
	name     string
	email    string
	role     domain.Role
	articles []seedArticle
}

var seedCategories = []string{"people", "events", "places"}

var seedUsers = []seedUser{
	{name: "Admin", email: "admin@admin.com", role: domain.RoleAdmin, articles: []seedArticle{
		{url: "3", category: "people", published: true},
		{url: "4", category: "places"},
		{url: "5", category: "events"},
	}},
	{name: "Manager", email: "manager@manager.com", role: domain.RoleManager, articles: []seedArticle{
		{url: "1", category: "events", published: true},
		{url: "2", category: "places", published: true},
		{url: "6", category: "people"},
	}},
	{name: "User", email: "user2@user.com", role: domain.RoleUser},
}

// SeedService loads demo categories, accounts and articles. Records that
// already exist are skipped, so running it twice is harmless.
type SeedService struct {
	users      ports.UserRepository
	categories ports.CategoryRepository
	articles   ports.ArticleRepository
	hasher     *password.Hasher
	log        zerolog.Logger
}

func NewSeedService(
	users ports.UserRepository,
	categories ports.CategoryRepository,
	articles ports.ArticleRepository,
	hasher *password.Hasher,
	log zerolog.Logger,
) *SeedService {
	return &SeedService{users: users, categories: categories, articles: articles, hasher: hasher, log: log}
}

func (s *SeedService) Run(ctx context.Context) error {
	s.log.Info().Msg("start seeding")
	now := time.Now().UTC()

	for _, slug := range seedCategories {
		c, err := s.categories.Create(ctx, &domain.Category{Title: slug, URL: slug, CreatedAt: now, UpdatedAt: now})
		switch {
		case errors.Is(err, domain.ErrConflict):
			s.log.Info().Str("url", slug).Msg("category already exists")
		case err != nil:
			return err
		default:
			s.log.Info().Str("category_id", c.ID).Msg("created category")
		}
	}

	hash, err := s.hasher.Hash(seedPassword)
	if err != nil {
		return err
	}

	for _, su := range seedUsers {
		u, err := s.users.Create(ctx, &domain.User{
			Email:        su.email,
			Name:         su.name,
			PasswordHash: hash,
			Role:         su.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if errors.Is(err, domain.ErrConflict) {
			s.log.Info().Str("email", su.email).Msg("user already exists")
			continue
		}
		if err != nil {
			return err
		}
		s.log.Info().Str("user_id", u.ID).Msg("created user")

		for _, sa := range su.articles {
			if err := s.seedArticle(ctx, u.ID, sa, now); err != nil {
				return err
			}
		}
	}

	s.log.Info().Msg("seeding finished")
	return nil
}

func (s *SeedService) seedArticle(ctx context.Context, ownerID string, sa seedArticle, now time.Time) error {
	category, err := s.categories.FindByURL(ctx, sa.category)
	if err != nil {
		return err
	}
	a, err := s.articles.Create(ctx, &domain.Article{
		UserID:     ownerID,
		CategoryID: category.ID,
		Title:      "Title " + sa.url,
		URL:        sa.url,
		Spoiler:    "Short description",
		Content:    "Long description",
		Published:  sa.published,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if errors.Is(err, domain.ErrConflict) {
		s.log.Info().Str("url", sa.url).Msg("article already exists")
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Debug().Str("article_id", a.ID).Msg("created article")
	return nil
}

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// List returns every account except the caller's.
func (s *UserService) List(ctx context.Context, claim domain.Claim, page ports.Page) (*ports.PageResult[domain.UserView], error) {
	users, err := s.repo.List(ctx, claim.ID, page)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.Count(ctx, claim.ID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}
	return &ports.PageResult[domain.UserView]{Data: views, Limit: page.Limit, Offset: page.Offset, Count: count}, nil
}

func (s *UserService) Me(ctx context.Context, claim domain.Claim) (*domain.UserView, error) {
	user, err := s.repo.FindByID(ctx, claim.ID)
	if err != nil {
		return nil, err
	}
	view := user.View()
	return &view, nil
}

// UpdateRole changes the role of another account. The new role applies to
// tokens issued from then on.
func (s *UserService) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Str("role", string(role)).Msg("user role updated")
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
	"github.com/newsroom/publishing-api/internal/pkg/password"
	"github.com/newsroom/publishing-api/internal/pkg/token"
)

const restoreSubject = "Restore password"

// AuthService implements registration, login and the token lifecycle.
type AuthService struct {
	users     ports.UserRepository
	hasher    *password.Hasher
	issuer    *token.Issuer
	revoker   ports.TokenRevoker
	mail      ports.MailQueue
	clientURL string
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher *password.Hasher,
	issuer *token.Issuer,
	revoker ports.TokenRevoker,
	mail ports.MailQueue,
	clientURL string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		issuer:    issuer,
		revoker:   revoker,
		mail:      mail,
		clientURL: strings.TrimRight(clientURL, "/"),
		log:       log,
	}
}

// Authenticate checks an email/password pair. An unknown email and a wrong
// password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, plain string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.Equalize(plain)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !s.hasher.Verify(plain, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        normalizeEmail(in.Email),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, plain string) (*ports.Session, error) {
	user, err := s.Authenticate(ctx, email, plain)
	if err != nil {
		return nil, err
	}
	return s.newSession(user)
}

// Refresh exchanges a refresh token for a new session. The presented token is
// claimed before anything is issued, so each refresh token works once even
// under concurrent use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.Session, error) {
	if refreshToken == "" {
		return nil, domain.ErrAccessDenied
	}

	parsed, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	claimed, err := s.revoker.Claim(ctx, parsed.TokenID, parsed.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if !claimed {
		s.log.Warn().Str("user_id", parsed.ID).Msg("revoked refresh token presented")
		return nil, domain.ErrInvalidToken
	}

	// Re-read the user so a role change takes effect on the next refresh.
	user, err := s.users.FindByEmail(ctx, parsed.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}
	return s.newSession(user)
}

// ForgotPassword mails a restore link carrying a short-lived access token.
// It succeeds silently for unknown emails.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Debug().Msg("restore requested for unknown email")
			return nil
		}
		return fmt.Errorf("forgot password: %w", err)
	}

	access, err := s.issuer.IssueAccess(user.Claim())
	if err != nil {
		return err
	}

	link := s.clientURL + "/restore-password?token=" + url.QueryEscape(access.Token)
	msg := ports.MailMessage{
		To:      user.Email,
		Subject: restoreSubject,
		HTML:    restoreBody(link),
	}
	if err := s.mail.Enqueue(msg); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("restore link queued")
	return nil
}

// RestorePassword replaces the password of the identity behind claim.
func (s *AuthService) RestorePassword(ctx context.Context, claim domain.Claim, plain string) error {
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, claim.ID, hash); err != nil {
		return err
	}
	s.log.Info().Str("user_id", claim.ID).Msg("password restored")
	return nil
}

// Logout revokes the refresh token if one is presented and still valid.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	parsed, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, parsed.TokenID, parsed.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *AuthService) newSession(user *domain.User) (*ports.Session, error) {
	access, err := s.issuer.IssueAccess(user.Claim())
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.IssueRefresh(user.Claim())
	if err != nil {
		return nil, err
	}
	return &ports.Session{User: user, Access: access, Refresh: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func restoreBody(link string) string {
	href := html.EscapeString(link)
	return `<p>Somebody asked to restore the password of this account.</p>` +
		`<p><a href="` + href + `">Restore password</a></p>` +
		`<p>If it was not you, ignore this message.</p>`
}

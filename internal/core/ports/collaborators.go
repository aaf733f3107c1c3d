package ports

import (
	"context"
	"io"
	"time"
)

// ObjectStorage stores uploaded images under opaque keys.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// MailMessage is a single outgoing HTML email.
type MailMessage struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers mail synchronously.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// MailQueue accepts mail for background delivery.
type MailQueue interface {
	Enqueue(msg MailMessage) error
}

// TokenRevoker records refresh tokens that must no longer be honoured.
type TokenRevoker interface {
	// Revoke marks tokenID revoked until the token would have expired anyway.
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	// Claim revokes tokenID atomically and reports whether this call did it.
	// false means the token was already used or revoked.
	Claim(ctx context.Context, tokenID string, until time.Time) (bool, error)
}

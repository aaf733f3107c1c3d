package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// minRevocationTTL is the shortest lifetime of a revocation key.
const minRevocationTTL = time.Minute

// TokenRevoker keeps revoked refresh-token IDs until the tokens expire.
// Key format: publishing:revoked:<jti>
type TokenRevoker struct {
	client *redis.Client
	now    func() time.Time
}

func NewTokenRevoker(client *redis.Client) *TokenRevoker {
	return &TokenRevoker{client: client, now: time.Now}
}

// Revoke marks tokenID revoked. Revoking twice is not an error.
func (r *TokenRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if err := r.client.Set(ctx, revokedKey(tokenID), "1", r.ttl(until)).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Claim revokes tokenID with SET NX. Only the first caller for a given ID gets
// true.
func (r *TokenRevoker) Claim(ctx context.Context, tokenID string, until time.Time) (bool, error) {
	won, err := r.client.SetNX(ctx, revokedKey(tokenID), "1", r.ttl(until)).Result()
	if err != nil {
		return false, fmt.Errorf("claim token: %w", err)
	}
	return won, nil
}

func (r *TokenRevoker) ttl(until time.Time) time.Duration {
	ttl := until.Sub(r.now())
	if ttl < minRevocationTTL {
		return minRevocationTTL
	}
	return ttl
}

func revokedKey(tokenID string) string {
	return key("revoked", tokenID)
}

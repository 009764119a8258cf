package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked tokens until their natural expiry. Logout is the
// only writer; keys fall out of Redis on their own once the token would have
// expired anyway.
type Denylist struct {
	rdb *redis.Client
}

func NewDenylist(rdb *redis.Client) *Denylist {
	return &Denylist{rdb: rdb}
}

// Revoke marks the token as unusable for its remaining lifetime.
func (d *Denylist) Revoke(ctx context.Context, token string, remaining time.Duration) error {
	if remaining <= 0 {
		// Already expired, nothing to revoke
		return nil
	}
	return d.rdb.Set(ctx, revokedKey(token), "1", remaining).Err()
}

// IsRevoked reports whether the token was revoked by a logout.
func (d *Denylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := d.rdb.Get(ctx, revokedKey(token)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// revokedKey stores a digest, never the signed token itself.
func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:revoked:" + hex.EncodeToString(sum[:])
}

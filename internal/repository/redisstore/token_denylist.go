package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/frontandrew/ridematch/internal/pkg/redis"
	"github.com/frontandrew/ridematch/internal/repository"
)

const revokedTokenPrefix = "revoked_token:"

// KV - операции Redis, нужные denylist'у
type KV interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Exists(ctx context.Context, keys ...string) (int64, error)
}

var _ KV = (*redis.Client)(nil)

// TokenDenylist хранит jti отозванных access токенов.
// Ключ живет ровно до истечения токена, после чего токен отклоняется по сроку действия.
type TokenDenylist struct {
	kv KV
}

// NewTokenDenylist создает denylist поверх Redis
func NewTokenDenylist(kv KV) repository.TokenDenylist {
	return &TokenDenylist{kv: kv}
}

// Revoke помечает токен отозванным на ttl
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.kv.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked проверяет, отозван ли токен
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.kv.Exists(ctx, revokedTokenPrefix+tokenID)
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return n > 0, nil
}

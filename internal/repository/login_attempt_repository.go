package repository

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptPrefix = "auth:login_failures:"

// LoginAttemptRepository counts failed logins per email within a window.
type LoginAttemptRepository interface {
	Failures(ctx context.Context, email string) (int64, error)
	RecordFailure(ctx context.Context, email string, window time.Duration) (int64, error)
	Reset(ctx context.Context, email string) error
}

type redisLoginAttemptRepository struct {
	client *redis.Client
}

// NewLoginAttemptRepository returns a Redis-backed implementation.
func NewLoginAttemptRepository(client *redis.Client) LoginAttemptRepository {
	return &redisLoginAttemptRepository{client: client}
}

func loginAttemptKey(email string) string {
	return loginAttemptPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (r *redisLoginAttemptRepository) Failures(ctx context.Context, email string) (int64, error) {
	n, err := r.client.Get(ctx, loginAttemptKey(email)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// RecordFailure increments the counter and starts the window on the first failure.
func (r *redisLoginAttemptRepository) RecordFailure(ctx context.Context, email string, window time.Duration) (int64, error) {
	key := loginAttemptKey(email)
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (r *redisLoginAttemptRepository) Reset(ctx context.Context, email string) error {
	return r.client.Del(ctx, loginAttemptKey(email)).Err()
}

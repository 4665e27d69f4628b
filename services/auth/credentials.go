package auth

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// rentalAPITokenKey stores the service's credential for the upstream rental
// API.
const rentalAPITokenKey = "rentalapi:token"

// RedisCredentialStore holds the upstream API bearer credential. Invalidate
// is idempotent: once cleared, Token reports absent until a new credential is
// saved, which keeps the redirect-on-401 policy from looping.
type RedisCredentialStore struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewRedisCredentialStore(client *redis.Client, logger *zap.Logger) *RedisCredentialStore {
	return &RedisCredentialStore{Client: client, Logger: logger}
}

func (s *RedisCredentialStore) Token(ctx context.Context) (string, bool) {
	token, err := s.Client.Get(ctx, rentalAPITokenKey).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		s.Logger.Warn("failed to read upstream credential", zap.Error(err))
		return "", false
	}
	return token, token != ""
}

// Save stores a fresh upstream credential.
func (s *RedisCredentialStore) Save(ctx context.Context, token string) error {
	return s.Client.Set(ctx, rentalAPITokenKey, token, 0).Err()
}

func (s *RedisCredentialStore) Invalidate(ctx context.Context) error {
	return s.Client.Del(ctx, rentalAPITokenKey).Err()
}

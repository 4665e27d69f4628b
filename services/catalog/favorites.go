package catalog

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"rently/utils"
)

// FavoritesStore keeps each user's favorite vehicle ids in a Redis set,
// mirroring the client's favorites storage key.
type FavoritesStore struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewFavoritesStore(client *redis.Client, logger *zap.Logger) *FavoritesStore {
	return &FavoritesStore{Client: client, Logger: logger}
}

func (s *FavoritesStore) key(userID string) string {
	return utils.FavoritesKeyPrefix + userID
}

// List returns the user's favorite vehicle ids.
func (s *FavoritesStore) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.Client.SMembers(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return ids, nil
}

// Add marks a vehicle as a favorite.
func (s *FavoritesStore) Add(ctx context.Context, userID, vehicleID string) error {
	if err := s.Client.SAdd(ctx, s.key(userID), vehicleID).Err(); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove unmarks a vehicle.
func (s *FavoritesStore) Remove(ctx context.Context, userID, vehicleID string) error {
	if err := s.Client.SRem(ctx, s.key(userID), vehicleID).Err(); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

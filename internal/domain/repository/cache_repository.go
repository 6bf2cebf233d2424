package repository

import (
	"context"
	"time"

	"github.com/geodistance-microservice/internal/domain"
)

// CacheRepository - кеш поверх Redis
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	GetNearestPlaces(ctx context.Context, key string) ([]domain.PlaceWithDistance, error)
	SetNearestPlaces(ctx context.Context, key string, places []domain.PlaceWithDistance, ttl time.Duration) error
}

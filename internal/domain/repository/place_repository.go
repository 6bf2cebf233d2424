package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/geodistance-microservice/internal/domain"
)

// PlaceRepository - хранилище именованных мест
type PlaceRepository interface {
	Create(ctx context.Context, place *domain.Place) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Place, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// GetInBoundingBox возвращает места внутри прямоугольника.
	// Используется как префильтр перед расчётом точных расстояний.
	GetInBoundingBox(ctx context.Context, box domain.BoundingBox, limit int) ([]*domain.Place, error)
}

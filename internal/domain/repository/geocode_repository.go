package repository

import (
	"context"

	"github.com/geodistance-microservice/internal/domain"
)

// GeocodeRepository - внешний геокодер (свободный текст -> координаты)
type GeocodeRepository interface {
	Geocode(ctx context.Context, query string) (*domain.Point, error)
}

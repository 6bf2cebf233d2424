package domain

import (
	"time"

	"github.com/google/uuid"
)

// Place - именованная точка, сохранённая в базе (офис, станция, адрес
// клиента). Используется для поиска ближайших мест к заданной точке.
type Place struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Lat       float64   `json:"lat" db:"lat"`
	Lon       float64   `json:"lon" db:"lon"`
	Tags      []string  `json:"tags,omitempty" db:"tags"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PlaceWithDistance - место с рассчитанным расстоянием до точки запроса
type PlaceWithDistance struct {
	Place
	Distance float64 `json:"distance"` // meters
}

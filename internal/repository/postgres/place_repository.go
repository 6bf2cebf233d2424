package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/geodistance-microservice/internal/domain"
	"github.com/geodistance-microservice/internal/domain/repository"
)

type placeRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewPlaceRepository создает новый экземпляр place repository
func NewPlaceRepository(db *DB, logger *zap.Logger) repository.PlaceRepository {
	return &placeRepository{
		db:     db,
		logger: logger,
	}
}

// placeRow - строка таблицы places для сканирования через sqlx
type placeRow struct {
	ID        uuid.UUID      `db:"id"`
	Name      string         `db:"name"`
	Lat       float64        `db:"lat"`
	Lon       float64        `db:"lon"`
	Tags      pq.StringArray `db:"tags"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r placeRow) toDomain() *domain.Place {
	return &domain.Place{
		ID:        r.ID,
		Name:      r.Name,
		Lat:       r.Lat,
		Lon:       r.Lon,
		Tags:      []string(r.Tags),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Create сохраняет новое место
func (r *placeRepository) Create(ctx context.Context, place *domain.Place) error {
	query := `
		INSERT INTO places (id, name, lat, lon, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now().UTC()
	place.CreatedAt = now
	place.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		place.ID,
		place.Name,
		place.Lat,
		place.Lon,
		pq.Array(place.Tags),
		place.CreatedAt,
		place.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert place",
			zap.String("place_id", place.ID.String()),
			zap.Error(err))
		return fmt.Errorf("insert place: %w", err)
	}

	return nil
}

// GetByID возвращает место по идентификатору (nil если не найдено)
func (r *placeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	query := `
		SELECT id, name, lat, lon, tags, created_at, updated_at
		FROM places
		WHERE id = $1
	`

	var row placeRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get place",
			zap.String("place_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("get place: %w", err)
	}

	return row.toDomain(), nil
}

// List возвращает места постранично, новые первыми
func (r *placeRepository) List(ctx context.Context, limit, offset int) ([]*domain.Place, error) {
	query := `
		SELECT id, name, lat, lon, tags, created_at, updated_at
		FROM places
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var rows []placeRow
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		r.logger.Error("Failed to list places", zap.Error(err))
		return nil, fmt.Errorf("list places: %w", err)
	}

	places := make([]*domain.Place, 0, len(rows))
	for _, row := range rows {
		places = append(places, row.toDomain())
	}

	return places, nil
}

// Delete удаляет место по идентификатору
func (r *placeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM places WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete place",
			zap.String("place_id", id.String()),
			zap.Error(err))
		return fmt.Errorf("delete place: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete place rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// GetInBoundingBox возвращает места внутри прямоугольника
func (r *placeRepository) GetInBoundingBox(ctx context.Context, box domain.BoundingBox, limit int) ([]*domain.Place, error) {
	query := `
		SELECT id, name, lat, lon, tags, created_at, updated_at
		FROM places
		WHERE lat BETWEEN $1 AND $2
		  AND lon BETWEEN $3 AND $4
		LIMIT $5
	`

	var rows []placeRow
	err := r.db.SelectContext(ctx, &rows, query,
		box.MinLat, box.MaxLat,
		box.MinLon, box.MaxLon,
		limit,
	)
	if err != nil {
		r.logger.Error("Failed to query places in bounding box",
			zap.Float64("min_lat", box.MinLat),
			zap.Float64("max_lat", box.MaxLat),
			zap.Error(err))
		return nil, fmt.Errorf("places in bounding box: %w", err)
	}

	places := make([]*domain.Place, 0, len(rows))
	for _, row := range rows {
		places = append(places, row.toDomain())
	}

	return places, nil
}

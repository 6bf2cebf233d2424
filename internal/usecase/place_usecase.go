package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geodistance-microservice/internal/domain"
	"github.com/geodistance-microservice/internal/domain/repository"
	"github.com/geodistance-microservice/internal/pkg/errors"
	"github.com/geodistance-microservice/internal/pkg/geo"
	"github.com/geodistance-microservice/internal/usecase/dto"
)

const (
	defaultListLimit    = 50
	defaultNearestLimit = 10
	// bboxCandidateLimit - максимум кандидатов из префильтра по рамке
	bboxCandidateLimit = 500
)

// PlaceUseCase - работа с именованными местами: CRUD, геокодирование
// адресов и поиск ближайших мест через приближённый расчёт расстояний
type PlaceUseCase struct {
	placeRepo   repository.PlaceRepository
	cacheRepo   repository.CacheRepository
	geocodeRepo repository.GeocodeRepository
	logger      *zap.Logger
	nearestTTL  time.Duration
}

func NewPlaceUseCase(
	placeRepo repository.PlaceRepository,
	cacheRepo repository.CacheRepository,
	geocodeRepo repository.GeocodeRepository,
	logger *zap.Logger,
	nearestTTL time.Duration,
) *PlaceUseCase {
	return &PlaceUseCase{
		placeRepo:   placeRepo,
		cacheRepo:   cacheRepo,
		geocodeRepo: geocodeRepo,
		logger:      logger,
		nearestTTL:  nearestTTL,
	}
}

// Create создаёт место по координатам
func (uc *PlaceUseCase) Create(ctx context.Context, req dto.CreatePlaceRequest) (*dto.PlaceResponse, error) {
	if !geo.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	place := &domain.Place{
		ID:   uuid.New(),
		Name: req.Name,
		Lat:  req.Lat,
		Lon:  req.Lon,
		Tags: req.Tags,
	}

	if err := uc.placeRepo.Create(ctx, place); err != nil {
		uc.logger.Error("Failed to create place", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	uc.logger.Info("Place created",
		zap.String("place_id", place.ID.String()),
		zap.String("name", place.Name))

	return &dto.PlaceResponse{Place: place}, nil
}

// CreateByAddress создаёт место по адресу, разрешая координаты через
// внешний геокодер
func (uc *PlaceUseCase) CreateByAddress(ctx context.Context, req dto.CreatePlaceByAddressRequest) (*dto.PlaceResponse, error) {
	point, err := uc.geocodeRepo.Geocode(ctx, req.Address)
	if err != nil {
		uc.logger.Error("Geocoding failed",
			zap.String("address", req.Address),
			zap.Error(err))
		return nil, errors.ErrGeocodeError
	}
	if point == nil {
		return nil, errors.ErrAddressNotFound
	}

	return uc.Create(ctx, dto.CreatePlaceRequest{
		Name: req.Name,
		Lat:  point.Lat,
		Lon:  point.Lon,
		Tags: req.Tags,
	})
}

// GetByID возвращает место по идентификатору
func (uc *PlaceUseCase) GetByID(ctx context.Context, id string) (*dto.PlaceResponse, error) {
	placeID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrInvalidPlaceID
	}

	place, err := uc.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		uc.logger.Error("Failed to get place",
			zap.String("place_id", id),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if place == nil {
		return nil, errors.ErrPlaceNotFound
	}

	return &dto.PlaceResponse{Place: place}, nil
}

// List возвращает места постранично
func (uc *PlaceUseCase) List(ctx context.Context, limit, offset int) (*dto.PlaceListResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	places, err := uc.placeRepo.List(ctx, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list places", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &dto.PlaceListResponse{
		Places: places,
		Total:  len(places),
	}, nil
}

// Delete удаляет место по идентификатору
func (uc *PlaceUseCase) Delete(ctx context.Context, id string) error {
	placeID, err := uuid.Parse(id)
	if err != nil {
		return errors.ErrInvalidPlaceID
	}

	if err := uc.placeRepo.Delete(ctx, placeID); err != nil {
		if err == sql.ErrNoRows {
			return errors.ErrPlaceNotFound
		}
		uc.logger.Error("Failed to delete place",
			zap.String("place_id", id),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	uc.logger.Info("Place deleted", zap.String("place_id", id))
	return nil
}

// Nearest возвращает ближайшие места в радиусе от точки, отсортированные
// по возрастанию расстояния. Префильтр по рамке в базе, затем расчёт
// приближённого расстояния для каждого кандидата.
func (uc *PlaceUseCase) Nearest(ctx context.Context, req dto.NearestPlacesRequest) (*dto.NearestPlacesResponse, error) {
	if !geo.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !geo.ValidateRadius(req.RadiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultNearestLimit
	}

	// Try cache first
	cacheKey := fmt.Sprintf("nearest:%.5f:%.5f:%.1f:%d", req.Lat, req.Lon, req.RadiusKm, limit)
	if cached, err := uc.cacheRepo.GetNearestPlaces(ctx, cacheKey); err == nil && cached != nil {
		uc.logger.Debug("Nearest places served from cache", zap.String("key", cacheKey))
		return &dto.NearestPlacesResponse{
			Places: cached,
			Total:  len(cached),
		}, nil
	}

	radiusM := req.RadiusKm * 1000

	// Bounding box prefilter
	minLat, minLon, maxLat, maxLon := geo.BoundingBoxAround(req.Lat, req.Lon, radiusM)
	candidates, err := uc.placeRepo.GetInBoundingBox(ctx, domain.BoundingBox{
		MinLat: minLat,
		MinLon: minLon,
		MaxLat: maxLat,
		MaxLon: maxLon,
	}, bboxCandidateLimit)
	if err != nil {
		uc.logger.Error("Failed to get places in bounding box", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	// Расчёт расстояния и отсечение углов рамки
	withDistance := make([]domain.PlaceWithDistance, 0, len(candidates))
	for _, place := range candidates {
		distance := geo.ApproxDistance(req.Lat, req.Lon, place.Lat, place.Lon)
		if distance > radiusM {
			continue
		}
		withDistance = append(withDistance, domain.PlaceWithDistance{
			Place:    *place,
			Distance: distance,
		})
	}

	sort.Slice(withDistance, func(i, j int) bool {
		return withDistance[i].Distance < withDistance[j].Distance
	})

	if len(withDistance) > limit {
		withDistance = withDistance[:limit]
	}

	// Best effort cache write
	if err := uc.cacheRepo.SetNearestPlaces(ctx, cacheKey, withDistance, uc.nearestTTL); err != nil {
		uc.logger.Warn("Failed to cache nearest places", zap.Error(err))
	}

	return &dto.NearestPlacesResponse{
		Places: withDistance,
		Total:  len(withDistance),
	}, nil
}

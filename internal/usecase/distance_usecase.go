package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/geodistance-microservice/internal/pkg/errors"
	"github.com/geodistance-microservice/internal/pkg/geo"
	"github.com/geodistance-microservice/internal/usecase/dto"
)

// DistanceUseCase - расчёт расстояний по приближённой haversine-формуле.
// Формула рассчитана на региональные дистанции; strict-режим отклоняет
// пары за пределами порога углового расстояния вместо тихой деградации
// точности.
type DistanceUseCase struct {
	logger           *zap.Logger
	maxSeparationDeg float64
	strict           bool
}

func NewDistanceUseCase(logger *zap.Logger, maxSeparationDeg float64, strict bool) *DistanceUseCase {
	if maxSeparationDeg <= 0 {
		maxSeparationDeg = geo.DefaultMaxSeparationDeg
	}
	return &DistanceUseCase{
		logger:           logger,
		maxSeparationDeg: maxSeparationDeg,
		strict:           strict,
	}
}

// Distance вычисляет приближённое расстояние между двумя точками
func (uc *DistanceUseCase) Distance(ctx context.Context, req dto.DistanceRequest) (*dto.DistanceResponse, error) {
	// Validate coordinates
	if !geo.ValidateCoordinates(req.From.Lat, req.From.Lon) ||
		!geo.ValidateCoordinates(req.To.Lat, req.To.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	separation := geo.SeparationDegrees(req.From.Lat, req.From.Lon, req.To.Lat, req.To.Lon)

	// Strict mode: reject pairs outside the approximation range
	if (uc.strict || req.Strict) && separation > uc.maxSeparationDeg {
		uc.logger.Warn("Pair outside approximation range",
			zap.Float64("separation_deg", separation),
			zap.Float64("max_separation_deg", uc.maxSeparationDeg))
		return nil, errors.ErrSeparationTooLarge.WithDetails(map[string]interface{}{
			"separation_deg":     separation,
			"max_separation_deg": uc.maxSeparationDeg,
		})
	}

	distance := geo.ApproxDistance(req.From.Lat, req.From.Lon, req.To.Lat, req.To.Lon)

	return &dto.DistanceResponse{
		Distance:      distance,
		SeparationDeg: separation,
	}, nil
}

// BatchDistance - пакетный расчёт расстояний для нескольких пар
func (uc *DistanceUseCase) BatchDistance(ctx context.Context, req dto.BatchDistanceRequest) (*dto.BatchDistanceResponse, error) {
	if len(req.Pairs) == 0 {
		return nil, errors.ErrInvalidRequest
	}

	// Структура для хранения результатов
	type indexedResult struct {
		index  int
		result dto.BatchDistanceResult
	}

	// Канал для результатов
	resultsChan := make(chan indexedResult, len(req.Pairs))

	// Параллельная обработка каждой пары: расчёт чистый и потокобезопасный
	for i, pair := range req.Pairs {
		go func(idx int, p dto.DistancePair) {
			resp, err := uc.Distance(ctx, dto.DistanceRequest{
				From:   p.From,
				To:     p.To,
				Strict: req.Strict,
			})
			if err != nil {
				resultsChan <- indexedResult{
					index:  idx,
					result: dto.BatchDistanceResult{Error: err.Error()},
				}
				return
			}
			resultsChan <- indexedResult{
				index:  idx,
				result: dto.BatchDistanceResult{Distance: resp.Distance},
			}
		}(i, pair)
	}

	// Сбор результатов
	results := make([]dto.BatchDistanceResult, len(req.Pairs))
	for i := 0; i < len(req.Pairs); i++ {
		res := <-resultsChan
		results[res.index] = res.result
	}
	close(resultsChan)

	return &dto.BatchDistanceResponse{Results: results}, nil
}

// Compare сравнивает приближённую формулу с точной haversine для пары
// точек. Используется для контроля погрешности на реальных данных.
func (uc *DistanceUseCase) Compare(ctx context.Context, req dto.CompareRequest) (*dto.CompareResponse, error) {
	if !geo.ValidateCoordinates(req.From.Lat, req.From.Lon) ||
		!geo.ValidateCoordinates(req.To.Lat, req.To.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	approx := geo.ApproxDistance(req.From.Lat, req.From.Lon, req.To.Lat, req.To.Lon)
	exact := geo.HaversineDistance(req.From.Lat, req.From.Lon, req.To.Lat, req.To.Lon)

	absErr := approx - exact
	if absErr < 0 {
		absErr = -absErr
	}

	relErr := 0.0
	if exact > 0 {
		relErr = absErr / exact
	}

	return &dto.CompareResponse{
		Approximate:   approx,
		Exact:         exact,
		AbsoluteError: absErr,
		RelativeError: relErr,
		SeparationDeg: geo.SeparationDegrees(req.From.Lat, req.From.Lon, req.To.Lat, req.To.Lon),
	}, nil
}

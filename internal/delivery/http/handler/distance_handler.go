package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geodistance-microservice/internal/pkg/utils"
	"github.com/geodistance-microservice/internal/pkg/validator"
	"github.com/geodistance-microservice/internal/usecase"
	"github.com/geodistance-microservice/internal/usecase/dto"
)

// DistanceHandler - обработчик запросов на расчёт расстояний
type DistanceHandler struct {
	distanceUC *usecase.DistanceUseCase
	logger     *zap.Logger
}

// NewDistanceHandler - создание нового DistanceHandler
func NewDistanceHandler(distanceUC *usecase.DistanceUseCase, logger *zap.Logger) *DistanceHandler {
	return &DistanceHandler{
		distanceUC: distanceUC,
		logger:     logger,
	}
}

// Distance - расчёт приближённого расстояния между двумя точками
// @Summary Approximate distance between two coordinates
// @Tags distance
// @Accept json
// @Produce json
// @Param request body dto.DistanceRequest true "Coordinate pair"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/distance [post]
func (h *DistanceHandler) Distance(c *fiber.Ctx) error {
	var req dto.DistanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.distanceUC.Distance(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// BatchDistance - пакетный расчёт расстояний для нескольких пар точек
// @Summary Batch approximate distances
// @Tags distance
// @Accept json
// @Produce json
// @Param request body dto.BatchDistanceRequest true "Coordinate pairs"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/batch/distance [post]
func (h *DistanceHandler) BatchDistance(c *fiber.Ctx) error {
	var req dto.BatchDistanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.distanceUC.BatchDistance(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Results),
	})
}

// Compare - сравнение приближённой формулы с точной haversine
// @Summary Compare approximate formula against exact haversine
// @Tags distance
// @Accept json
// @Produce json
// @Param request body dto.CompareRequest true "Coordinate pair"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/distance/compare [post]
func (h *DistanceHandler) Compare(c *fiber.Ctx) error {
	var req dto.CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.distanceUC.Compare(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

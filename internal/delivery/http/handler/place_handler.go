package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geodistance-microservice/internal/pkg/utils"
	"github.com/geodistance-microservice/internal/pkg/validator"
	"github.com/geodistance-microservice/internal/usecase"
	"github.com/geodistance-microservice/internal/usecase/dto"
)

// PlaceHandler - обработчик запросов по именованным местам
type PlaceHandler struct {
	placeUC *usecase.PlaceUseCase
	logger  *zap.Logger
}

// NewPlaceHandler - создание нового PlaceHandler
func NewPlaceHandler(placeUC *usecase.PlaceUseCase, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		placeUC: placeUC,
		logger:  logger,
	}
}

// Create - создание места по координатам
// @Summary Create a named place
// @Tags places
// @Accept json
// @Produce json
// @Param request body dto.CreatePlaceRequest true "Place"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/places [post]
func (h *PlaceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.placeUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// CreateByAddress - создание места по адресу через геокодер
// @Summary Create a named place from a free-text address
// @Tags places
// @Accept json
// @Produce json
// @Param request body dto.CreatePlaceByAddressRequest true "Place with address"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/places/by-address [post]
func (h *PlaceHandler) CreateByAddress(c *fiber.Ctx) error {
	var req dto.CreatePlaceByAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.placeUC.CreateByAddress(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// GetByID - получение места по идентификатору
// @Summary Get a place by ID
// @Tags places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/places/{id} [get]
func (h *PlaceHandler) GetByID(c *fiber.Ctx) error {
	result, err := h.placeUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// List - постраничный список мест
// @Summary List places
// @Tags places
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/places [get]
func (h *PlaceHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	result, err := h.placeUC.List(c.Context(), limit, offset)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: limit,
	})
}

// Delete - удаление места
// @Summary Delete a place
// @Tags places
// @Param id path string true "Place ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/places/{id} [delete]
func (h *PlaceHandler) Delete(c *fiber.Ctx) error {
	if err := h.placeUC.Delete(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// Nearest - поиск ближайших мест в радиусе от точки
// @Summary Nearest places within a radius
// @Tags places
// @Accept json
// @Produce json
// @Param request body dto.NearestPlacesRequest true "Center point and radius"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/places/nearest [post]
func (h *PlaceHandler) Nearest(c *fiber.Ctx) error {
	var req dto.NearestPlacesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.placeUC.Nearest(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

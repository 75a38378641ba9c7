package listing

import (
	"listing-media/core/apperror"
	"listing-media/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for identifier allocation.
type Handler struct {
	allocator *Allocator
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(allocator *Allocator, logger *zap.Logger) *Handler {
	return &Handler{allocator: allocator, logger: logger}
}

// RegisterRoutes registers the listing routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/listings/ids")
	group.Post("/", h.HandleAllocate)
	group.Get("/next", h.HandlePeekNext)
}

// HandleAllocate issues a new listing identifier.
// @Summary Allocate Listing ID
// @Description Consumes the next identifier from the exclusive-listing partition.
// @Tags listings
// @Produce json
// @Success 201 {object} map[string]int64 "listing_id"
// @Failure 503 {object} map[string]string "Allocation Failure"
// @Router /listings/ids [post]
func (h *Handler) HandleAllocate(c *fiber.Ctx) error {
	id, err := h.allocator.Allocate(c.Context())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Allocation failed", zap.Error(err))
		return apperror.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"listing_id": id})
}

// HandlePeekNext previews the next identifier.
// @Summary Preview Next Listing ID
// @Description Advisory only. The value is not reserved and may be taken by a concurrent allocation.
// @Tags listings
// @Produce json
// @Success 200 {object} map[string]interface{} "next"
// @Failure 503 {object} map[string]string "Allocation Failure"
// @Router /listings/ids/next [get]
func (h *Handler) HandlePeekNext(c *fiber.Ctx) error {
	next, err := h.allocator.PeekNext(c.Context())
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"next": next, "advisory": true})
}

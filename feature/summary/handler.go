package summary

import (
	"listing-media/core/apperror"
	"listing-media/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves listing summaries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the summary routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/listings/:id/summary", h.HandleGet)
}

// HandleGet returns the stored summary.
// @Summary Get Listing Summary
// @Description Returns photo_count and primary_photo_url as last recomputed.
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} summary.Summary
// @Failure 400 {object} map[string]string "Invalid listing id"
// @Router /listings/{id}/summary [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperror.Respond(c, apperror.Validation("summary.get", "invalid listing id %q", c.Params("id")))
	}
	sum, err := h.service.Get(c.Context(), int64(id))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Summary read failed", zap.Error(err))
		return apperror.Respond(c, err)
	}
	return c.JSON(sum)
}

package events

import (
	"listing-media/core/apperror"
	"listing-media/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for deletion events.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the event routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/events/blob-deleted", h.HandleBlobDeleted)
}

// HandleBlobDeleted accepts a deletion notice from the blob store or an operator.
// @Summary Report Blob Deletion
// @Description Runs a synchronous consistency pass for the listing owning the URL. Unknown URLs are ignored.
// @Tags events
// @Accept json
// @Produce json
// @Param body body events.BlobDeleted true "Deleted blob"
// @Success 200 {object} map[string]string "status"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 503 {object} map[string]string "Reconcile failed, retry"
// @Router /events/blob-deleted [post]
func (h *Handler) HandleBlobDeleted(c *fiber.Ctx) error {
	var ev BlobDeleted
	if err := c.BodyParser(&ev); err != nil {
		return apperror.Respond(c, apperror.Validation("events.blob_deleted", "invalid body: %v", err))
	}
	if err := h.service.Dispatch(c.Context(), ev); err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Deletion event failed", zap.String("url", ev.URL), zap.Error(err))
		return apperror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"status": "processed"})
}

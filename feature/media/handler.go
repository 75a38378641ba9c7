package media

import (
	"io"
	"strconv"

	"listing-media/core/apperror"
	"listing-media/core/logger"
	"listing-media/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for listing photos.
type Handler struct {
	service    *Service
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, reconciler *Reconciler, logger *zap.Logger) *Handler {
	return &Handler{service: service, reconciler: reconciler, logger: logger}
}

// RegisterRoutes registers the media routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/listings/:id/photos")
	group.Get("/", h.HandleGetPhotos)
	group.Post("/", h.HandleUpload)
	group.Put("/order", h.HandleReorder)
	group.Delete("/:assetID", h.HandleDelete)

	app.Post("/reconcile", h.HandleReconcile)
}

func listingID(c *fiber.Ctx, op string) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation(op, "invalid listing id %q", c.Params("id"))
	}
	return id, nil
}

// HandleGetPhotos lists a listing's photos.
// @Summary List Listing Photos
// @Description Returns the listing's photos ordered by order_index. The first is the primary photo.
// @Tags photos
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {array} models.Asset
// @Failure 400 {object} map[string]string "Invalid listing id"
// @Router /listings/{id}/photos [get]
func (h *Handler) HandleGetPhotos(c *fiber.Ctx) error {
	id, err := listingID(c, "media.get_photos")
	if err != nil {
		return apperror.Respond(c, err)
	}
	photos, err := h.service.GetPhotos(c.Context(), id)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(photos)
}

// HandleUpload attaches one or more photos to a listing.
// @Summary Upload Listing Photos
// @Description Each file is validated, normalized and stored independently. The response carries one result per file in request order.
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Listing ID"
// @Param photos formData file true "Photo files"
// @Param order formData int false "1-based position, single-file uploads only"
// @Success 200 {object} map[string][]media.Result "results"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /listings/{id}/photos [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	const op = "media.upload"
	l := logger.WithRayID(h.logger, c)

	id, err := listingID(c, op)
	if err != nil {
		return apperror.Respond(c, err)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return apperror.Respond(c, apperror.Validation(op, "expected multipart form: %v", err))
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return apperror.Respond(c, apperror.Validation(op, "no files in field %q", "photos"))
	}

	var order *int
	if raw := c.FormValue("order"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || len(files) != 1 {
			return apperror.Respond(c, apperror.Validation(op, "order must be an integer and needs exactly one file"))
		}
		order = &n
	}

	reqs := make([]UploadRequest, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return apperror.Respond(c, apperror.Validation(op, "read %q: %v", fh.Filename, err))
		}
		// One byte past the limit is enough for validation to reject it.
		data, err := io.ReadAll(io.LimitReader(f, h.service.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			return apperror.Respond(c, apperror.Validation(op, "read %q: %v", fh.Filename, err))
		}
		reqs = append(reqs, UploadRequest{
			Filename:      fh.Filename,
			MimeType:      fh.Header.Get("Content-Type"),
			SizeBytes:     fh.Size,
			Bytes:         data,
			ExplicitOrder: order,
		})
	}

	results := h.service.UploadBatch(c.Context(), id, reqs)
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	l.Info("Upload finished", zap.Int64("listing_id", id), zap.Int("files", len(results)), zap.Int("failed", failed))
	return c.JSON(fiber.Map{"results": results})
}

// HandleDelete removes one photo.
// @Summary Delete Listing Photo
// @Description Removes the photo's blob and index row and closes the gap in the order.
// @Tags photos
// @Produce json
// @Param id path int true "Listing ID"
// @Param assetID path string true "Asset ID"
// @Success 204
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /listings/{id}/photos/{assetID} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := listingID(c, "media.delete")
	if err != nil {
		return apperror.Respond(c, err)
	}
	if err := h.service.Delete(c.Context(), id, c.Params("assetID")); err != nil {
		logger.WithRayID(h.logger, c).Warn("Delete failed", zap.Int64("listing_id", id), zap.Error(err))
		return apperror.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderRequest is the body of a reorder call.
type ReorderRequest struct {
	AssetIDs []string `json:"asset_ids"`
}

// HandleReorder applies a new photo order.
// @Summary Reorder Listing Photos
// @Description asset_ids must list every photo of the listing exactly once. The first becomes the primary photo.
// @Tags photos
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param body body media.ReorderRequest true "New order"
// @Success 200 {array} models.Asset
// @Failure 400 {object} map[string]string "Invalid order"
// @Router /listings/{id}/photos/order [put]
func (h *Handler) HandleReorder(c *fiber.Ctx) error {
	const op = "media.reorder"
	id, err := listingID(c, op)
	if err != nil {
		return apperror.Respond(c, err)
	}
	var req ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Respond(c, apperror.Validation(op, "invalid body: %v", err))
	}
	if err := h.service.Reorder(c.Context(), id, req.AssetIDs); err != nil {
		return apperror.Respond(c, err)
	}
	photos, err := h.service.GetPhotos(c.Context(), id)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(photos)
}

// HandleReconcile runs a consistency pass.
// @Summary Reconcile Media Index
// @Description Removes index rows whose blobs are confirmed missing. Probes that time out or fail are reported and never cleaned.
// @Tags reconcile
// @Produce json
// @Param listing_id query int false "Restrict to one listing"
// @Param dry_run query bool false "Report without cleaning"
// @Success 200 {object} reconcile.Report
// @Failure 400 {object} map[string]string "Invalid listing id"
// @Router /reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	const op = "media.reconcile"
	var id int64
	if raw := c.Query("listing_id"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return apperror.Respond(c, apperror.Validation(op, "invalid listing id %q", raw))
		}
		id = n
	}
	dryRun := c.QueryBool("dry_run", false)

	l := logger.WithRayID(h.logger, c)
	l.Info("Triggering reconcile", zap.Int64("listing_id", id), zap.Bool("dry_run", dryRun))

	report, err := h.reconciler.Reconcile(c.Context(), id, reconcile.ReconcileOptions{DryRun: dryRun, Confirmed: !dryRun})
	if err != nil {
		l.Error("Reconcile failed", zap.Error(err))
		return apperror.Respond(c, apperror.Wrap(apperror.KindTransientStorage, op, err))
	}
	return c.JSON(report)
}

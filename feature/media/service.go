package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"listing-media/core/apperror"
	"listing-media/feature/listing"
	"listing-media/feature/media/models"
	"listing-media/feature/media/naming"
	"listing-media/feature/media/pipeline"
	"listing-media/feature/summary"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Service is the media store: it owns the photo index of every listing and keeps
// the listing summary in step with it.
type Service struct {
	db        *gorm.DB
	blobs     BlobStore
	listings  ListingLookup
	summaries *summary.Service
	pipeline  *pipeline.Pipeline
	cfg       Config
	prefix    string
	logger    *zap.Logger
	locks     *listingLocks
	now       func() time.Time
}

// NewService creates a Service. listings may be nil, in which case photos are
// named after the listing id.
func NewService(db *gorm.DB, blobs BlobStore, listings ListingLookup, summaries *summary.Service, cfg Config, prefix string, logger *zap.Logger) *Service {
	return &Service{
		db:        db,
		blobs:     blobs,
		listings:  listings,
		summaries: summaries,
		pipeline:  pipeline.New(cfg.Pipeline()),
		cfg:       cfg,
		prefix:    prefix,
		logger:    logger,
		locks:     newListingLocks(),
		now:       time.Now,
	}
}

type prepared struct {
	req UploadRequest
	out *pipeline.Result
}

// Upload validates, normalizes and stores one photo, then indexes it.
func (s *Service) Upload(ctx context.Context, listingID int64, req UploadRequest) (*models.Asset, error) {
	p, err := s.prepare(ctx, listingID, req)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, listingID, p)
}

// UploadBatch uploads every file independently. Files are processed concurrently
// and indexed in input order; one failure never affects its siblings.
func (s *Service) UploadBatch(ctx context.Context, listingID int64, reqs []UploadRequest) []Result {
	preps := make([]*prepared, len(reqs))
	errs := make([]error, len(reqs))

	g := new(errgroup.Group)
	g.SetLimit(max(s.cfg.TranscodeWorkers, 1))
	for i := range reqs {
		i := i
		g.Go(func() error {
			preps[i], errs[i] = s.prepare(ctx, listingID, reqs[i])
			return nil
		})
	}
	_ = g.Wait()

	results := make([]Result, len(reqs))
	for i, req := range reqs {
		results[i].Filename = req.Filename
		if errs[i] == nil {
			results[i].Asset, errs[i] = s.commit(ctx, listingID, preps[i])
		}
		if errs[i] != nil {
			results[i].Error = errs[i].Error()
			results[i].Kind = string(apperror.KindOf(errs[i]))
		}
	}
	return results
}

func (s *Service) validate(listingID int64, req UploadRequest) (string, error) {
	const op = "media.upload"
	if listingID <= 0 {
		return "", apperror.Validation(op, "invalid listing id %d", listingID)
	}
	if len(req.Bytes) == 0 {
		return "", apperror.Validation(op, "file %q is empty", req.Filename)
	}
	size := max(req.SizeBytes, int64(len(req.Bytes)))
	if size > s.cfg.MaxUploadBytes {
		return "", apperror.Validation(op, "file %q is %d bytes, limit is %d", req.Filename, size, s.cfg.MaxUploadBytes)
	}
	if declared := req.MimeType; declared != "" && declared != "application/octet-stream" && !pipeline.Allowed(declared) {
		return "", apperror.Validation(op, "file %q has unsupported type %q", req.Filename, req.MimeType)
	}
	sniffed := pipeline.Sniff(req.Bytes)
	if !pipeline.Allowed(sniffed) {
		return "", apperror.Validation(op, "file %q content is %q, not an accepted image type", req.Filename, sniffed)
	}
	return sniffed, nil
}

// prepare runs every side-effect-free step of an upload.
func (s *Service) prepare(ctx context.Context, listingID int64, req UploadRequest) (*prepared, error) {
	const op = "media.upload"
	mime, err := s.validate(listingID, req)
	if err != nil {
		return nil, err
	}

	count, err := s.photoCount(ctx, listingID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransientStorage, op, err)
	}
	if count >= s.cfg.MaxPhotosPerListing {
		return nil, s.capacityError(listingID)
	}

	out, err := s.pipeline.Process(ctx, req.Bytes, mime)
	if errors.Is(err, pipeline.ErrUndecodable) || errors.Is(err, pipeline.ErrTooManyPixels) {
		return nil, &apperror.Error{Kind: apperror.KindValidation, Op: op, Msg: fmt.Sprintf("file %q", req.Filename), Err: err}
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransientStorage, op, err)
	}
	if !out.Transcoded {
		s.logger.Warn("Transcode failed, stored in original format",
			zap.Int64("listing_id", listingID), zap.String("filename", req.Filename))
	}
	return &prepared{req: req, out: out}, nil
}

func (s *Service) capacityError(listingID int64) error {
	return apperror.New(apperror.KindCapacity, "media.upload",
		"listing %d already has %d photos", listingID, s.cfg.MaxPhotosPerListing)
}

// commit stores the blob and indexes it while holding the listing lock. Any
// failure after the blob write deletes the blob again.
func (s *Service) commit(ctx context.Context, listingID int64, p *prepared) (*models.Asset, error) {
	const op = "media.upload"
	unlock := s.locks.lock(listingID)
	defer unlock()

	addr, err := s.address(ctx, listingID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransientStorage, op, err)
	}
	base := naming.Base(addr, listingID)
	now := s.now().UTC()

	var (
		asset *models.Asset
		url   string
		sum   *summary.Summary
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := summary.LockListing(tx, listingID); err != nil {
			return err
		}
		photos, err := photosOf(tx, listingID)
		if err != nil {
			return err
		}
		if len(photos) >= s.cfg.MaxPhotosPerListing {
			return s.capacityError(listingID)
		}

		number := nextPhotoNumber(photos, base)
		filename := naming.Filename(base, number, p.out.Ext)
		path := naming.ObjectPath(s.prefix, now, listingID, filename)

		url, err = s.blobs.Put(ctx, path, p.out.Data, p.out.MIME)
		if err != nil {
			url = ""
			return apperror.Wrap(apperror.KindTransientStorage, op, err)
		}

		position := len(photos) + 1
		if p.req.ExplicitOrder != nil {
			position = min(max(*p.req.ExplicitOrder, 1), len(photos)+1)
		}
		if position <= len(photos) {
			err := tx.Model(&models.Asset{}).
				Where("listing_id = ? AND category = ? AND order_index >= ?", listingID, models.CategoryPhoto, position).
				UpdateColumn("order_index", gorm.Expr("order_index + 1")).Error
			if err != nil {
				return err
			}
		}

		asset = &models.Asset{
			ID:         uuid.NewString(),
			ListingID:  listingID,
			ListingKey: addr.ListingKey,
			URL:        url,
			Category:   models.CategoryPhoto,
			OrderIndex: position,
			Filename:   filename,
			AltText:    naming.AltText(addr, listingID, number),
			MimeType:   p.out.MIME,
			Width:      p.out.Width,
			Height:     p.out.Height,
			SizeBytes:  int64(len(p.out.Data)),
			CreatedAt:  now,
		}
		if err := tx.Create(asset).Error; err != nil {
			return err
		}

		sum, err = summary.Recompute(tx, listingID)
		return err
	})
	if err != nil {
		if url != "" {
			if derr := s.blobs.Delete(context.WithoutCancel(ctx), url); derr != nil {
				s.logger.Error("Rollback could not delete blob", zap.String("url", url), zap.Error(derr))
			}
		}
		return nil, classify(op, err)
	}

	s.summaries.Publish(ctx, sum)
	s.logger.Info("Photo uploaded",
		zap.Int64("listing_id", listingID),
		zap.String("asset_id", asset.ID),
		zap.Int("order_index", asset.OrderIndex),
	)
	return asset, nil
}

// Delete removes a photo's index row and blob in one transaction and closes the
// gap in the order sequence. The blob is deleted last, so its failure rolls back
// the row changes.
func (s *Service) Delete(ctx context.Context, listingID int64, assetID string) error {
	const op = "media.delete"
	if listingID <= 0 || assetID == "" {
		return apperror.Validation(op, "listing id and asset id are required")
	}
	unlock := s.locks.lock(listingID)
	defer unlock()

	var sum *summary.Summary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := summary.LockListing(tx, listingID); err != nil {
			return err
		}
		var asset models.Asset
		err := tx.Where("id = ? AND listing_id = ?", assetID, listingID).Take(&asset).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.KindNotFound, op, "asset %s not found on listing %d", assetID, listingID)
		}
		if err != nil {
			return err
		}

		if sum, err = removeRow(tx, asset); err != nil {
			return err
		}
		if err := s.blobs.Delete(ctx, asset.URL); err != nil {
			return apperror.Wrap(apperror.KindTransientStorage, op, err)
		}
		return nil
	})
	if err != nil {
		return classify(op, err)
	}

	s.summaries.Publish(ctx, sum)
	s.logger.Info("Photo deleted", zap.Int64("listing_id", listingID), zap.String("asset_id", assetID))
	return nil
}

// Reorder applies a full permutation of the listing's photos in one transaction.
// assetIDs must name every photo exactly once; the first becomes the primary photo.
func (s *Service) Reorder(ctx context.Context, listingID int64, assetIDs []string) error {
	const op = "media.reorder"
	if listingID <= 0 {
		return apperror.Validation(op, "invalid listing id %d", listingID)
	}
	if len(assetIDs) == 0 {
		return apperror.Validation(op, "asset_ids is empty")
	}
	seen := make(map[string]bool, len(assetIDs))
	for _, id := range assetIDs {
		if seen[id] {
			return apperror.Validation(op, "asset %s listed twice", id)
		}
		seen[id] = true
	}

	unlock := s.locks.lock(listingID)
	defer unlock()

	var sum *summary.Summary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := summary.LockListing(tx, listingID); err != nil {
			return err
		}
		photos, err := photosOf(tx, listingID)
		if err != nil {
			return err
		}
		if len(photos) != len(assetIDs) {
			return apperror.Validation(op, "order must list all %d photos, got %d", len(photos), len(assetIDs))
		}
		current := make(map[string]int, len(photos))
		for _, p := range photos {
			current[p.ID] = p.OrderIndex
		}
		for _, id := range assetIDs {
			if _, ok := current[id]; !ok {
				return apperror.Validation(op, "asset %s is not a photo of listing %d", id, listingID)
			}
		}

		for i, id := range assetIDs {
			want := i + 1
			if current[id] == want {
				continue
			}
			if err := tx.Model(&models.Asset{}).Where("id = ?", id).UpdateColumn("order_index", want).Error; err != nil {
				return err
			}
		}

		sum, err = summary.Recompute(tx, listingID)
		return err
	})
	if err != nil {
		return classify(op, err)
	}

	s.summaries.Publish(ctx, sum)
	return nil
}

// GetPhotos returns a listing's photos ordered by order_index.
func (s *Service) GetPhotos(ctx context.Context, listingID int64) ([]models.Asset, error) {
	if listingID <= 0 {
		return nil, apperror.Validation("media.get_photos", "invalid listing id %d", listingID)
	}
	photos, err := photosOf(s.db.WithContext(ctx), listingID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransientStorage, "media.get_photos", err)
	}
	return photos, nil
}

// ListAssets returns every indexed asset of a listing, or of all listings when listingID is 0.
func (s *Service) ListAssets(ctx context.Context, listingID int64) ([]models.Asset, error) {
	q := s.db.WithContext(ctx).Order("listing_id ASC, order_index ASC")
	if listingID != 0 {
		q = q.Where("listing_id = ?", listingID)
	}
	assets := []models.Asset{}
	if err := q.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindByURL returns the asset stored at url, or nil when none is.
func (s *Service) FindByURL(ctx context.Context, url string) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.WithContext(ctx).Where("url = ?", url).Take(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// RemoveOrphan deletes asset's index row if, under the listing lock, the row still
// points at the same URL and stillMissing confirms the blob is gone. It reports
// whether a row was removed.
func (s *Service) RemoveOrphan(ctx context.Context, asset models.Asset, stillMissing func(context.Context) (bool, error)) (bool, error) {
	unlock := s.locks.lock(asset.ListingID)
	defer unlock()

	var (
		removed bool
		sum     *summary.Summary
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := summary.LockListing(tx, asset.ListingID); err != nil {
			return err
		}
		var current models.Asset
		err := tx.Where("id = ? AND listing_id = ? AND url = ?", asset.ID, asset.ListingID, asset.URL).Take(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		missing, err := stillMissing(ctx)
		if err != nil || !missing {
			return err
		}

		if sum, err = removeRow(tx, current); err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if removed {
		s.summaries.Publish(ctx, sum)
		s.logger.Info("Orphaned photo removed",
			zap.Int64("listing_id", asset.ListingID),
			zap.String("asset_id", asset.ID),
			zap.String("url", asset.URL),
		)
	}
	return removed, nil
}

// removeRow deletes one index row, closes the order gap and recomputes the summary.
func removeRow(tx *gorm.DB, asset models.Asset) (*summary.Summary, error) {
	if err := tx.Delete(&models.Asset{}, "id = ?", asset.ID).Error; err != nil {
		return nil, err
	}
	if asset.Category == models.CategoryPhoto {
		err := tx.Model(&models.Asset{}).
			Where("listing_id = ? AND category = ? AND order_index > ?", asset.ListingID, models.CategoryPhoto, asset.OrderIndex).
			UpdateColumn("order_index", gorm.Expr("order_index - 1")).Error
		if err != nil {
			return nil, err
		}
	}
	return summary.Recompute(tx, asset.ListingID)
}

func photosOf(db *gorm.DB, listingID int64) ([]models.Asset, error) {
	photos := []models.Asset{}
	err := db.Where("listing_id = ? AND category = ?", listingID, models.CategoryPhoto).
		Order("order_index ASC").
		Find(&photos).Error
	return photos, err
}

func (s *Service) photoCount(ctx context.Context, listingID int64) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Asset{}).
		Where("listing_id = ? AND category = ?", listingID, models.CategoryPhoto).
		Count(&count).Error
	return int(count), err
}

func (s *Service) address(ctx context.Context, listingID int64) (naming.Address, error) {
	if s.listings == nil {
		return naming.Address{}, nil
	}
	rec, err := s.listings.Lookup(ctx, listingID)
	if err != nil || rec == nil {
		return naming.Address{}, err
	}
	return addressOf(rec), nil
}

func addressOf(rec *listing.Record) naming.Address {
	return naming.Address{
		ListingKey:   rec.ListingKey,
		StreetNumber: rec.StreetNumber,
		StreetName:   rec.StreetName,
		Unit:         rec.Unit,
		City:         rec.City,
		State:        rec.State,
		PostalCode:   rec.PostalCode,
	}
}

// nextPhotoNumber returns count+1, skipped forward past numbers already used in
// file names of the listing's photos.
func nextPhotoNumber(photos []models.Asset, base string) int {
	used := make(map[string]bool, len(photos))
	for _, p := range photos {
		used[trimExt(p.Filename)] = true
	}
	n := len(photos) + 1
	for used[trimExt(naming.Filename(base, n, ""))] {
		n++
	}
	return n
}

func trimExt(name string) string {
	for i := len(name) - 1; i >= 0 && name[i] != '-'; i-- {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}

// classify leaves classified errors alone and marks everything else as a
// retryable storage failure.
func classify(op string, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Wrap(apperror.KindTransientStorage, op, err)
}

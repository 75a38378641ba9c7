package reconcile

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"listing-media/core/reconcile"
	"listing-media/feature/media/models"
)

// Index is the media index the adapter reconciles.
type Index interface {
	ListAssets(ctx context.Context, listingID int64) ([]models.Asset, error)
	RemoveOrphan(ctx context.Context, asset models.Asset, stillMissing func(context.Context) (bool, error)) (bool, error)
}

// Prober checks whether a blob URL still resolves. Ready fails when the store
// cannot answer for any object, such as a missing bucket.
type Prober interface {
	Ready(ctx context.Context) error
	Exists(ctx context.Context, url string) (bool, error)
}

// MediaAdapter implements the reconcile.Adapter interface for listing photos.
type MediaAdapter struct {
	index        Index
	prober       Prober
	probeTimeout time.Duration
}

// NewAdapter creates a new media adapter. probeTimeout bounds the re-probe done
// under the listing lock before a row is removed.
func NewAdapter(index Index, prober Prober, probeTimeout time.Duration) *MediaAdapter {
	return &MediaAdapter{index: index, prober: prober, probeTimeout: probeTimeout}
}

// Name returns the unique name of this adapter.
func (a *MediaAdapter) Name() string {
	return "media"
}

// ScopeOf returns the reconcile scope of one listing.
func ScopeOf(listingID int64) reconcile.Scope {
	if listingID == 0 {
		return reconcile.ScopeAll
	}
	return reconcile.Scope(strconv.FormatInt(listingID, 10))
}

func parseScope(scope reconcile.Scope) (int64, error) {
	if scope == reconcile.ScopeAll {
		return 0, nil
	}
	id, err := strconv.ParseInt(string(scope), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid listing scope %q", scope)
	}
	return id, nil
}

// LoadIndex returns every indexed asset in scope.
func (a *MediaAdapter) LoadIndex(ctx context.Context, scope reconcile.Scope) ([]reconcile.Item, error) {
	listingID, err := parseScope(scope)
	if err != nil {
		return nil, err
	}
	if err := a.prober.Ready(ctx); err != nil {
		return nil, fmt.Errorf("blob store not ready: %w", err)
	}
	assets, err := a.index.ListAssets(ctx, listingID)
	if err != nil {
		return nil, err
	}

	items := make([]reconcile.Item, 0, len(assets))
	for _, asset := range assets {
		items = append(items, reconcile.Item{
			Key:     asset.ID,
			Scope:   ScopeOf(asset.ListingID),
			Locator: asset.URL,
		})
	}
	return items, nil
}

// Probe reports whether the asset's blob exists.
func (a *MediaAdapter) Probe(ctx context.Context, item reconcile.Item) (reconcile.Presence, error) {
	exists, err := a.prober.Exists(ctx, item.Locator)
	if err != nil {
		return reconcile.PresenceUnknown, err
	}
	if exists {
		return reconcile.PresencePresent, nil
	}
	return reconcile.PresenceMissing, nil
}

// Clean removes the asset's index row if its blob is still missing when
// re-probed under the listing lock.
func (a *MediaAdapter) Clean(ctx context.Context, item reconcile.Item) (bool, error) {
	listingID, err := parseScope(item.Scope)
	if err != nil {
		return false, err
	}
	if listingID == 0 {
		return false, fmt.Errorf("item %s has no listing scope", item.Key)
	}
	asset := models.Asset{ID: item.Key, ListingID: listingID, URL: item.Locator}

	return a.index.RemoveOrphan(ctx, asset, func(ctx context.Context) (bool, error) {
		if a.probeTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.probeTimeout)
			defer cancel()
		}
		exists, err := a.prober.Exists(ctx, item.Locator)
		if err != nil {
			return false, fmt.Errorf("re-probe %s: %w", item.Locator, err)
		}
		return !exists, nil
	})
}

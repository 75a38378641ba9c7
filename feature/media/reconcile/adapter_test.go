package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"listing-media/core/reconcile"
	"listing-media/feature/media/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIndex struct {
	mock.Mock
	stillMissing func(context.Context) (bool, error)
}

func (m *mockIndex) ListAssets(ctx context.Context, listingID int64) ([]models.Asset, error) {
	args := m.Called(ctx, listingID)
	assets, _ := args.Get(0).([]models.Asset)
	return assets, args.Error(1)
}

func (m *mockIndex) RemoveOrphan(ctx context.Context, asset models.Asset, stillMissing func(context.Context) (bool, error)) (bool, error) {
	m.stillMissing = stillMissing
	args := m.Called(ctx, asset)
	return args.Bool(0), args.Error(1)
}

type mockProber struct {
	mock.Mock
}

func (m *mockProber) Ready(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockProber) Exists(ctx context.Context, url string) (bool, error) {
	args := m.Called(ctx, url)
	return args.Bool(0), args.Error(1)
}

func TestMediaAdapter_LoadIndex(t *testing.T) {
	index := new(mockIndex)
	prober := new(mockProber)
	prober.On("Ready", mock.Anything).Return(nil)
	adapter := NewAdapter(index, prober, time.Second)

	index.On("ListAssets", mock.Anything, int64(7)).Return([]models.Asset{
		{ID: "a", ListingID: 7, URL: "http://blob/a.webp"},
		{ID: "b", ListingID: 7, URL: "http://blob/b.webp"},
	}, nil)
	index.On("ListAssets", mock.Anything, int64(0)).Return([]models.Asset{}, nil)

	items, err := adapter.LoadIndex(context.Background(), ScopeOf(7))
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Item{
		{Key: "a", Scope: "7", Locator: "http://blob/a.webp"},
		{Key: "b", Scope: "7", Locator: "http://blob/b.webp"},
	}, items)

	items, err = adapter.LoadIndex(context.Background(), reconcile.ScopeAll)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = adapter.LoadIndex(context.Background(), "not-a-listing")
	assert.Error(t, err)
	index.AssertExpectations(t)
}

func TestMediaAdapter_LoadIndexRequiresReadyStore(t *testing.T) {
	index := new(mockIndex)
	prober := new(mockProber)
	prober.On("Ready", mock.Anything).Return(errors.New("bucket does not exist"))
	adapter := NewAdapter(index, prober, time.Second)

	_, err := adapter.LoadIndex(context.Background(), ScopeOf(7))
	assert.ErrorContains(t, err, "bucket does not exist")
	index.AssertNotCalled(t, "ListAssets", mock.Anything, mock.Anything)
}

func TestMediaAdapter_Probe(t *testing.T) {
	prober := new(mockProber)
	adapter := NewAdapter(new(mockIndex), prober, time.Second)

	prober.On("Exists", mock.Anything, "present").Return(true, nil)
	prober.On("Exists", mock.Anything, "missing").Return(false, nil)
	prober.On("Exists", mock.Anything, "broken").Return(false, errors.New("connection reset"))

	tests := []struct {
		locator string
		want    reconcile.Presence
		wantErr bool
	}{
		{"present", reconcile.PresencePresent, false},
		{"missing", reconcile.PresenceMissing, false},
		{"broken", reconcile.PresenceUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			got, err := adapter.Probe(context.Background(), reconcile.Item{Locator: tt.locator})
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestMediaAdapter_CleanReprobes(t *testing.T) {
	index := new(mockIndex)
	prober := new(mockProber)
	adapter := NewAdapter(index, prober, time.Second)

	item := reconcile.Item{Key: "a", Scope: "7", Locator: "http://blob/a.webp"}
	index.On("RemoveOrphan", mock.Anything, models.Asset{ID: "a", ListingID: 7, URL: "http://blob/a.webp"}).Return(true, nil)

	cleaned, err := adapter.Clean(context.Background(), item)
	require.NoError(t, err)
	assert.True(t, cleaned)
	require.NotNil(t, index.stillMissing)

	prober.On("Exists", mock.Anything, "http://blob/a.webp").Return(true, nil).Once()
	missing, err := index.stillMissing(context.Background())
	require.NoError(t, err)
	assert.False(t, missing, "blob that reappeared must not be treated as missing")

	prober.On("Exists", mock.Anything, "http://blob/a.webp").Return(false, errors.New("timeout")).Once()
	_, err = index.stillMissing(context.Background())
	assert.Error(t, err)
}

func TestMediaAdapter_CleanRejectsBadScope(t *testing.T) {
	adapter := NewAdapter(new(mockIndex), new(mockProber), time.Second)
	_, err := adapter.Clean(context.Background(), reconcile.Item{Key: "a", Scope: reconcile.ScopeAll})
	assert.Error(t, err)
}

package listing

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandler(t *testing.T) {
	db := setupTestDB(t, "listing_handler")
	feature := NewFeature(db, testCfg, zap.NewNop())
	require.NoError(t, feature.Allocator().Seed(context.Background()))

	assert.Equal(t, "listing", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	t.Run("Peek", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/listings/ids/next", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, float64(1), body["next"])
		assert.Equal(t, true, body["advisory"])
	})

	t.Run("Allocate", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/listings/ids", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body map[string]int64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(1), body["listing_id"])
	})
}

func TestHandler_AllocationFailure(t *testing.T) {
	db := setupTestDB(t, "listing_handler_unseeded")
	app := fiber.New()
	require.NoError(t, NewFeature(db, testCfg, zap.NewNop()).Load(app))

	resp, err := app.Test(httptest.NewRequest("POST", "/listings/ids", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestFeature_DisabledWithoutDB(t *testing.T) {
	assert.False(t, NewFeature(nil, testCfg, zap.NewNop()).IsEnabled())
}

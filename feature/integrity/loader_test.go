package integrity

import (
	"testing"

	"listing-media/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	feature := NewFeature(new(mocks.Client), "test-bucket", []string{"listings"}, nil, zap.NewNop())

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))

	assert.False(t, NewFeature(nil, "test-bucket", nil, nil, zap.NewNop()).IsEnabled())
}

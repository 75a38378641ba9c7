package apperror_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"listing-media/core/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Validation", apperror.Validation("op", "bad"), fiber.StatusBadRequest},
		{"Capacity", apperror.New(apperror.KindCapacity, "op", "full"), fiber.StatusConflict},
		{"NotFound", apperror.New(apperror.KindNotFound, "op", "gone"), fiber.StatusNotFound},
		{"Transient", apperror.Wrap(apperror.KindTransientStorage, "op", errors.New("x")), fiber.StatusServiceUnavailable},
		{"Allocation", apperror.Wrap(apperror.KindAllocationFailure, "op", errors.New("x")), fiber.StatusServiceUnavailable},
		{"Unclassified", errors.New("x"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperror.Status(tt.err))
		})
	}
}

func TestRespond(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return apperror.Respond(c, apperror.Validation("media.upload", "file too large"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "validation", body["kind"])
	assert.Equal(t, "media.upload: file too large", body["error"])
}

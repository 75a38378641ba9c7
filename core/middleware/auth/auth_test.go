package auth_test

import (
	"net/http/httptest"
	"testing"

	"listing-media/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newApp(cfg auth.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(cfg))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app
}

func TestAuth(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		resp, _ := newApp(auth.Config{}).Test(httptest.NewRequest("GET", "/ping", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Missing Key", func(t *testing.T) {
		resp, _ := newApp(auth.Config{ApiKey: "secret"}).Test(httptest.NewRequest("GET", "/ping", nil))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Wrong Key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(auth.HeaderName, "nope")
		resp, _ := newApp(auth.Config{ApiKey: "secret"}).Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Header Key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(auth.HeaderName, "secret")
		resp, _ := newApp(auth.Config{ApiKey: "secret"}).Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Query Key", func(t *testing.T) {
		resp, _ := newApp(auth.Config{ApiKey: "secret"}).Test(httptest.NewRequest("GET", "/ping?api_key=secret", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Skipped Path", func(t *testing.T) {
		app := newApp(auth.Config{ApiKey: "secret", Skip: func(c *fiber.Ctx) bool { return c.Path() == "/ping" }})
		resp, _ := app.Test(httptest.NewRequest("GET", "/ping", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

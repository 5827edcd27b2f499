package fiber_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	gofiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-performance-dashboard/app/templates"
	FiberApp "student-performance-dashboard/fiber"
)

func TestErrorHandler(t *testing.T) {
	app := FiberApp.SetupFiber(templates.NewEngine(""))
	app.Get("/api/boom", func(c *gofiber.Ctx) error {
		return gofiber.NewError(gofiber.StatusBadGateway, "backend down")
	})
	app.Get("/boom", func(c *gofiber.Ctx) error {
		return gofiber.NewError(gofiber.StatusNotFound, "no such page")
	})
	app.Get("/panic", func(c *gofiber.Ctx) error {
		panic("kaboom")
	})

	t.Run("Error: JSON under /api", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/boom", nil))
		require.NoError(t, err)
		assert.Equal(t, 502, resp.StatusCode)

		var body struct {
			Success bool `json:"success"`
			Notice  struct {
				Message string `json:"message"`
			} `json:"notice"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, "backend down", body.Notice.Message)
	})

	t.Run("Error: rendered page elsewhere", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(raw), "no such page")
		assert.Contains(t, string(raw), "<html")
	})

	t.Run("Error: panic is recovered", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
	})
}

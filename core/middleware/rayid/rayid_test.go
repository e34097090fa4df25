package rayid_test

import (
	"net/http/httptest"
	"testing"

	"gig-calendar/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp() *fiber.App {
	app := fiber.New()
	app.Use(rayid.New())
	app.Get("/probe", func(c *fiber.Ctx) error {
		rid, _ := c.Locals(rayid.LocalsKey).(string)
		return c.SendString(rid)
	})
	return app
}

func TestAssignsRayID(t *testing.T) {
	app := setupApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil))
	require.NoError(t, err)

	rid := resp.Header.Get(rayid.Header)
	require.NotEmpty(t, rid)
	_, err = uuid.Parse(rid)
	assert.NoError(t, err, "generated ray IDs are UUIDs")
}

func TestKeepsIncomingRayID(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set(rayid.Header, "upstream-assigned")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "upstream-assigned", resp.Header.Get(rayid.Header))
}

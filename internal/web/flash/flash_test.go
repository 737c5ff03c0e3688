package flash_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roleadmin/roleadmin/internal/web/flash"
	"github.com/roleadmin/roleadmin/internal/web/session"
)

func TestAddPop(t *testing.T) {
	session.Init(nil, time.Hour, false)
	require.NoError(t, (&session.Data{User: session.User{ID: 1}}).Write("sid"))

	var popped [][]session.Flash

	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		if err := flash.Add(c, flash.Success, "one"); err != nil {
			return err
		}

		return flash.Add(c, flash.Error, "two")
	})
	app.Get("/", func(c *fiber.Ctx) error {
		popped = append(popped, flash.Pop(c))
		return nil
	})

	for _, method := range []string{fiber.MethodPost, fiber.MethodGet, fiber.MethodGet} {
		req := httptest.NewRequest(method, "/", nil)
		req.Header.Set("Cookie", session.CookieName+"=sid")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	require.Len(t, popped, 2)
	assert.Equal(t, []session.Flash{
		{Type: flash.Success, Message: "one"},
		{Type: flash.Error, Message: "two"},
	}, popped[0])
	assert.Empty(t, popped[1])
}

func TestAddWithoutSession(t *testing.T) {
	session.Init(nil, time.Hour, false)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.ErrorIs(t, flash.Add(c, flash.Info, "x"), session.ErrNoSession)
		assert.Nil(t, flash.Pop(c))

		return nil
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
}

package session

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWrite(t *testing.T) {
	Init(nil, time.Hour, false)

	in := &Data{
		User:       User{ID: 7, Username: "admin"},
		Flashes:    []Flash{{Type: "success", Message: "ok"}},
		CSRFTokens: map[string]string{"delete-role": "abc"},
	}
	require.NoError(t, in.Write("sid"))

	out := new(Data)
	require.NoError(t, out.Read("sid"))
	assert.Equal(t, in, out)

	assert.ErrorIs(t, new(Data).Read("unknown"), ErrNoSession)
	assert.ErrorIs(t, new(Data).Read(""), ErrNoSession)
}

func TestGenerateSessionID(t *testing.T) {
	a, err := GenerateSessionID()
	require.NoError(t, err)
	b, err := GenerateSessionID()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestStartFromCtxDestroy(t *testing.T) {
	Init(nil, time.Hour, false)

	app := fiber.New()
	app.Get("/start", func(c *fiber.Ctx) error {
		_, err := Start(c, User{ID: 1, Username: "admin"})
		return err
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		data, _, err := FromCtx(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		return c.SendString(data.User.Username)
	})
	app.Get("/destroy", func(c *fiber.Ctx) error {
		return Destroy(c)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/start", nil))
	require.NoError(t, err)

	var sessionID string
	for _, ck := range resp.Cookies() {
		if ck.Name == CookieName {
			sessionID = ck.Value
		}
	}
	require.NotEmpty(t, sessionID)

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set("Cookie", CookieName+"="+sessionID)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/destroy", nil)
	req.Header.Set("Cookie", CookieName+"="+sessionID)
	_, err = app.Test(req)
	require.NoError(t, err)

	req = httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set("Cookie", CookieName+"="+sessionID)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

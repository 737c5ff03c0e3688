package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roleadmin/roleadmin/internal/web/handler"
	"github.com/roleadmin/roleadmin/internal/web/handler/login"
	"github.com/roleadmin/roleadmin/internal/web/session"
)

func TestMiddleware(t *testing.T) {
	session.Init(nil, time.Minute, false)
	require.NoError(t, (&session.Data{User: session.User{ID: 3, Username: "admin"}}).Write("valid"))

	app := fiber.New()
	app.Use(New("/static"))
	app.Get("/static/app.css", func(c *fiber.Ctx) error { return c.SendString("css") })
	app.Get(login.Path, func(c *fiber.Ctx) error { return c.SendString("login") })
	app.Get("/private", func(c *fiber.Ctx) error {
		user, ok := c.Locals(CurrentUserKey).(session.User)
		if !ok {
			return fiber.ErrTeapot
		}

		return c.SendString(user.Username)
	})

	tests := []struct {
		name     string
		target   string
		cookie   string
		status   int
		location string
	}{
		{name: "public prefix", target: "/static/app.css", status: http.StatusOK},
		{name: "anonymous private", target: "/private", status: http.StatusFound, location: login.Path},
		{name: "unknown session", target: "/private", cookie: "gone", status: http.StatusFound, location: login.Path},
		{name: "anonymous login page", target: login.Path, status: http.StatusOK},
		{name: "logged in private", target: "/private", cookie: "valid", status: http.StatusOK},
		{name: "logged in login page", target: login.Path, cookie: "valid", status: http.StatusFound, location: handler.HomePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", session.CookieName+"="+tt.cookie)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.location, resp.Header.Get("Location"))
		})
	}
}

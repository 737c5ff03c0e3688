package logout

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roleadmin/roleadmin/internal/web/handler/login"
	"github.com/roleadmin/roleadmin/internal/web/session"
)

func TestLogout(t *testing.T) {
	session.Init(nil, time.Minute, false)
	require.NoError(t, (&session.Data{User: session.User{ID: 1}}).Write("sid"))

	app := fiber.New()

	var s Service
	require.NoError(t, s.Init(app, nil))

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		req := httptest.NewRequest(method, Path, nil)
		req.Header.Set("Cookie", session.CookieName+"=sid")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, login.Path, resp.Header.Get("Location"))
		assert.Contains(t, resp.Header.Get("Set-Cookie"), session.CookieName+"=")
	}

	assert.ErrorIs(t, new(session.Data).Read("sid"), session.ErrNoSession)
	assert.ErrorIs(t, s.Init(nil, nil), login.ErrNilDeps)
}

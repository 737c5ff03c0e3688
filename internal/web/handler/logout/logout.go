// Package logout ends the session of the current user.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/roleadmin/roleadmin/internal/web/handler"
	"github.com/roleadmin/roleadmin/internal/web/handler/login"
	"github.com/roleadmin/roleadmin/internal/web/session"
)

// Path of the logout route.
const Path = handler.RootPath + "logout"

// Service is the logout handler service.
type Service struct{}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, _ *handler.Deps) error {
	if app == nil {
		return login.ErrNilDeps
	}

	// logout route (outside auth middleware protection)
	app.Get(Path, s.Logout).Name("logout")
	app.Post(Path, s.Logout)

	return nil
}

// Logout handles user logout by clearing the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := session.Destroy(c); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	return c.Redirect(login.Path)
}

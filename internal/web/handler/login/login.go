// Package login authenticates local users and opens their session.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/roleadmin/roleadmin/internal/auth"
	"github.com/roleadmin/roleadmin/internal/db/models"
	"github.com/roleadmin/roleadmin/internal/i18n"
	"github.com/roleadmin/roleadmin/internal/web/handler"
	"github.com/roleadmin/roleadmin/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// RouteName of the login page.
	RouteName = "login"

	template = "login"
)

// Service is the login handler service.
type Service struct {
	local   *auth.LocalProvider
	catalog i18n.Translator
}

// Handler is the login handler.
var Handler = Service{}

type credentials struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.DB == nil || deps.Catalog == nil {
		return ErrNilDeps
	}

	s.local = auth.NewLocalProvider(deps.DB)
	s.catalog = deps.Catalog

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get).Name(RouteName)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, "", "")
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	in := new(credentials)
	if err := c.BodyParser(in); err != nil {
		log.Debug().Err(err).Msg("failed to parse login form")

		return s.render(c, "", ErrInvalidFormData.Error())
	}

	user, err := s.authenticate(in.Username, in.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return s.render(c, in.Username, s.catalog.Trans("login.error.invalid", nil))
		}

		return err
	}

	if _, err := session.Start(c, session.User{ID: user.ID, Username: user.Username, RoleID: user.RoleID}); err != nil {
		return err
	}

	log.Info().Str("user", user.Username).Msg("user logged in")

	return c.Redirect(handler.HomePath)
}

func (s *Service) authenticate(username, password string) (*models.User, error) {
	user, err := s.local.Authenticate(username, password)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrUserAccountDisabled):
		log.Info().Err(err).Str("user", username).Msg("login failed")

		return nil, ErrInvalidCredentials
	default:
		return nil, err
	}
}

func (s *Service) render(c *fiber.Ctx, username, errMsg string) error {
	return c.Render(template, fiber.Map{
		"Username": username,
		"Error":    errMsg,
	})
}

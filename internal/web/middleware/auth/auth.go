package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/roleadmin/roleadmin/internal/web/handler"
	"github.com/roleadmin/roleadmin/internal/web/handler/login"
	"github.com/roleadmin/roleadmin/internal/web/session"
)

// CurrentUserKey is the fiber.Locals key of the logged in session.User.
const CurrentUserKey = "CurrentUser"

// New returns the middleware. Requests below one of the public path prefixes pass unchecked.
func New(public ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := strings.ToLower(c.Path())
		for _, prefix := range public {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		isLoginPage := IsLoginPage(c)

		data, _, err := session.FromCtx(c)
		if err != nil || data.User.ID == 0 {
			// If we're already on the login page, don't redirect (would cause loop)
			if isLoginPage {
				return c.Next()
			}

			return c.Redirect(login.Path)
		}

		// Add the current user to locals for template access
		c.Locals(CurrentUserKey, data.User)

		if isLoginPage {
			return c.Redirect(handler.HomePath)
		}

		return c.Next()
	}
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Path()), login.Path)
}

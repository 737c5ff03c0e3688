package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/roleadmin/roleadmin/internal/web/session"
)

// RequirePermission creates Fiber middleware that requires a specific permission.
// Denials are returned as errors and mapped to a status by the app error handler.
func RequirePermission(authService *Service, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authService.DenyAccessUnlessGranted(c, permission); err != nil {
			return err
		}

		return c.Next()
	}
}

// AddPermissionsToLocals is a Fiber middleware that adds user permissions to fiber.Locals.
// This allows templates to access permissions for conditional rendering.
func AddPermissionsToLocals(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, _, err := session.FromCtx(c)
		if err != nil || data.User.ID == 0 {
			// Not authenticated, continue without permissions
			return c.Next()
		}

		permissions, err := authService.GetUserPermissions(data.User.ID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", data.User.ID).
				Msg("Failed to get user permissions")

			return c.Next()
		}

		granted := make(map[string]bool, len(permissions))
		for _, p := range permissions {
			granted[p] = true
		}

		c.Locals("permissions", permissions)
		c.Locals("hasPermission", func(perm string) bool {
			return granted[perm]
		})

		return c.Next()
	}
}

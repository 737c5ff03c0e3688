// Package flash stores one-shot notifications in the session.
package flash

import (
	"github.com/gofiber/fiber/v2"

	"github.com/roleadmin/roleadmin/internal/web/session"
)

// Flash types understood by the layout.
const (
	Success = "success"
	Error   = "error"
	Warning = "warning"
	Info    = "info"
)

// Add appends a message to the session of the request.
func Add(c *fiber.Ctx, typ, message string) error {
	data, sessionID, err := session.FromCtx(c)
	if err != nil {
		return err
	}

	data.Flashes = append(data.Flashes, session.Flash{Type: typ, Message: message})

	return data.Write(sessionID)
}

// Pop returns the pending messages and removes them from the session.
// Requests without session have no messages.
func Pop(c *fiber.Ctx) []session.Flash {
	data, sessionID, err := session.FromCtx(c)
	if err != nil || len(data.Flashes) == 0 {
		return nil
	}

	out := data.Flashes
	data.Flashes = nil

	if err := data.Write(sessionID); err != nil {
		return nil
	}

	return out
}

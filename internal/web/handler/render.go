package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/roleadmin/roleadmin/internal/web/flash"
)

// Render renders tpl inside the base layout and hands pending flashes to it.
func Render(c *fiber.Ctx, tpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}

	data["Flashes"] = flash.Pop(c)

	return c.Render(tpl, data, BaseLayout)
}

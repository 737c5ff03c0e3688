// Package auth provides the session check in front of every non-public route.
//
// Anonymous requests are redirected to the login page, logged in users visiting
// the login page are sent home. The session user is put into fiber.Locals so
// templates can show it.
//
// Usage:
//
//	app.Use(authmiddleware.New("/static", "/logout"))
package auth

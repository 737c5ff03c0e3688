// Package handler holds what the web handlers share.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/roleadmin/roleadmin/internal/auth"
	"github.com/roleadmin/roleadmin/internal/config"
	"github.com/roleadmin/roleadmin/internal/i18n"
	"github.com/roleadmin/roleadmin/internal/web/csrf"
)

// Deps are the collaborators injected into handlers.
type Deps struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Auth    *auth.Service
	Catalog *i18n.Catalog
	CSRF    *csrf.Manager
}

// Valid reports whether every collaborator is set.
func (d *Deps) Valid() bool {
	return d != nil && d.Cfg != nil && d.DB != nil && d.Auth != nil && d.Catalog != nil && d.CSRF != nil
}

// Service is a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}

package role

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/roleadmin/roleadmin/internal/db/models"
	"github.com/roleadmin/roleadmin/internal/web/adminlist"
)

// Configurator presents roles in the admin list. It is created per request.
type Configurator struct {
	db *gorm.DB
}

// NewConfigurator creates the configurator on db.
func NewConfigurator(db *gorm.DB) *Configurator {
	return &Configurator{db: db}
}

// EntityName implements adminlist.Configurator.
func (*Configurator) EntityName() string {
	return "Role"
}

// Columns implements adminlist.Configurator.
func (*Configurator) Columns() []adminlist.Column[models.Role] {
	return []adminlist.Column[models.Role]{
		{
			Header:   "usermanagement.roles.column.id",
			Field:    "id",
			Sortable: true,
			Value:    func(r models.Role) string { return strconv.FormatUint(uint64(r.ID), 10) },
		},
		{
			Header:   "usermanagement.roles.column.name",
			Field:    "name",
			Sortable: true,
			Value:    func(r models.Role) string { return r.Name },
		},
		{
			Header: "usermanagement.roles.column.description",
			Field:  "description",
			Value:  func(r models.Role) string { return r.Description },
		},
		{
			Header:   "usermanagement.roles.column.system",
			Field:    "is_system",
			Sortable: true,
			Value: func(r models.Role) string {
				if r.IsSystem {
					return "✓"
				}

				return ""
			},
		},
	}
}

// SearchColumns implements adminlist.Configurator.
func (*Configurator) SearchColumns() []string {
	return []string{"name", "description"}
}

// DefaultOrder implements adminlist.Configurator.
func (*Configurator) DefaultOrder() (string, string) {
	return "name", "asc"
}

// Query implements adminlist.Configurator.
func (c *Configurator) Query() *gorm.DB {
	return c.db.Model(&models.Role{})
}

// ItemID implements adminlist.Configurator.
func (*Configurator) ItemID(r models.Role) uint {
	return r.ID
}

// CanDelete implements adminlist.Configurator.
func (*Configurator) CanDelete(r models.Role) bool {
	return !r.IsSystem
}

// IndexRoute implements adminlist.Configurator.
func (*Configurator) IndexRoute() adminlist.Route {
	return adminlist.Route{Name: RouteList}
}

// AddRoute implements adminlist.Configurator.
func (*Configurator) AddRoute() adminlist.Route {
	return adminlist.Route{Name: RouteAdd}
}

// EditRoute implements adminlist.Configurator.
func (*Configurator) EditRoute(r models.Role) adminlist.Route {
	return adminlist.Route{Name: RouteEdit, Params: fiber.Map{"id": r.ID}}
}

// DeleteRoute implements adminlist.Configurator.
func (*Configurator) DeleteRoute(r models.Role) adminlist.Route {
	return adminlist.Route{Name: RouteDelete, Params: fiber.Map{"id": r.ID}}
}

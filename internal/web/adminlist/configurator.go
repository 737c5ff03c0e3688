package adminlist

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Route is a named fiber route with its params.
type Route struct {
	Name   string
	Params fiber.Map
}

// Column describes one list column.
type Column[T any] struct {
	// Header is a message key.
	Header string
	// Field is the db column used for sorting.
	Field    string
	Sortable bool
	Value    func(T) string
}

// Configurator tells the list how to query and present the entity T.
type Configurator[T any] interface {
	// EntityName is the singular name, e.g. "Role".
	EntityName() string
	Columns() []Column[T]
	// SearchColumns are matched case-insensitively against the search term.
	SearchColumns() []string
	// DefaultOrder returns the sort column and direction ("asc" or "desc").
	DefaultOrder() (string, string)
	// Query is the base query, e.g. db.Model(&models.Role{}).
	Query() *gorm.DB
	ItemID(item T) uint
	CanDelete(item T) bool

	IndexRoute() Route
	AddRoute() Route
	EditRoute(item T) Route
	DeleteRoute(item T) Route
}

// URL resolves r against the named routes of the app.
func URL(c *fiber.Ctx, r Route) (string, error) {
	params := r.Params
	if params == nil {
		params = fiber.Map{}
	}

	return c.GetRouteURL(r.Name, params)
}

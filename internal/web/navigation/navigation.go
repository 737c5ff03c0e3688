// Package navigation holds the page title, active menu entry and breadcrumbs of a page.
package navigation

import "github.com/roleadmin/roleadmin/internal/i18n"

// Menu sections and pages.
const (
	SectionSettings = "settings"
	PageRoles       = "roles"
)

// Breadcrumb is a single breadcrumb link.
type Breadcrumb struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []Breadcrumb
	PageTitle     string

	tr i18n.Translator
}

// New creates a navigation context whose titles are translated with tr.
func New(tr i18n.Translator, section, page string) *Context {
	return &Context{
		ActiveSection: section,
		ActivePage:    page,
		Breadcrumbs:   make([]Breadcrumb, 0),
		tr:            tr,
	}
}

// Title sets the page title from a message key.
func (c *Context) Title(key string, params map[string]string) *Context {
	c.PageTitle = c.tr.Trans(key, params)

	return c
}

// Crumb appends a breadcrumb. The last crumb is the active one.
func (c *Context) Crumb(key, url string, params map[string]string) *Context {
	for i := range c.Breadcrumbs {
		c.Breadcrumbs[i].Active = false
	}

	c.Breadcrumbs = append(c.Breadcrumbs, Breadcrumb{
		Title:  c.tr.Trans(key, params),
		URL:    url,
		Active: true,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

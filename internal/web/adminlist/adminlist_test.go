package adminlist

import (
	"fmt"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/roleadmin/roleadmin/internal/db/models"
)

type roleConf struct {
	db *gorm.DB
}

func (roleConf) EntityName() string { return "Role" }

func (roleConf) Columns() []Column[models.Role] {
	return []Column[models.Role]{
		{Header: "id", Field: "id", Sortable: true, Value: func(r models.Role) string { return strconv.FormatUint(uint64(r.ID), 10) }},
		{Header: "name", Field: "name", Sortable: true, Value: func(r models.Role) string { return r.Name }},
		{Header: "description", Field: "description", Value: func(r models.Role) string { return r.Description }},
	}
}

func (roleConf) SearchColumns() []string { return []string{"name", "description"} }
func (roleConf) DefaultOrder() (string, string) { return "name", "asc" }
func (c roleConf) Query() *gorm.DB { return c.db.Model(&models.Role{}) }
func (roleConf) ItemID(r models.Role) uint { return r.ID }
func (roleConf) CanDelete(r models.Role) bool { return !r.IsSystem }
func (roleConf) IndexRoute() Route { return Route{Name: "list"} }
func (roleConf) AddRoute() Route { return Route{Name: "add"} }
func (roleConf) EditRoute(r models.Role) Route { return Route{Name: "edit", Params: fiber.Map{"id": r.ID}} }
func (roleConf) DeleteRoute(r models.Role) Route { return Route{Name: "delete", Params: fiber.Map{"id": r.ID}} }

func setup(t *testing.T) (*gorm.DB, *fiber.App, **AdminList[models.Role]) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Role{}))

	var last *AdminList[models.Role]

	app := fiber.New()
	app.Get("/roles", func(c *fiber.Ctx) error {
		last = New[models.Role](roleConf{db: db})
		return last.BindRequest(c)
	}).Name("list")
	app.Get("/roles/add", func(c *fiber.Ctx) error { return nil }).Name("add")
	app.Get("/roles/:id<int>/edit", func(c *fiber.Ctx) error { return nil }).Name("edit")
	app.Post("/roles/:id<int>/delete", func(c *fiber.Ctx) error { return nil }).Name("delete")

	return db, app, &last
}

func get(t *testing.T, app *fiber.App, target string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func names(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Cells[1])
	}

	return out
}

func TestBindRequest(t *testing.T) {
	db, app, last := setup(t)

	for _, r := range []models.Role{
		{Name: "ROLE_EDITOR", Description: "Writes articles"},
		{Name: "ROLE_ADMIN", Description: "Administration", IsSystem: true},
		{Name: "ROLE_VIEWER"},
		{Name: "ROLExVIEWER"},
	} {
		require.NoError(t, db.Create(&r).Error)
	}

	tests := []struct {
		name      string
		query     string
		wantNames []string
		wantPage  int
		wantPages int
		wantOrder string
		wantDir   string
	}{
		{
			name:      "defaults",
			wantNames: []string{"ROLE_ADMIN", "ROLE_EDITOR", "ROLE_VIEWER", "ROLExVIEWER"},
			wantPage: 1, wantPages: 1, wantOrder: "name", wantDir: "asc",
		},
		{
			name:      "search is case-insensitive and spans columns",
			query:     "?search=ARTICLES",
			wantNames: []string{"ROLE_EDITOR"},
			wantPage: 1, wantPages: 1, wantOrder: "name", wantDir: "asc",
		},
		{
			name:      "underscore is matched literally",
			query:     "?search=e_v",
			wantNames: []string{"ROLE_VIEWER"},
			wantPage: 1, wantPages: 1, wantOrder: "name", wantDir: "asc",
		},
		{
			name:      "sort desc",
			query:     "?orderBy=name&orderDirection=DESC",
			wantNames: []string{"ROLExVIEWER", "ROLE_VIEWER", "ROLE_EDITOR", "ROLE_ADMIN"},
			wantPage: 1, wantPages: 1, wantOrder: "name", wantDir: "desc",
		},
		{
			name:      "unsortable column falls back to default",
			query:     "?orderBy=description&orderDirection=sideways",
			wantNames: []string{"ROLE_ADMIN", "ROLE_EDITOR", "ROLE_VIEWER", "ROLExVIEWER"},
			wantPage: 1, wantPages: 1, wantOrder: "name", wantDir: "asc",
		},
		{
			name:      "paging",
			query:     "?pageSize=3&page=2",
			wantNames: []string{"ROLExVIEWER"},
			wantPage: 2, wantPages: 2, wantOrder: "name", wantDir: "asc",
		},
		{
			name:      "page beyond the end is clamped",
			query:     "?pageSize=3&page=99",
			wantNames: []string{"ROLExVIEWER"},
			wantPage: 2, wantPages: 2, wantOrder: "name", wantDir: "asc",
		},
		{
			name:      "invalid page",
			query:     "?page=-4",
			wantNames: []string{"ROLE_ADMIN", "ROLE_EDITOR", "ROLE_VIEWER", "ROLExVIEWER"},
			wantPage: 1, wantPages: 1, wantOrder: "name", wantDir: "asc",
		},
		{
			name:      "no match",
			query:     "?search=nothing",
			wantNames: []string{},
			wantPage: 1, wantPages: 1, wantOrder: "name", wantDir: "asc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			get(t, app, "/roles"+tt.query)

			l := *last
			require.NotNil(t, l)
			assert.Equal(t, tt.wantNames, names(l.Rows))
			assert.Equal(t, tt.wantPage, l.Page)
			assert.Equal(t, tt.wantPages, l.Pages)
			assert.Equal(t, tt.wantOrder, l.OrderBy)
			assert.Equal(t, tt.wantDir, l.OrderDirection)
		})
	}
}

func TestRowsAndURLs(t *testing.T) {
	db, app, last := setup(t)

	admin := models.Role{Name: "ROLE_ADMIN", IsSystem: true}
	require.NoError(t, db.Create(&admin).Error)

	get(t, app, "/roles?search=admin")

	l := *last
	assert.Equal(t, "Role", l.EntityName)
	assert.Equal(t, "/roles", l.IndexURL)
	assert.Equal(t, "/roles/add", l.AddURL)
	assert.Equal(t, int64(1), l.Total)
	require.Len(t, l.Rows, 1)

	row := l.Rows[0]
	assert.Equal(t, admin.ID, row.ID)
	assert.Equal(t, fmt.Sprintf("/roles/%d/edit", admin.ID), row.EditURL)
	assert.Equal(t, fmt.Sprintf("/roles/%d/delete", admin.ID), row.DeleteURL)
	assert.False(t, row.CanDelete)

	require.Len(t, l.Headers, 3)
	assert.True(t, l.Headers[1].Active)
	assert.False(t, l.Headers[2].Sortable)

	assert.Equal(t, "/roles?orderBy=name&orderDirection=desc&page=1&search=admin", l.SortURL("name"))
	assert.Equal(t, "/roles?orderBy=id&orderDirection=asc&page=1&search=admin", l.SortURL("id"))
	assert.Equal(t, "/roles?orderBy=name&orderDirection=asc&page=1&search=admin", l.PageURL(1))
	assert.False(t, l.HasPrevious())
	assert.False(t, l.HasNext())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "a!%b!_c!!", escapeLike("a%b_c!"))
}

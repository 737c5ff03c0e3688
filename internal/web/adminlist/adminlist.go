// Package adminlist renders searchable, sortable and paginated entity lists.
package adminlist

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Paging defaults.
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// Request parameters.
const (
	ParamSearch         = "search"
	ParamPage           = "page"
	ParamPageSize       = "pageSize"
	ParamOrderBy        = "orderBy"
	ParamOrderDirection = "orderDirection"
)

const (
	orderAsc  = "asc"
	orderDesc = "desc"

	likeEscape = "!"
)

// Header is a rendered column header.
type Header struct {
	Title    string
	Field    string
	Sortable bool
	Active   bool
}

// Row is a rendered list row.
type Row struct {
	ID        uint
	Cells     []string
	EditURL   string
	DeleteURL string
	CanDelete bool
}

// AdminList is the bound list of a request.
type AdminList[T any] struct {
	conf Configurator[T]

	EntityName     string
	Headers        []Header
	Items          []T
	Rows           []Row
	Total          int64
	Page           int
	Pages          int
	PageSize       int
	Search         string
	OrderBy        string
	OrderDirection string
	IndexURL       string
	AddURL         string
}

// New creates the list of configurator.
func New[T any](conf Configurator[T]) *AdminList[T] {
	return &AdminList[T]{conf: conf, EntityName: conf.EntityName()}
}

// BindRequest reads search, sorting and paging from the query string and loads the page.
func (l *AdminList[T]) BindRequest(c *fiber.Ctx) error {
	l.bindParams(c)

	var err error

	if l.IndexURL, err = URL(c, l.conf.IndexRoute()); err != nil {
		return errors.Wrap(err, "index url")
	}

	if l.AddURL, err = URL(c, l.conf.AddRoute()); err != nil {
		return errors.Wrap(err, "add url")
	}

	if err := l.filter(l.conf.Query()).Count(&l.Total).Error; err != nil {
		return errors.Wrap(err, "count items")
	}

	l.Pages = int(math.Ceil(float64(l.Total) / float64(l.PageSize)))
	if l.Pages < 1 {
		l.Pages = 1
	}

	if l.Page > l.Pages {
		l.Page = l.Pages
	}

	err = l.filter(l.conf.Query()).
		Order(clause.OrderByColumn{Column: clause.Column{Name: l.OrderBy}, Desc: l.OrderDirection == orderDesc}).
		Offset((l.Page - 1) * l.PageSize).
		Limit(l.PageSize).
		Find(&l.Items).Error
	if err != nil {
		return errors.Wrap(err, "load items")
	}

	return l.buildRows(c)
}

func (l *AdminList[T]) bindParams(c *fiber.Ctx) {
	l.Search = strings.TrimSpace(c.Query(ParamSearch))

	l.Page = max(c.QueryInt(ParamPage, 1), 1)
	l.PageSize = min(max(c.QueryInt(ParamPageSize, DefaultPageSize), 1), MaxPageSize)

	defaultField, defaultDirection := l.conf.DefaultOrder()
	l.OrderBy = defaultField
	l.OrderDirection = defaultDirection

	orderBy := c.Query(ParamOrderBy)
	for _, col := range l.conf.Columns() {
		if col.Sortable && col.Field != "" && col.Field == orderBy {
			l.OrderBy = orderBy
		}
	}

	switch dir := strings.ToLower(c.Query(ParamOrderDirection)); dir {
	case orderAsc, orderDesc:
		l.OrderDirection = dir
	}

	if l.OrderDirection != orderDesc {
		l.OrderDirection = orderAsc
	}
}

// filter applies the search term. LOWER on both sides keeps it case-insensitive on every engine.
func (l *AdminList[T]) filter(q *gorm.DB) *gorm.DB {
	cols := l.conf.SearchColumns()
	if l.Search == "" || len(cols) == 0 {
		return q
	}

	term := "%" + escapeLike(l.Search) + "%"
	conds := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))

	for _, col := range cols {
		conds = append(conds, "LOWER("+col+") LIKE LOWER(?) ESCAPE '"+likeEscape+"'")
		args = append(args, term)
	}

	return q.Where("("+strings.Join(conds, " OR ")+")", args...)
}

func escapeLike(s string) string {
	return strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	).Replace(s)
}

func (l *AdminList[T]) buildRows(c *fiber.Ctx) error {
	cols := l.conf.Columns()

	l.Headers = make([]Header, 0, len(cols))
	for _, col := range cols {
		l.Headers = append(l.Headers, Header{
			Title:    col.Header,
			Field:    col.Field,
			Sortable: col.Sortable,
			Active:   col.Sortable && col.Field == l.OrderBy,
		})
	}

	l.Rows = make([]Row, 0, len(l.Items))
	for _, item := range l.Items {
		row := Row{
			ID:        l.conf.ItemID(item),
			Cells:     make([]string, 0, len(cols)),
			CanDelete: l.conf.CanDelete(item),
		}

		for _, col := range cols {
			row.Cells = append(row.Cells, col.Value(item))
		}

		var err error
		if row.EditURL, err = URL(c, l.conf.EditRoute(item)); err != nil {
			return errors.Wrap(err, "edit url")
		}

		if row.DeleteURL, err = URL(c, l.conf.DeleteRoute(item)); err != nil {
			return errors.Wrap(err, "delete url")
		}

		l.Rows = append(l.Rows, row)
	}

	return nil
}

// PageURL links page keeping search and sorting.
func (l *AdminList[T]) PageURL(page int) string {
	return l.link(page, l.OrderBy, l.OrderDirection)
}

// SortURL links the list sorted by field, toggling the direction of the active column.
func (l *AdminList[T]) SortURL(field string) string {
	dir := orderAsc
	if field == l.OrderBy && l.OrderDirection == orderAsc {
		dir = orderDesc
	}

	return l.link(1, field, dir)
}

// HasPrevious reports whether a previous page exists.
func (l *AdminList[T]) HasPrevious() bool {
	return l.Page > 1
}

// HasNext reports whether a next page exists.
func (l *AdminList[T]) HasNext() bool {
	return l.Page < l.Pages
}

func (l *AdminList[T]) link(page int, orderBy, direction string) string {
	q := url.Values{}
	if l.Search != "" {
		q.Set(ParamSearch, l.Search)
	}

	q.Set(ParamPage, strconv.Itoa(page))

	if l.PageSize != DefaultPageSize {
		q.Set(ParamPageSize, strconv.Itoa(l.PageSize))
	}

	q.Set(ParamOrderBy, orderBy)
	q.Set(ParamOrderDirection, direction)

	return l.IndexURL + "?" + q.Encode()
}

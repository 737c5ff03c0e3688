// Package role provides the settings panel managing roles: list, add, edit and delete.
package role

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/roleadmin/roleadmin/internal/auth"
	roleCtl "github.com/roleadmin/roleadmin/internal/db/controller/role"
	"github.com/roleadmin/roleadmin/internal/db/models"
	"github.com/roleadmin/roleadmin/internal/web/adminlist"
	"github.com/roleadmin/roleadmin/internal/web/csrf"
	"github.com/roleadmin/roleadmin/internal/web/flash"
	"github.com/roleadmin/roleadmin/internal/web/form"
	"github.com/roleadmin/roleadmin/internal/web/handler"
	"github.com/roleadmin/roleadmin/internal/web/navigation"
)

const (
	// Path is the base path of the role settings.
	Path = handler.RootPath + "admin/settings/roles"

	// Route names.
	RouteList   = "settings_roles"
	RouteAdd    = "settings_roles_add"
	RouteEdit   = "settings_roles_edit"
	RouteDelete = "settings_roles_delete"

	// TemplateList is the generic admin list.
	TemplateList = "adminlist/list"
	// TemplateAdd is the creation form.
	TemplateAdd = "admin/role/add"
	// TemplateEdit is the edit form.
	TemplateEdit = "admin/role/edit"

	// Message keys, all take the role name as ParamRole.
	FlashAdded        = "usermanagement.roles.add.flash.success.%role%"
	FlashEdited       = "usermanagement.roles.edit.flash.success.%role%"
	FlashDeleted      = "usermanagement.roles.delete.flash.success.%role%"
	FlashSystemRole   = "usermanagement.roles.delete.flash.error.system.%role%"
	FlashRoleInUse    = "usermanagement.roles.delete.flash.error.inuse.%role%"
	ParamRole         = "%role%"
	deleteAction      = "delete"
	uniqueNameMessage = "form.error.unique"
)

// ErrNilDeps is returned when Init misses a collaborator.
var ErrNilDeps = errors.New("app or deps is nil")

// Service is the role settings handler.
type Service struct {
	deps *handler.Deps
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return ErrNilDeps
	}

	s.deps = deps

	superAdmin := auth.RequirePermission(deps.Auth, auth.PermSuperAdmin)

	app.Get(Path, superAdmin, s.List).Name(RouteList)
	app.Get(Path+"/add", superAdmin, s.Add).Name(RouteAdd)
	app.Post(Path+"/add", superAdmin, s.Add)
	app.Get(Path+"/:id<int>/edit", superAdmin, s.Edit).Name(RouteEdit)
	app.Post(Path+"/:id<int>/edit", superAdmin, s.Edit)
	// delete checks the CSRF token before the permission
	app.Post(Path+"/:id<int>/delete", s.Delete).Name(RouteDelete)

	return nil
}

func (s *Service) deleteIntention(conf *Configurator) string {
	return csrf.ID(deleteAction, conf.EntityName())
}

func (s *Service) nav(titleKey string, params map[string]string) *navigation.Context {
	return navigation.New(s.deps.Catalog, navigation.SectionSettings, navigation.PageRoles).
		Title(titleKey, params).
		Crumb("settings.title", "", nil)
}

func (s *Service) addFlash(c *fiber.Ctx, typ, key, role string) {
	msg := s.deps.Catalog.Trans(key, map[string]string{ParamRole: role})
	if err := flash.Add(c, typ, msg); err != nil {
		log.Error().Err(err).Str("flash", key).Msg("failed to store flash message")
	}
}

// List renders all roles.
func (s *Service) List(c *fiber.Ctx) error {
	conf := NewConfigurator(s.deps.DB)

	list := adminlist.New[models.Role](conf)
	if err := list.BindRequest(c); err != nil {
		return pkgerrors.Wrap(err, "bind role list")
	}

	token, err := s.deps.CSRF.Token(c, s.deleteIntention(conf))
	if err != nil {
		return pkgerrors.Wrap(err, "csrf token")
	}

	return handler.Render(c, TemplateList, fiber.Map{
		"Navigation": s.nav("usermanagement.roles.title", nil).Crumb("usermanagement.roles.title", list.IndexURL, nil),
		"List":       list,
		"CSRFField":  s.deps.CSRF.FieldName(),
		"CSRFToken":  token,
	})
}

// Add shows and handles the creation form.
func (s *Service) Add(c *fiber.Ctx) error {
	r := models.NewRole()

	action, err := c.GetRouteURL(RouteAdd, fiber.Map{})
	if err != nil {
		return err
	}

	f := form.New(action, inputFrom(r))
	if err := s.handleForm(c, f, r); err != nil {
		return err
	}

	if f.IsValid() {
		f.Data.apply(r)

		if err := roleCtl.Create(s.deps.DB, r); err != nil {
			return pkgerrors.Wrap(err, "create role")
		}

		log.Info().Uint("role_id", r.ID).Str("role", r.Name).Msg("role created")
		s.addFlash(c, flash.Success, FlashAdded, r.Name)

		return c.RedirectToRoute(RouteList, fiber.Map{})
	}

	listURL, err := c.GetRouteURL(RouteList, fiber.Map{})
	if err != nil {
		return err
	}

	return handler.Render(c, TemplateAdd, fiber.Map{
		"Navigation": s.nav("usermanagement.roles.add.title", nil).
			Crumb("usermanagement.roles.title", listURL, nil).
			Crumb("usermanagement.roles.add.title", action, nil),
		"Form":    f,
		"Role":    r,
		"ListURL": listURL,
	})
}

// Edit shows and handles the edit form of an existing role.
func (s *Service) Edit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusNotFound, roleCtl.ErrRoleNotFound.Error())
	}

	r, err := roleCtl.Find(s.deps.DB, uint(id))
	if err != nil {
		if errors.Is(err, roleCtl.ErrRoleNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		return pkgerrors.Wrap(err, "load role")
	}

	// the title keeps the stored name while the form may carry a changed one
	stored := r.Name

	action, err := c.GetRouteURL(RouteEdit, fiber.Map{"id": r.ID})
	if err != nil {
		return err
	}

	f := form.New(action, inputFrom(r))
	if err := s.handleForm(c, f, r); err != nil {
		return err
	}

	if f.IsValid() {
		f.Data.apply(r)

		if err := roleCtl.Save(s.deps.DB, r); err != nil {
			return pkgerrors.Wrap(err, "save role")
		}

		log.Info().Uint("role_id", r.ID).Str("role", r.Name).Msg("role updated")
		s.addFlash(c, flash.Success, FlashEdited, r.Name)

		return c.RedirectToRoute(RouteList, fiber.Map{})
	}

	listURL, err := c.GetRouteURL(RouteList, fiber.Map{})
	if err != nil {
		return err
	}

	params := map[string]string{ParamRole: stored}

	return handler.Render(c, TemplateEdit, fiber.Map{
		"Navigation": s.nav("usermanagement.roles.edit.title", params).
			Crumb("usermanagement.roles.title", listURL, nil).
			Crumb("usermanagement.roles.edit.title", action, params),
		"Form":    f,
		"Role":    r,
		"ListURL": listURL,
	})
}

// handleForm binds and validates POST requests. The name must not be used by another role.
func (s *Service) handleForm(c *fiber.Ctx, f *form.Form[Input], r *models.Role) error {
	if err := f.HandleRequest(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if !f.Submitted {
		return nil
	}

	f.Data.trim()
	f.Validate(s.deps.Catalog)

	if f.HasError("name") {
		return nil
	}

	taken, err := roleCtl.NameTaken(s.deps.DB, f.Data.Name, r.ID)
	if err != nil {
		return pkgerrors.Wrap(err, "check role name")
	}

	if taken {
		f.AddError("name", s.deps.Catalog.Trans(uniqueNameMessage, nil))
	}

	return nil
}

// Delete removes a role. The CSRF token is checked before the permission, a
// mismatch redirects to the list without further effect. Unknown ids are ignored.
func (s *Service) Delete(c *fiber.Ctx) error {
	conf := NewConfigurator(s.deps.DB)

	if !s.deps.CSRF.IsValid(c, s.deleteIntention(conf)) {
		log.Warn().Str("path", c.Path()).Msg("invalid CSRF token on role delete")

		index, err := adminlist.URL(c, conf.IndexRoute())
		if err != nil {
			return err
		}

		return c.Redirect(index)
	}

	if err := s.deps.Auth.DenyAccessUnlessGranted(c, auth.PermSuperAdmin); err != nil {
		return err
	}

	if id, err := c.ParamsInt("id"); err == nil && id > 0 {
		r, err := roleCtl.Delete(s.deps.DB, uint(id))

		switch {
		case err == nil:
			log.Info().Uint("role_id", r.ID).Str("role", r.Name).Msg("role deleted")
			s.addFlash(c, flash.Success, FlashDeleted, r.Name)
		case errors.Is(err, roleCtl.ErrRoleNotFound):
			// nothing to delete
		case errors.Is(err, roleCtl.ErrSystemRole):
			s.addFlash(c, flash.Error, FlashSystemRole, r.Name)
		case errors.Is(err, roleCtl.ErrRoleInUse):
			s.addFlash(c, flash.Error, FlashRoleInUse, r.Name)
		default:
			return pkgerrors.Wrap(err, "delete role")
		}
	}

	return c.RedirectToRoute(RouteList, fiber.Map{})
}

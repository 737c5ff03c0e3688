package daemon

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/roleadmin/roleadmin/internal/auth"
	"github.com/roleadmin/roleadmin/internal/db/models"
)

const (
	defaultAdminUser     = "admin"
	defaultAdminPassword = "changeme"
)

// seed creates the permissions, the super admin system role and, on an empty user table, the admin account.
// Running it again changes nothing.
func seed(db *gorm.DB) error {
	for _, d := range auth.Definitions() {
		p := models.NewPermission(d.Name, d.Description)
		if err := db.Where(models.Permission{Name: p.Name}).Attrs(p).FirstOrCreate(&p).Error; err != nil {
			return errors.Wrapf(err, "permission %s", d.Name)
		}
	}

	superAdmin := models.Role{Name: models.SuperAdminRole}
	if err := db.Where(models.Role{Name: models.SuperAdminRole}).
		Attrs(models.Role{Description: "Full access", IsSystem: true}).
		FirstOrCreate(&superAdmin).Error; err != nil {
		return errors.Wrap(err, "super admin role")
	}

	if err := auth.NewService(db).GrantAll(superAdmin.ID); err != nil {
		return errors.Wrap(err, "grant super admin")
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count users")
	}

	if count > 0 {
		return nil
	}

	if _, err := auth.NewLocalProvider(db).CreateUser(defaultAdminUser, "", defaultAdminPassword, superAdmin.ID); err != nil {
		return errors.Wrap(err, "admin user")
	}

	log.Warn().Str("username", defaultAdminUser).Msg("created default admin account, change its password")

	return nil
}

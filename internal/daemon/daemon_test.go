package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roleadmin/roleadmin/internal/auth"
	"github.com/roleadmin/roleadmin/internal/config"
	"github.com/roleadmin/roleadmin/internal/db/models"
)

func sqliteConfig() *config.Config {
	return &config.Config{
		DB: config.DB{GormEngine: config.EngineSQLite, Name: ":memory:"},
		Webserver: config.Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
		Translation: config.Translation{Locale: "en"},
	}
}

func TestNew_NilConfig(t *testing.T) {
	d, err := New(nil)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrNilConfig)

	db, err := Migrate(nil)
	assert.Nil(t, db)
	assert.ErrorIs(t, err, ErrNilConfig)
}

func TestMigrate_Seed(t *testing.T) {
	db, err := Migrate(sqliteConfig())
	require.NoError(t, err)

	var role models.Role
	require.NoError(t, db.Where("name = ?", models.SuperAdminRole).First(&role).Error)
	assert.True(t, role.IsSystem)

	var admin models.User
	require.NoError(t, db.Where("username = ?", defaultAdminUser).First(&admin).Error)
	assert.Equal(t, role.ID, admin.RoleID)

	ok, err := auth.NewService(db).HasPermission(admin.ID, auth.PermSuperAdmin)
	require.NoError(t, err)
	assert.True(t, ok)

	user, err := auth.NewLocalProvider(db).Authenticate(defaultAdminUser, defaultAdminPassword)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, user.ID)

	// seeding twice keeps one of everything
	require.NoError(t, seed(db))

	var roles, users, perms, grants int64
	require.NoError(t, db.Model(&models.Role{}).Count(&roles).Error)
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Permission{}).Count(&perms).Error)
	require.NoError(t, db.Model(&models.RolePermission{}).Count(&grants).Error)

	assert.Equal(t, int64(1), roles)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(len(auth.Definitions())), perms)
	assert.Equal(t, perms, grants)
}

func TestNew_SQLite(t *testing.T) {
	d, err := New(sqliteConfig())
	require.NoError(t, err)
	require.NotNil(t, d.webService)
	assert.True(t, d.webService.Alive())
}

func TestNew_UnknownLocale(t *testing.T) {
	cfg := sqliteConfig()
	cfg.Translation.Locale = "xx"

	d, err := New(cfg)
	assert.Nil(t, d)
	assert.Error(t, err)
}

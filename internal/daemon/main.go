// Package daemon opens the database, prepares sessions and runs the web service.
package daemon

import (
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/roleadmin/roleadmin/internal/auth"
	"github.com/roleadmin/roleadmin/internal/config"
	"github.com/roleadmin/roleadmin/internal/db/dsn"
	"github.com/roleadmin/roleadmin/internal/db/models"
	"github.com/roleadmin/roleadmin/internal/i18n"
	"github.com/roleadmin/roleadmin/internal/logger/adapter/stdlogger"
	"github.com/roleadmin/roleadmin/internal/web"
	"github.com/roleadmin/roleadmin/internal/web/csrf"
	"github.com/roleadmin/roleadmin/internal/web/handler"
	"github.com/roleadmin/roleadmin/internal/web/session"
)

const sessionTable = "sessions"

// ErrNilConfig is returned when no config was given.
var ErrNilConfig = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the web service and blocks until it was shut down by a signal.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port))
}

// New creates a new Daemon: it opens and migrates the database, seeds it and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	db, err := Migrate(cfg)
	if err != nil {
		return nil, err
	}

	session.Init(newSessionStorage(cfg), cfg.Webserver.Session.ExpiryTime, !cfg.DevMode)

	catalog, err := i18n.New(cfg.Translation.Locale)
	if err != nil {
		return nil, errors.Wrap(err, "translation")
	}

	webService, err := web.New(&handler.Deps{
		Cfg:     cfg,
		DB:      db,
		Auth:    auth.NewService(db),
		Catalog: catalog,
		CSRF:    csrf.NewManager(cfg.Security.CSRF),
	})
	if err != nil {
		return nil, errors.Wrap(err, "web service")
	}

	return &Daemon{cfg: cfg, webService: webService}, nil
}

// Migrate opens the database, migrates the schema and seeds the default data.
func Migrate(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.User{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	if err = seed(db); err != nil {
		return nil, errors.Wrap(err, "failed to seed database")
	}

	return db, nil
}

// OpenDB opens the configured database with gorm.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		dialector = postgres.Open(dsn.Create(cfg))
	case config.EngineSQLite:
		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		dialector = gormmysql.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: stdlogger.Gorm(cfg.DB.LogQueries)})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	if cfg.DB.GormEngine == config.EngineSQLite {
		// every connection of ":memory:" would be its own database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "sqlite pool")
		}

		sqlDB.SetMaxOpenConns(1)
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Msg("database connected")

	return db, nil
}

// newSessionStorage stores sessions next to the data. sqlite keeps them in memory.
func newSessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	case config.EngineSQLite:
		log.Warn().Msg("sqlite engine: sessions are kept in memory and lost on restart")

		return nil
	default:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	}
}

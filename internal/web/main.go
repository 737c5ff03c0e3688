// Package web wires the fiber app: templates, static files, middleware chain and handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/roleadmin/roleadmin/internal/auth"
	fiberlogger "github.com/roleadmin/roleadmin/internal/logger/adapter/fiber"
	"github.com/roleadmin/roleadmin/internal/web/handler"
	"github.com/roleadmin/roleadmin/internal/web/handler/admin/role"
	"github.com/roleadmin/roleadmin/internal/web/handler/login"
	"github.com/roleadmin/roleadmin/internal/web/handler/logout"
	authmiddleware "github.com/roleadmin/roleadmin/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the prometheus registry.
	MetricsPath = "/metrics"
	// StaticPath serves the embedded assets.
	StaticPath = "/static"

	templateError = "error"
)

// ErrNilDeps is returned when New misses a collaborator.
var ErrNilDeps = errors.New("web: config, db, auth, catalog and csrf are required")

// Service represents the web service.
type Service struct {
	App          *fiber.App
	deps         *handler.Deps
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error, 1)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			doneFiber <- err

			return
		}

		doneFiber <- nil
	}()

	// wait for fiber to stop
	return <-doneFiber
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown fails the liveness check for the configured drain time, then stops the server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.deps.Cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.deps.Cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service with the given collaborators.
func New(deps *handler.Deps) (*Service, error) {
	if !deps.Valid() {
		return nil, ErrNilDeps
	}

	cfg := deps.Cfg

	service := &Service{
		deps:         deps,
		fastShutDown: cfg.DevMode,
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize:    8192,
			AppName:           cfg.Title,
			CaseSensitive:     true,
			Prefork:           false,
			Immutable:         true,
			Views:             newTemplateEngine(deps),
			PassLocalsToViews: true,
			ReadTimeout:       cfg.Webserver.ReadTimeout,
			WriteTimeout:      cfg.Webserver.WriteTimeout,
			ErrorHandler:      service.errorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// serve embedded static files
	app.Use(StaticPath,
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	app.Use(authmiddleware.New(StaticPath, logout.Path, CheckAlivePath, MetricsPath))
	app.Use(auth.AddPermissionsToLocals(deps.Auth))

	// handlers register their own routes with permission checks
	services := []handler.Service{&login.Handler, &logout.Handler, &role.Handler}
	for _, h := range services {
		if err := h.Init(app, deps); err != nil {
			return nil, err
		}
	}

	app.Get(handler.HomePath, func(c *fiber.Ctx) error {
		return c.RedirectToRoute(role.RouteList, fiber.Map{})
	})

	service.App = app
	service.alive.Store(true)

	return service, nil
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// errorHandler maps authorization errors and fiber errors to their status and renders the error page.
func (s *Service) errorHandler(c *fiber.Ctx, err error) error {
	var (
		code    = fiber.StatusInternalServerError
		message string
		fe      *fiber.Error
	)

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		code = fiber.StatusUnauthorized
	case errors.Is(err, auth.ErrAccessDenied):
		code = fiber.StatusForbidden
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")

		message = ""
	}

	if message == "" {
		message = utils.StatusMessage(code)
	}

	c.Status(code)

	renderErr := c.Render(templateError, fiber.Map{
		"Code":    code,
		"Message": message,
	}, handler.BaseLayout)
	if renderErr != nil {
		log.Error().Err(renderErr).Msg("failed to render error page")

		return c.SendString(message)
	}

	return nil
}

package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"

	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"

	"github.com/roleadmin/roleadmin/internal/web/handler"
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS

	//go:embed templates/*
	embeddedTemplates embed.FS
)

const templateExtension = ".gohtml"

// templateEmbedFS is a wrapper around embed.FS to implement fs.FS interface
// for the 'templates' directory.
type templateEmbedFS struct {
	content embed.FS
}

// Open opens the named file from the 'templates' directory.
func (e templateEmbedFS) Open(name string) (fs.File, error) {
	return e.content.Open(path.Join("templates", name))
}

func newTemplateEngine(deps *handler.Deps) *html.Engine {
	engine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), templateExtension)

	// in dev mode, use local filesystem for templates
	if deps.Cfg.DevMode {
		engine = html.New("./internal/web/templates", templateExtension)
		engine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	catalog := deps.Catalog

	engine.AddFunc("t", catalog.T)
	// tp translates with params given as name, value pairs
	engine.AddFunc("tp", func(key string, pairs ...string) string {
		params := make(map[string]string, len(pairs)/2) //nolint:mnd
		for i := 0; i+1 < len(pairs); i += 2 {
			params[pairs[i]] = pairs[i+1]
		}

		return catalog.Trans(key, params)
	})
	engine.AddFunc("locale", catalog.Locale)
	engine.AddFunc("title", func() string {
		if deps.Cfg.Title != "" {
			return deps.Cfg.Title
		}

		return catalog.T("app.title")
	})
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("sub", func(a, b int) int {
		return a - b
	})

	return engine
}

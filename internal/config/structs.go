package config

import (
	"time"

	"github.com/roleadmin/roleadmin/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode     bool // enable dev mode for development
	DB          DB
	Log         logger.Log
	Title       string
	Webserver   Webserver
	Security    Security
	Translation Translation
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool          // enable static file browsing (for development purposes only)
	DisableRecover bool          // disable recover middleware
	Domain         string        // domain name for the webserver
	Port           int           // listening port for the webserver
	ShutDownTime   int           // wait time for shutdown
	URL            string        // base url for the webserver
	ReadTimeout    time.Duration // zero means no timeout
	WriteTimeout   time.Duration // zero means no timeout
	Session        Session       // session settings
}

// Security groups request forgery settings.
type Security struct {
	CSRF CSRF
}

// CSRF configures token checks on destructive form posts.
type CSRF struct {
	// AllowMissingToken keeps accepting delete posts that carry no token field at all.
	// Unset means true. Every accepted request is logged as deprecated.
	AllowMissingToken *bool `json:",omitempty" toml:",omitempty"`
	// FieldName is the form field carrying the token.
	FieldName string
}

// AllowsMissingToken reports whether the legacy missing-token mode is active.
func (c CSRF) AllowsMissingToken() bool {
	if c.AllowMissingToken == nil {
		return true
	}

	return *c.AllowMissingToken
}

// Translation selects the message catalog.
type Translation struct {
	Locale string // en, de
}

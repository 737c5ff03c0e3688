// Package dsn builds the gorm data source name for the configured engine.
package dsn

import (
	"fmt"
	"strings"

	"github.com/roleadmin/roleadmin/internal/config"
)

// Create builds the Data Source Name from the configuration.
func Create(cfg *config.Config) string {
	db := cfg.DB

	switch db.GormEngine {
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			db.Host,
			db.Port,
			db.User,
			db.Password,
			db.Name,
		)
		if db.Extras != "" {
			out += " " + db.Extras
		}

		return out
	case config.EngineSQLite:
		// Name is the file path, ":memory:" works as well.
		if db.Extras == "" {
			return db.Name
		}

		sep := "?"
		if strings.Contains(db.Name, "?") {
			sep = "&"
		}

		return db.Name + sep + db.Extras
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		)
	}
}

package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/roleadmin/roleadmin/internal/daemon"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the database schema and seed permissions, the super admin role and the admin account",
	RunE: func(_ *cobra.Command, _ []string) error {
		c, err := loadConfigWithLogger()
		if err != nil {
			return err
		}

		if _, err = daemon.Migrate(&c); err != nil {
			return err
		}

		log.Info().Msg("database migrated")

		return nil
	},
}

// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roleadmin/roleadmin/internal/config"
	"github.com/roleadmin/roleadmin/internal/logger"
)

const (
	envPrefix = "ROLEADMIN"
	keyConfig = "config"
)

var rootCmd = &cobra.Command{
	Use:   "roleadmin",
	Short: "roleadmin manages the roles of an application",
	Long: `roleadmin is a web based settings panel that lists, creates,
edits and deletes the roles users are assigned to.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String(keyConfig, config.DefaultPath,
		"Directory holding main.toml (env "+envPrefix+"_CONFIG)")

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if err := viper.BindPFlag(keyConfig, rootCmd.PersistentFlags().Lookup(keyConfig)); err != nil {
		panic(err)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config from the flag or env path.
func loadConfig() (config.Config, error) {
	return config.ReadConfig(viper.GetString(keyConfig))
}

// loadConfigWithLogger reads the config and initializes the global logger from it.
func loadConfigWithLogger() (config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, err
	}

	return cfg, logger.Init(cfg.Log)
}

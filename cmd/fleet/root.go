// Root command for the fleet CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/JLJones1696/Vehicle-Manager/internal/logger"
	"github.com/JLJones1696/Vehicle-Manager/internal/paths"
)

// Exit codes: success, user error (bad input, missing record), system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagDebug     bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

var rootCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet is a local-first vehicle checkout and maintenance tracker",
	Long: `Fleet tracks vehicle checkouts, check-ins, and maintenance service
schedules for a small fleet. State lives in three CSV files in the data
directory; every command reads and rewrites them in place.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The version command must not touch the filesystem.
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configDataDir = cfg.GetString(cfgKeyDataDir)

		return logger.Init(logger.Config{Debug: flagDebug, ConfigDir: configDir})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.fleet-data)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "verbose logging to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(vehiclesCmd)
	rootCmd.AddCommand(mileageCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serviceCmd)
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > FLEET_DATA_DIR env > $(CWD)/.fleet-data.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the precedence:
// --config-dir flag > FLEET_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// Package main provides the pmo command: the PMO Network API server and its admin tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pmonetwork/pmo-network/internal/config"
	"github.com/pmonetwork/pmo-network/internal/observability"
)

var (
	configPath  string
	databaseURL string
	logLevel    string
	logFormat   string

	// cfg is resolved before any subcommand runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:           "pmo",
	Short:         "PMO Network job board API",
	Long:          "PMO Network connects project management professionals with employers: candidate search, bookmarks, jobs and applications over a REST API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		resolved, err := resolveConfig(configPath, flagOverrides(cmd))
		if err != nil {
			return err
		}
		cfg = resolved
		return observability.SetupLogging(cfg.LogLevel, cfg.LogFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: json or console")
}

// resolveConfig layers the config file, environment and flags, then applies defaults.
// It does not validate: commands that need a database call Validate themselves.
func resolveConfig(path string, flags config.Config) (config.Config, error) {
	var base config.Config
	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		base = *fileCfg
	}
	return base.Overlay(config.FromEnv()).Overlay(flags).MergeWithDefaults(), nil
}

// flagOverrides collects the config values given on the command line.
func flagOverrides(cmd *cobra.Command) config.Config {
	o := config.Config{
		DatabaseURL: databaseURL,
		LogLevel:    logLevel,
		LogFormat:   logFormat,
	}
	if f := cmd.Flags().Lookup("port"); f != nil && f.Changed {
		o.Port = servePort
	}
	if f := cmd.Flags().Lookup("redis-url"); f != nil && f.Changed {
		o.RedisURL = redisURL
	}
	return o
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

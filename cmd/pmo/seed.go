package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pmonetwork/pmo-network/internal/config"
	"github.com/pmonetwork/pmo-network/internal/db"
	"github.com/pmonetwork/pmo-network/internal/observability"
	"github.com/pmonetwork/pmo-network/internal/schemas"
)

var seedDryRun bool

var seedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Load users, candidate profiles and jobs from a JSON file",
	Long: `Validate a seed document against the seed schema and import it in one transaction.
Accounts are matched by email, so re-running the same file updates instead of duplicating.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Validate the file without touching the database")
	rootCmd.AddCommand(seedCmd)
}

// loadSeedFile reads and schema-validates a seed document.
func loadSeedFile(path string) (*db.SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	if err := schemas.ValidateSeed(data); err != nil {
		return nil, fmt.Errorf("seed file %s is invalid: %w", path, err)
	}

	var seed db.SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return &seed, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	seed, err := loadSeedFile(args[0])
	if err != nil {
		return err
	}
	printer := observability.NewPrinter(cmd.OutOrStdout())
	if seedDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Seed file is valid: %d users, %d jobs\n", len(seed.Users), len(seed.Jobs))
		printer.PrintSeedSummary(seed)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	result, err := database.ImportSeed(cmd.Context(), seed, passwordConfig.HashPassword)
	if err != nil {
		return err
	}

	log.Info().
		Int("users", result.Users).
		Int("profiles", result.Profiles).
		Int("jobs", result.Jobs).
		Str("file", args[0]).
		Msg("seed imported")
	printer.PrintSeedResult(result)
	return nil
}

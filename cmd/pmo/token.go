package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pmonetwork/pmo-network/internal/config"
	"github.com/pmonetwork/pmo-network/internal/db"
	"github.com/pmonetwork/pmo-network/internal/server"
)

var (
	tokenUserID string
	tokenRole   string
	tokenEmail  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for development",
	Long: `Sign a bearer token with JWT_SECRET. Either pass --user-id and --role,
or --email to look the account up in the database and use its stored role.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "User ID (UUID) to put in the token")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "", "Role to put in the token: candidate or employer")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Look up user ID and role by account email")
	rootCmd.AddCommand(tokenCmd)
}

// mintToken signs a token for userID with role.
func mintToken(jwtConfig *config.JWTConfig, userID, role string) (string, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return "", fmt.Errorf("invalid --user-id %q: %w", userID, err)
	}
	if !db.ValidRole(role) {
		return "", fmt.Errorf("invalid --role %q: must be %s or %s", role, db.RoleCandidate, db.RoleEmployer)
	}
	return server.NewJWTService(jwtConfig).GenerateToken(id, role)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	userID, role := tokenUserID, tokenRole
	if tokenEmail != "" {
		if err := cfg.Validate(); err != nil {
			return err
		}
		database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		user, err := database.GetUserByEmail(cmd.Context(), tokenEmail)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("no account with email %s", tokenEmail)
		}
		userID, role = user.ID.String(), user.Role
	}

	token, err := mintToken(jwtConfig, userID, role)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

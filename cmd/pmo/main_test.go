package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmonetwork/pmo-network/internal/config"
	"github.com/pmonetwork/pmo-network/internal/db"
	"github.com/pmonetwork/pmo-network/internal/server"
)

const validSeedPath = "../../internal/schemas/testdata/seed_valid.json"

func clearConfigEnv(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "REDIS_URL", "PORT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestResolveConfig_Layering(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "pmo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\ndatabase_url: postgres://file/db\nlog_level: debug\n"), 0o600))

	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("LOG_FORMAT", "CONSOLE")

	got, err := resolveConfig(path, config.Config{LogLevel: "warn"})
	require.NoError(t, err)

	assert.Equal(t, 9000, got.Port)
	assert.Equal(t, "postgres://env/db", got.DatabaseURL)
	assert.Equal(t, "warn", got.LogLevel)
	assert.Equal(t, "console", got.LogFormat)
	assert.NoError(t, got.Validate())
}

func TestResolveConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	got, err := resolveConfig("", config.Config{})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPort, got.Port)
	assert.Equal(t, config.DefaultLogLevel, got.LogLevel)
	assert.Error(t, got.Validate(), "database URL is required")

	_, err = resolveConfig(filepath.Join(t.TempDir(), "missing.yaml"), config.Config{})
	assert.Error(t, err)
}

func TestLoadSeedFile(t *testing.T) {
	seed, err := loadSeedFile(validSeedPath)
	require.NoError(t, err)
	require.NotEmpty(t, seed.Users)
	assert.Equal(t, db.RoleEmployer, seed.Users[0].Role)
	assert.NotEmpty(t, seed.Jobs)

	invalid := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"users":[{"email":"x@example.test","role":"admin"}]}`), 0o600))
	_, err = loadSeedFile(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is invalid")

	_, err = loadSeedFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSeedCommand_DryRun(t *testing.T) {
	clearConfigEnv(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"seed", "--dry-run", validSeedPath})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		seedDryRun = false
	})

	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "Seed file is valid:"), out.String())
	assert.Contains(t, out.String(), "SEED FILE")
	assert.Contains(t, out.String(), "Northwind Talent")
}

func TestMintToken(t *testing.T) {
	jwtConfig := &config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		Issuer:          config.DefaultJWTIssuer,
		ExpirationHours: 24,
	}
	userID := "7f1c2f8e-7a55-4d0b-9d55-3f6c4a8b2e10"

	token, err := mintToken(jwtConfig, userID, db.RoleEmployer)
	require.NoError(t, err)

	claims, err := server.NewJWTService(jwtConfig).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID.String())
	assert.Equal(t, db.RoleEmployer, claims.Role)

	_, err = mintToken(jwtConfig, "nope", db.RoleEmployer)
	assert.ErrorContains(t, err, "invalid --user-id")

	_, err = mintToken(jwtConfig, userID, "admin")
	assert.ErrorContains(t, err, "invalid --role")
}

package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewPasswordConfig_InvalidCost(t *testing.T) {
	for _, cost := range []string{"abc", "4", "15"} {
		t.Run(cost, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", cost)
			_, err := NewPasswordConfig()
			assert.Error(t, err)
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10, Pepper: "pepper"}

	hash, err := cfg.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
	assert.False(t, cfg.VerifyPassword("correct horse battery", ""))

	unpeppered := &PasswordConfig{BcryptCost: 10}
	assert.False(t, unpeppered.VerifyPassword("correct horse battery", hash), "pepper must be part of the hash input")
}

func TestHashPassword_TooLong(t *testing.T) {
	tests := []struct {
		name    string
		pepper  string
		pw      string
		wantErr bool
	}{
		{name: "ascii at limit", pw: strings.Repeat("a", MaxPasswordBytes)},
		{name: "ascii over limit", pw: strings.Repeat("a", MaxPasswordBytes+1), wantErr: true},
		{name: "multibyte runes counted as bytes", pw: strings.Repeat("é", 40), wantErr: true},
		{name: "pepper pushes over limit", pepper: strings.Repeat("p", 32), pw: strings.Repeat("a", 60), wantErr: true},
		{name: "pepper within limit", pepper: strings.Repeat("p", 32), pw: strings.Repeat("a", 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &PasswordConfig{BcryptCost: 10, Pepper: tt.pepper}
			_, err := cfg.HashPassword(tt.pw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPasswordTooLong)
				assert.ErrorIs(t, cfg.CheckLength(tt.pw), ErrPasswordTooLong)
				return
			}
			assert.NoError(t, err)
			assert.NoError(t, cfg.CheckLength(tt.pw))
		})
	}
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := Load()
	require.NotNil(t, c)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 15*time.Minute, c.AccessTokenExpiry)
	assert.Equal(t, 240*time.Hour, c.RefreshTokenExpiry)
	assert.Equal(t, 10, c.BcryptCost)
	assert.True(t, c.SecureCookies)
	assert.Equal(t, "local", c.StorageDriver)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "30m")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "72h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("SECURE_COOKIES", "false")
	t.Setenv("STORAGE_DRIVER", "s3")

	c := Load()
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, 30*time.Minute, c.AccessTokenExpiry)
	assert.Equal(t, 72*time.Hour, c.RefreshTokenExpiry)
	assert.Equal(t, 12, c.BcryptCost)
	assert.False(t, c.SecureCookies)
	assert.Equal(t, "s3", c.StorageDriver)
}

func TestLoadIgnoresBadDurations(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRY", "soon")
	t.Setenv("BCRYPT_COST", "lots")

	c := Load()
	assert.Equal(t, 15*time.Minute, c.AccessTokenExpiry)
	assert.Equal(t, 10, c.BcryptCost)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	require.NoError(t, Load())

	assert.Equal(t, "5000", AppEnv.Port)
	assert.Equal(t, "mongo", AppEnv.StoreDriver)
	assert.Equal(t, "filter", AppEnv.DBName)
	assert.Equal(t, 20*time.Minute, AppEnv.AccessTokenTTL)
	assert.Equal(t, 10, AppEnv.BcryptCost)
	assert.Equal(t, "disk", AppEnv.Upload.Driver)
	assert.Equal(t, "1234", AppEnv.OTPStaticCode)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ACCESS_TOKEN_TTL", "1h")
	t.Setenv("BCRYPT_COST", "4")

	require.NoError(t, Load())

	assert.Equal(t, "memory", AppEnv.StoreDriver)
	assert.Equal(t, time.Hour, AppEnv.AccessTokenTTL)
	assert.Equal(t, 4, AppEnv.BcryptCost)
}

func TestValidate(t *testing.T) {
	base := Config{
		StoreDriver:    "memory",
		JWTSecret:      "s",
		AccessTokenTTL: time.Minute,
		BcryptCost:     10,
		Upload:         UploadConfig{Driver: "disk"},
	}
	require.NoError(t, base.Validate())

	missingSecret := base
	missingSecret.JWTSecret = " "
	assert.Error(t, missingSecret.Validate())

	badDriver := base
	badDriver.StoreDriver = "sqlite"
	assert.Error(t, badDriver.Validate())

	minioWithoutEndpoint := base
	minioWithoutEndpoint.Upload.Driver = "minio"
	assert.Error(t, minioWithoutEndpoint.Validate())

	badCost := base
	badCost.BcryptCost = 2
	assert.Error(t, badCost.Validate())
}

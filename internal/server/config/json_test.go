package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_grpc":              "www.example:9000",
		"database_dsn":                    "postgres://example/authdb",
		"redis_addr":                      "redis.example:6379",
		"redis_password":                  "redispass",
		"redis_db":                        2,
		"redis_pool_size":                 20,
		"jwt_issuer":                      "issuer.example",
		"jwt_private_key_path":            "/keys/private.pem",
		"jwt_public_key_path":             "/keys/public.pem",
		"access_token_validity_duration":  "20m",
		"refresh_token_validity_duration": "72h",
		"argon2_memory":                   32768,
		"argon2_iterations":               4,
		"argon2_parallelism":              1,
		"argon2_salt_length":              24,
		"argon2_key_length":               48,
		"max_login_attempts":              3,
		"lockout_duration":                "30m",
		"reset_token_validity_duration":   "2h",
		"shutdown_timeout":                "10s",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "postgres://example/authdb", cfg.DatabaseDSN)
		assert.Equal(t, "redis.example:6379", cfg.RedisAddr)
		assert.Equal(t, "redispass", cfg.RedisPassword)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Equal(t, 20, cfg.RedisPoolSize)
		assert.Equal(t, "issuer.example", cfg.JWTIssuer)
		assert.Equal(t, "/keys/private.pem", cfg.JWTPrivateKeyPath)
		assert.Equal(t, "/keys/public.pem", cfg.JWTPublicKeyPath)
		assert.Equal(t, 20*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 72*time.Hour, cfg.RefreshTokenValidityDuration)
		assert.Equal(t, uint32(32768), cfg.Argon2Memory)
		assert.Equal(t, uint32(4), cfg.Argon2Iterations)
		assert.Equal(t, uint8(1), cfg.Argon2Parallelism)
		assert.Equal(t, uint32(24), cfg.Argon2SaltLength)
		assert.Equal(t, uint32(48), cfg.Argon2KeyLength)
		assert.Equal(t, 3, cfg.MaxLoginAttempts)
		assert.Equal(t, 30*time.Minute, cfg.LockoutDuration)
		assert.Equal(t, 2*time.Hour, cfg.ResetTokenValidityDuration)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("partial file overrides only named settings", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"endpoint_addr_grpc": "partial:7000",
			"max_login_attempts": 7,
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "partial:7000", cfg.EndpointAddrGRPC)
		assert.Equal(t, 7, cfg.MaxLoginAttempts)
		// untouched settings keep their defaults
		assert.Equal(t, "authkeeper", cfg.JWTIssuer)
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 168*time.Hour, cfg.RefreshTokenValidityDuration)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddrGRPC: "defaults:1234",
			DatabaseDSN:      "postgres://defaults/db",
			JWTIssuer:        "defaults-issuer",
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrGRPC)
		assert.Equal(t, "postgres://defaults/db", cfg.DatabaseDSN)
		assert.Equal(t, "defaults-issuer", cfg.JWTIssuer)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "does-not-exist.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atinyakov/shortlink-registry/internal/config"
)

var envKeys = []string{
	"SERVER_ADDRESS", "BASE_URL", "FILE_STORAGE_PATH", "DATABASE_DSN", "REDIS_URL", "CACHE_TTL",
	"GRPC_PORT", "TRUSTED_SUBNET", "LOG_LEVEL", "LOG_FILE", "ENABLE_PPROF", "ENABLE_HTTPS", "CONFIG",
}

// clearEnv blanks every variable the config reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseArgs(t *testing.T) {
	t.Run("no env, no config", func(t *testing.T) {
		clearEnv(t)

		opts, err := config.ParseArgs(nil)
		require.NoError(t, err)
		require.Equal(t, "localhost:8080", opts.Port)
		require.Equal(t, "http://localhost:8080", opts.ResultHostname)
		require.Equal(t, "data/shortener.db", opts.FilePath)
		require.Equal(t, time.Hour, opts.CacheTTL)
		require.Equal(t, "info", opts.LogLevel)
		require.Zero(t, opts.GRPCPort)
		require.False(t, opts.EnableHTTPS)
		require.False(t, opts.EnablePprof)
		require.Empty(t, opts.Config)
	})

	t.Run("flags", func(t *testing.T) {
		clearEnv(t)

		opts, err := config.ParseArgs([]string{
			"-a", ":9090", "-b", "https://sho.rt", "-d", "postgres://u@h/db",
			"-r", "redis://localhost:6379/0", "-ttl", "5m", "-g", "3200", "-t", "10.0.0.0/8", "-s",
		})
		require.NoError(t, err)
		require.Equal(t, ":9090", opts.Port)
		require.Equal(t, "https://sho.rt", opts.ResultHostname)
		require.Equal(t, "postgres://u@h/db", opts.DatabaseDSN)
		require.Equal(t, "redis://localhost:6379/0", opts.RedisURL)
		require.Equal(t, 5*time.Minute, opts.CacheTTL)
		require.Equal(t, 3200, opts.GRPCPort)
		require.Equal(t, "10.0.0.0/8", opts.TrustedSubnet)
		require.True(t, opts.EnableHTTPS)
		require.False(t, opts.EnablePprof)
	})

	t.Run("env overrides flags", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SERVER_ADDRESS", "127.0.0.1:9999")
		t.Setenv("BASE_URL", "http://example.com")
		t.Setenv("FILE_STORAGE_PATH", "/tmp/data.db")
		t.Setenv("ENABLE_HTTPS", "true")
		t.Setenv("TRUSTED_SUBNET", "192.168.0.0/24")

		opts, err := config.ParseArgs([]string{"-a", ":1111"})
		require.NoError(t, err)
		require.Equal(t, "127.0.0.1:9999", opts.Port)
		require.Equal(t, "http://example.com", opts.ResultHostname)
		require.Equal(t, "/tmp/data.db", opts.FilePath)
		require.True(t, opts.EnableHTTPS)
		require.Equal(t, "192.168.0.0/24", opts.TrustedSubnet)
	})

	t.Run("config file below flags and env", func(t *testing.T) {
		clearEnv(t)

		path := writeConfig(t, `{
			"server_address": "10.0.0.1:8081",
			"base_url": "http://testhost",
			"file_storage_path": "/config/path.db",
			"database_dsn": "postgres://test",
			"cache_ttl": "30s",
			"grpc_port": 3200,
			"enable_pprof": true,
			"trusted_subnet": "10.10.0.0/16"
		}`)
		t.Setenv("BASE_URL", "http://from-env")

		opts, err := config.ParseArgs([]string{"-c", path, "-a", "0.0.0.0:80"})
		require.NoError(t, err)
		require.Equal(t, "0.0.0.0:80", opts.Port)
		require.Equal(t, "http://from-env", opts.ResultHostname)
		require.Equal(t, "/config/path.db", opts.FilePath)
		require.Equal(t, "postgres://test", opts.DatabaseDSN)
		require.Equal(t, 30*time.Second, opts.CacheTTL)
		require.Equal(t, 3200, opts.GRPCPort)
		require.True(t, opts.EnablePprof)
		require.Equal(t, "10.10.0.0/16", opts.TrustedSubnet)
		require.Equal(t, path, opts.Config)
	})

	t.Run("config path from env", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG", writeConfig(t, `{"log_level": "debug"}`))

		opts, err := config.ParseArgs(nil)
		require.NoError(t, err)
		require.Equal(t, "debug", opts.LogLevel)
	})

	t.Run("errors", func(t *testing.T) {
		clearEnv(t)

		_, err := config.ParseArgs([]string{"-ttl", "forever"})
		require.Error(t, err)

		_, err = config.ParseArgs([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
		require.Error(t, err)

		_, err = config.ParseArgs([]string{"-c", writeConfig(t, `{not json`)})
		require.Error(t, err)

		t.Setenv("GRPC_PORT", "abc")
		_, err = config.ParseArgs(nil)
		require.Error(t, err)
	})
}

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
		"endpoint_addr_grpc":             "www.example:9000",
		"endpoint_addr_http":             "www.example:8000",
		"database_dsn":                   "postgres://db",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "90m",
		"s3_root_user":                   "user",
		"s3_root_password":               "password",
		"s3_bucket":                      "bucket",
		"s3_region":                      "region",
		"s3_base_endpoint":               "base_endpoint",
		"content_ttl":                    "48h",
		"sweep_interval":                 int64(30 * time.Second),
		"max_view_history":               0,
		"max_caption_length":             120,
		"allow_filter_fallback":          true,
		"log_level":                      "warn",
		"cors_origins":                   []string{"https://app.example"},
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := defaults()
		parseJson(&cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "www.example:8000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 90*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, "user", cfg.S3RootUser)
		assert.Equal(t, "password", cfg.S3RootPassword)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
		assert.Equal(t, 48*time.Hour, cfg.ContentTTL)
		assert.Equal(t, 30*time.Second, cfg.SweepInterval)
		assert.Equal(t, 0, cfg.MaxViewHistory)
		assert.Equal(t, 120, cfg.MaxCaptionLength)
		assert.True(t, cfg.AllowFilterFallback)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, []string{"https://app.example"}, cfg.CORSOrigins)
		assert.True(t, cfg.MirrorEnabled())
		assert.True(t, cfg.MediaEnabled())
	})

	t.Run("env var names the file", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(ConfigEnvVar, pathFlag)

		cfg := defaults()
		parseJson(&cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
	})

	t.Run("partial file keeps the rest", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"s3_bucket": "media"})
		os.Args = []string{"testbin", "-c", partial}

		cfg := defaults()
		parseJson(&cfg)

		want := defaults()
		want.S3Bucket = "media"
		assert.Equal(t, want, cfg)
	})

	t.Run("no config and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(ConfigEnvVar, "")

		cfg := defaults()
		parseJson(&cfg)

		assert.Equal(t, defaults(), cfg)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}

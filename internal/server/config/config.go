// Package config handles configuration for the swappool server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the swappool server.
//
// Fields:
//   - EndpointAddrGRPC / EndpointAddrHTTP: bind addresses of the gRPC and REST endpoints.
//   - DatabaseDSN: PostgreSQL DSN (pgx) for the durable mirror. Empty disables the mirror.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: session token lifetime.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings. Empty endpoint disables media.
//   - ContentTTL: how long unsaved content stays in the pool.
//   - SweepInterval: period of the background expiry sweep.
//   - MaxViewHistory: per-viewer seen-set cap; negative means unbounded.
//   - MaxCaptionLength: caption limit in characters.
//   - AllowFilterFallback: let Next retry with the "all" filter when the
//     requested one is exhausted.
//   - CORSOrigins: origins allowed to call the REST API from a browser.
type Config struct {
	EndpointAddrGRPC            string
	EndpointAddrHTTP            string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
	ContentTTL                  time.Duration
	SweepInterval               time.Duration
	MaxViewHistory              int
	MaxCaptionLength            int
	AllowFilterFallback         bool
	LogLevel                    string
	CORSOrigins                 []string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "swaps"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.ContentTTL = 24 * time.Hour
	c.SweepInterval = time.Minute
	c.MaxViewHistory = 1000
	c.MaxCaptionLength = 200
	c.AllowFilterFallback = false
	c.LogLevel = "info"
	c.CORSOrigins = []string{"*"}
}

// MirrorEnabled reports whether a database is configured.
func (c *Config) MirrorEnabled() bool { return c.DatabaseDSN != "" }

// MediaEnabled reports whether object storage is configured.
func (c *Config) MediaEnabled() bool { return c.S3BaseEndpoint != "" }

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

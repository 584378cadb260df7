package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/swappool/internal/flagx"
	"github.com/dmitrijs2005/swappool/internal/timex"
)

// ConfigEnvVar names the environment variable consulted when no -c/-config
// flag is given.
const ConfigEnvVar = "SWAPPOOL_CONFIG"

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so "24h" and integer nanoseconds are both accepted.
// Pointer fields distinguish "absent" from an explicit zero value.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	ContentTTL                  timex.Duration `json:"content_ttl"`
	SweepInterval               timex.Duration `json:"sweep_interval"`
	MaxViewHistory              *int           `json:"max_view_history"`
	MaxCaptionLength            *int           `json:"max_caption_length"`
	AllowFilterFallback         *bool          `json:"allow_filter_fallback"`
	LogLevel                    string         `json:"log_level"`
	CORSOrigins                 []string       `json:"cors_origins"`
}

// parseJson overlays values from the JSON file named by -c/-config (or
// SWAPPOOL_CONFIG) onto config. Keys missing from the file leave the
// current values alone. An unreadable or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(ConfigEnvVar)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ContentTTL.Duration > 0 {
		config.ContentTTL = c.ContentTTL.Duration
	}
	if c.SweepInterval.Duration > 0 {
		config.SweepInterval = c.SweepInterval.Duration
	}
	if c.MaxViewHistory != nil {
		config.MaxViewHistory = *c.MaxViewHistory
	}
	if c.MaxCaptionLength != nil {
		config.MaxCaptionLength = *c.MaxCaptionLength
	}
	if c.AllowFilterFallback != nil {
		config.AllowFilterFallback = *c.AllowFilterFallback
	}
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

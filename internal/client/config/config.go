// Package config holds the settings of the swapctl client: defaults, an
// optional JSON file and command-line flags, applied in that order.
package config

import "time"

// Config holds runtime settings for swapctl.
//
// Fields:
//   - ServerEndpointAddr: host:port of the gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: deadline of a single call, uploads excluded.
//   - Filter: the content filter used by "next" until changed.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	Filter              string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.Filter = "sfw"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/swappool/internal/flagx"
	"github.com/dmitrijs2005/swappool/internal/timex"
)

// ConfigEnvVar names the environment variable consulted when no -c/-config
// flag is given.
const ConfigEnvVar = "SWAPCTL_CONFIG"

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept "3s" strings or integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	Filter              string         `json:"filter"`
}

// parseJson overlays cfg with the non-empty values of the JSON file named by
// -c/-config or SWAPCTL_CONFIG. Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(ConfigEnvVar)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Filter != "" {
		cfg.Filter = jc.Filter
	}
}

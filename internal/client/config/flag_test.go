package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "127.0.0.1:9090", "-i", "10", "-t", "30", "-f", "all"}, expectPanic: false,
			expected: &Config{ServerEndpointAddr: "127.0.0.1:9090", OnlineCheckInterval: 10 * time.Second, RequestTimeout: 30 * time.Second, Filter: "all"}},
		{name: "unrelated flags ignored", args: []string{"cmd", "-x", "1", "-a", "h:1"}, expectPanic: false,
			expected: &Config{ServerEndpointAddr: "h:1"}},
		{name: "incorrect check interval", args: []string{"cmd", "-a", "127.0.0.1:9090", "-i", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

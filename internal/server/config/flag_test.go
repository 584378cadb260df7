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
	tests := []struct {
		name        string
		args        []string
		expected    func() *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-l", "127.0.0.1:8081", "-d", "db", "-s", "secret",
				"-t", "60", "-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
				"-x", "30", "-i", "5", "-m=-1", "-k", "80", "-f", "-v", "debug",
			},
			expected: func() *Config {
				return &Config{
					EndpointAddrGRPC:            "127.0.0.1:9090",
					EndpointAddrHTTP:            "127.0.0.1:8081",
					DatabaseDSN:                 "db",
					SecretKey:                   "secret",
					AccessTokenValidityDuration: time.Hour,
					S3RootUser:                  "user",
					S3RootPassword:              "password",
					S3Bucket:                    "bucket",
					S3Region:                    "us-west-1",
					S3BaseEndpoint:              "http://endpoint",
					ContentTTL:                  30 * time.Minute,
					SweepInterval:               5 * time.Second,
					MaxViewHistory:              -1,
					MaxCaptionLength:            80,
					AllowFilterFallback:         true,
					LogLevel:                    "debug",
					CORSOrigins:                 []string{"*"},
				}
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"cmd", "-z", "zzz", "-a", ":1", "--verbose"},
			expected: func() *Config {
				c := defaults()
				c.EndpointAddrGRPC = ":1"
				return &c
			},
		},
		{
			name: "fallback spelled with a value",
			args: []string{"cmd", "-f=false"},
			expected: func() *Config {
				c := defaults()
				return &c
			},
		},
		{
			name:        "bad integer",
			args:        []string{"cmd", "-k", "many"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := defaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(&config) })
			assert.Empty(t, cmp.Diff(tt.expected(), &config))
		})
	}
}

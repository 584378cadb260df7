package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-l", "-d", "-x", "-f"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"config path only", []string{"-c", "pool.json", "-a", ":50051"}, []string{"-c", "-config"}, []string{"-c", "pool.json"}},
		{"equals form", []string{"-config=pool.json", "-l", ":8080"}, []string{"-c", "-config"}, []string{"-config=pool.json"}},
		{"server flags keep order", []string{"-x", "60", "-c", "pool.json", "-a", ":9000", "-f"}, serverFlags, []string{"-x", "60", "-a", ":9000", "-f"}},
		{"client flags dropped", []string{"-t", "5", "-i", "2", "-l", ":8080"}, serverFlags, []string{"-l", ":8080"}},
		{"boolean before next flag takes no value", []string{"-f", "-a", ":1"}, serverFlags, []string{"-f", "-a", ":1"}},
		{"trailing flag without value", []string{"-d"}, serverFlags, []string{"-d"}},
		{"dash value only in equals form", []string{"-d=-weird", "-d", "-x"}, []string{"-d"}, []string{"-d=-weird", "-d"}},
		{"repeated flag preserved", []string{"-a", ":1", "-a", ":2"}, serverFlags, []string{"-a", ":1", "-a", ":2"}},
		{"positional ignored", []string{"serve", "-a", ":1", "extra"}, serverFlags, []string{"-a", ":1"}},
		{"empty", nil, serverFlags, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", ConfigPath(""))
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", ConfigPath(""))
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-y", "2"}
		assert.Empty(t, ConfigPath(""))
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", ConfigPath(""))
	})

	t.Run("env var used when no flag", func(t *testing.T) {
		t.Setenv("SWAPPOOL_TEST_CONFIG", "/etc/swappool.json")
		os.Args = []string{"testbin"}
		assert.Equal(t, "/etc/swappool.json", ConfigPath("SWAPPOOL_TEST_CONFIG"))
	})

	t.Run("flag beats env var", func(t *testing.T) {
		t.Setenv("SWAPPOOL_TEST_CONFIG", "/etc/swappool.json")
		os.Args = []string{"testbin", "-c", "local.json"}
		assert.Equal(t, "local.json", ConfigPath("SWAPPOOL_TEST_CONFIG"))
	})
}

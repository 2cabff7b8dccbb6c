package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{
			"-a", "127.0.0.1:8080", "-g", "127.0.0.1:9090", "-d", "db", "-s", "secret",
			"-m", "memory", "-l", "debug", "-r", "20", "-b", "4",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP:   "127.0.0.1:8080",
				EndpointAddrGRPC:   "127.0.0.1:9090",
				DatabaseDSN:        "db",
				SecretKey:          "secret",
				Storage:            "memory",
				LogLevel:           "debug",
				LoginRatePerMinute: 20,
				LoginBurst:         4,
			}},
		{name: "foreign flags are ignored", args: []string{"-c", "cfg.json", "-s", "secret", "-x"},
			expected: &Config{SecretKey: "secret"}},
		{name: "bad int", args: []string{"-r", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

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

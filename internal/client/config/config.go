package config

import "os"

// EnvToken names the environment variable holding the bearer token.
const EnvToken = "GOPHCOURSES_TOKEN"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - Token: bearer token sent with every call; empty means anonymous.
type Config struct {
	ServerEndpointAddr string
	Token              string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// token from the environment, values from JSON (if present) and
// command-line flags (if present). Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	}
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

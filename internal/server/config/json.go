package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophcourses/internal/flagx"
)

// JsonConfig is the shape of the optional JSON config file. Fields left
// out of the file keep their previous values.
type JsonConfig struct {
	EndpointAddrHTTP   string `json:"endpoint_addr_http"`
	EndpointAddrGRPC   string `json:"endpoint_addr_grpc"`
	DatabaseDSN        string `json:"database_dsn"`
	SecretKey          string `json:"secret_key"`
	Storage            string `json:"storage"`
	LogLevel           string `json:"log_level"`
	LoginRatePerMinute int    `json:"login_rate_per_minute"`
	LoginBurst         int    `json:"login_burst"`
}

// parseJson loads configuration values from the JSON file named by the -c
// or -config flag (or the CONFIG environment variable). Without a path
// nothing is loaded. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigFileFlag()

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

	overlay(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.Storage, c.Storage)
	overlay(&config.LogLevel, c.LogLevel)
	overlay(&config.LoginRatePerMinute, c.LoginRatePerMinute)
	overlay(&config.LoginBurst, c.LoginBurst)
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

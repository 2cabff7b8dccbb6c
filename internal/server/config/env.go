package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvHTTPAddress = "HTTP_ADDRESS"
	EnvGRPCAddress = "GRPC_ADDRESS"
	EnvDatabaseDSN = "DATABASE_DSN"
	EnvSecretKey   = "SECRET_KEY_JWT"
	EnvStorage     = "STORAGE"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLoginRate   = "LOGIN_RATE_PER_MINUTE"
	EnvLoginBurst  = "LOGIN_BURST"
)

// parseEnv overlays values from the process environment. Variables from
// dotenv files (".env" in the working directory when none are given) are
// loaded first; they never override variables that are already set.
func parseEnv(config *Config, dotenvFiles ...string) {
	// a missing .env is normal
	_ = godotenv.Load(dotenvFiles...)

	setString(&config.EndpointAddrHTTP, EnvHTTPAddress)
	setString(&config.EndpointAddrGRPC, EnvGRPCAddress)
	setString(&config.DatabaseDSN, EnvDatabaseDSN)
	setString(&config.SecretKey, EnvSecretKey)
	setString(&config.Storage, EnvStorage)
	setString(&config.LogLevel, EnvLogLevel)
	setInt(&config.LoginRatePerMinute, EnvLoginRate)
	setInt(&config.LoginBurst, EnvLoginBurst)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

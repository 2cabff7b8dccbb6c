package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophcourses/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3131")
//	-g string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-m string   storage: postgres or memory
//	-l string   log level
//	-r int      login attempts per minute per client IP
//	-b int      login burst per client IP
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-m", "-l", "-r", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.Storage, "m", config.Storage, "storage (postgres or memory)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.IntVar(&config.LoginRatePerMinute, "r", config.LoginRatePerMinute, "login attempts per minute per client")
	fs.IntVar(&config.LoginBurst, "b", config.LoginBurst, "login burst per client")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

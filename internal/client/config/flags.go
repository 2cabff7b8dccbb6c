package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophcourses/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string       address and port of the backend server
//	-token string   bearer token
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-token"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "bearer token")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

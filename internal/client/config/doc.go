// Package config loads the CLI client settings from defaults, the
// environment, an optional JSON file and command-line flags.
package config

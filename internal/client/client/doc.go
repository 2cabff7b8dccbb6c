// Package client is the gRPC client of the auth service used by the CLI.
// It attaches the bearer token to every call and turns status errors back
// into the server's messages.
package client

// Package cli implements the gophcourses command-line client.
//
// Each invocation runs one command against the gRPC API:
//
//	register         create an account (password read without echo)
//	login            print a token for GOPHCOURSES_TOKEN
//	me               show the account behind the token
//	update [id]      change name and date of an account (default: own)
//	ping             check the server
//
// See App.Run.
package cli

// Package cli provides the interactive AuthKeeper command-line client.
//
// It wires configuration, the gRPC API wrapper, and an interactive REPL for
// exercising the account flows against a running server.
//
// Supported commands:
//   - signup: register a new account
//   - login: exchange credentials for a token pair
//   - validate: check an access token (argument or last login)
//   - forgot / reset: the password reset round trip
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli

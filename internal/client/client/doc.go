// Package client wraps the generated AuthService gRPC client behind a small
// API the CLI talks to. gRPC status codes are translated to the package's
// sentinel errors so the CLI never imports grpc directly.
package client

package externs

import (
	"errors"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/udf-lab/externs-go/auth"
	"github.com/udf-lab/externs-go/registry"
)

// ServerConfig contains configuration for an externs Flight server.
type ServerConfig struct {
	// Registry provides namespaces and external function declarations.
	// REQUIRED: MUST NOT be nil.
	Registry registry.Registry

	// Auth provides authentication logic.
	// OPTIONAL: If nil, no authentication (all requests allowed).
	Auth auth.Authenticator

	// Allocator for Arrow memory management.
	// OPTIONAL: Uses memory.DefaultAllocator if nil.
	Allocator memory.Allocator

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger

	// MaxMessageSize sets maximum gRPC message size in bytes.
	// OPTIONAL: If 0, uses gRPC default (4MB).
	MaxMessageSize int

	// Address is the server's public address (e.g., "localhost:50051").
	// OPTIONAL: Informational; included in logs only.
	Address string
}

// Standard errors returned by the externs package.
var (
	// ErrUnauthorized indicates authentication failed.
	// Return this from Authenticator.Authenticate() for invalid tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidConfig indicates ServerConfig validation failed.
	ErrInvalidConfig = errors.New("invalid server config")

	// ErrNotFound indicates a namespace or declaration lookup failed.
	ErrNotFound = errors.New("registry entity not found")
)

// Package flight provides Flight RPC handler implementations for serving
// external function registries to remote engines.
package flight

import (
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/grpc"

	"github.com/udf-lab/externs-go/registry"
)

// Server implements the Flight service handlers.
// Embeds BaseFlightServer for forward compatibility with protocol changes.
type Server struct {
	flight.BaseFlightServer

	registry  registry.Registry
	allocator memory.Allocator
	logger    *slog.Logger
	address   string // Server's public address, informational only
}

// NewServer creates a new Flight server over the given registry.
// The logger is used for internal logging of errors and important events.
func NewServer(reg registry.Registry, allocator memory.Allocator, logger *slog.Logger, address string) *Server {
	return &Server{
		registry:  reg,
		allocator: allocator,
		logger:    logger,
		address:   address,
	}
}

// RegisterFlightServer registers the Flight service on the provided gRPC
// server. This follows the standard gRPC service registration pattern.
func RegisterFlightServer(grpcServer *grpc.Server, flightServer *Server) {
	flight.RegisterFlightServiceServer(grpcServer, flightServer)
}

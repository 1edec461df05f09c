package externs

import (
	"fmt"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/grpc"

	"github.com/udf-lab/externs-go/auth"
	"github.com/udf-lab/externs-go/flight"
)

// NewServer registers externs Flight service handlers on the provided gRPC
// server. This is the main entry point for serving a registry.
//
// The function:
//  1. Validates the ServerConfig
//  2. Creates the Flight service implementation
//  3. Registers it on grpcServer
//
// Returns error if config is invalid (e.g., nil Registry).
// Does NOT start the gRPC server - user controls lifecycle via
// grpcServer.Serve().
//
// For authentication, use ServerOptions() to create a gRPC server with
// auth interceptors:
//
//	opts := externs.ServerOptions(externs.ServerConfig{
//	    Auth: externs.BearerAuth(validateToken),
//	})
//	grpcServer := grpc.NewServer(opts...)
//	err := externs.NewServer(grpcServer, config)
func NewServer(grpcServer *grpc.Server, config ServerConfig) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	allocator := config.Allocator
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	flightServer := flight.NewServer(config.Registry, allocator, logger, config.Address)
	flight.RegisterFlightServer(grpcServer, flightServer)

	logger.Info("externs Flight server registered",
		"has_auth", config.Auth != nil,
		"max_message_size", config.MaxMessageSize,
	)

	return nil
}

// validateConfig checks that required ServerConfig fields are valid.
func validateConfig(config ServerConfig) error {
	if config.Registry == nil {
		return fmt.Errorf("registry is required")
	}
	return nil
}

// ServerOptions returns gRPC server options with authentication
// interceptors and message size limits. Use this when creating the gRPC
// server if authentication is enabled.
func ServerOptions(config ServerConfig) []grpc.ServerOption {
	var opts []grpc.ServerOption

	if config.Auth != nil {
		opts = append(opts,
			grpc.UnaryInterceptor(auth.UnaryServerInterceptor(config.Auth)),
			grpc.StreamInterceptor(auth.StreamServerInterceptor(config.Auth)),
		)
	}

	if config.MaxMessageSize > 0 {
		opts = append(opts,
			grpc.MaxRecvMsgSize(config.MaxMessageSize),
			grpc.MaxSendMsgSize(config.MaxMessageSize),
		)
	}

	return opts
}

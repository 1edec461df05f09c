// Package recovery provides panic recovery for Flight RPC handlers.
// Ensures user-provided Registry implementations don't crash the server.
package recovery

import (
	"log/slog"
	"runtime/debug"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToError wraps a function call with panic recovery.
// If the function panics, the panic is logged with its stack trace and
// converted to a gRPC Internal error. Use this around user-provided code
// (Registry, Namespace, DynamicNamespace implementations).
//
// Example:
//
//	err := recovery.ToError(logger, "Externals", func() error {
//	    return declareAll(ctx, ns)
//	})
func ToError(logger *slog.Logger, operation string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			logger.Error("Panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(stack),
			)

			err = status.Errorf(codes.Internal, "%s panicked: %v", operation, r)
		}
	}()

	return fn()
}

// ToValue wraps a function that returns a value and error.
// If the function panics, returns the zero value and a gRPC Internal error.
func ToValue[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			logger.Error("Panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(stack),
			)

			err = status.Errorf(codes.Internal, "%s panicked: %v", operation, r)
		}
	}()

	return fn()
}

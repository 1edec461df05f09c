// Package externs provides a high-level API for declaring typed external
// (foreign) functions and serving them to remote analytical engines over
// Apache Arrow Flight.
//
// An external function is a symbol that exists only in the environment
// where compiled code ultimately executes — a math library linked into a
// database server, a GPU device library, an engine built-in. This package
// lets you:
//   - Declare such symbols from C-style signature strings, with overloads
//   - Resolve the exact overload for a call site's argument types
//   - Group declarations into namespaces with a fluent builder API
//   - Serve the registry to engines over Flight DoAction RPCs
//
// # Quick Start
//
// Declare a symbol and resolve a call site in a few lines:
//
//	binding, err := external.Declare("abs", "i32(i32)", "i64(i64)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ref, err := binding.Resolve([]types.Type{{Kind: types.KindInt64}})
//	// ref.Symbol == "abs", ref.Return == i64
//
// Serve a registry of declarations over gRPC:
//
//	package main
//
//	import (
//	    "log"
//	    "net"
//
//	    "google.golang.org/grpc"
//
//	    externs "github.com/udf-lab/externs-go"
//	    "github.com/udf-lab/externs-go/libdevice"
//	)
//
//	func main() {
//	    reg, err := externs.NewRegistryBuilder().
//	        Namespace("main").
//	            Declare("int64 abs(int64)").
//	            Declare("double hypot(double, double)").
//	        Namespace("libdevice").
//	            Externals(libdevice.Bindings()...).
//	        Build()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    grpcServer := grpc.NewServer()
//	    if err := externs.NewServer(grpcServer, externs.ServerConfig{Registry: reg}); err != nil {
//	        log.Fatal(err)
//	    }
//	    lis, _ := net.Listen("tcp", ":50051")
//	    log.Println("externs server listening on :50051")
//	    grpcServer.Serve(lis)
//	}
//
// # Architecture
//
// The package follows an interface-based design:
//
//   - external.Binding: one declared symbol with its typed overload set
//   - registry.Registry: top-level interface for querying namespaces
//   - registry.Namespace: interface grouping one library's declarations
//   - registry.DynamicNamespace: optional interface for runtime declaration
//
// Users can either build static registries with RegistryBuilder or
// implement the Registry interface for dynamic backends.
//
// # What a binding is not
//
// A binding never executes its symbol. Calling Binding.Call always fails
// with UnsupportedInvocationError: the symbol is link-resolvable only at
// the remote execution site, not in the declaring process. The binding's
// job ends at emitting a symbol name and resolved types for the compiling
// framework to splice into generated code.
//
// # Server Lifecycle
//
// The package registers Flight service handlers on a user-provided
// grpc.Server but does NOT manage server lifecycle (start/stop/listen).
// This gives users full control over TLS configuration, server options,
// interceptors, and graceful shutdown.
//
// # Authentication
//
// Bearer token authentication is supported via the BearerAuth helper:
//
//	config := externs.ServerConfig{
//	    Registry: reg,
//	    Auth: externs.BearerAuth(func(token string) (string, error) {
//	        if token == "secret-api-key" {
//	            return "compiler", nil
//	        }
//	        return "", externs.ErrUnauthorized
//	    }),
//	}
//
//	grpcServer := grpc.NewServer(externs.ServerOptions(config)...)
//	externs.NewServer(grpcServer, config)
//
// # Logging
//
// The package uses log/slog.Default() for all internal logging. Users can
// configure logging by passing a Logger in ServerConfig or by calling
// slog.SetDefault() before package initialization.
//
// # Concurrency
//
// Declare and Resolve are pure computations over immutable data and are
// safe to call concurrently without locking. Registry implementations
// returned by RegistryBuilder are immutable; registry.MutableNamespace
// owns its own locking.
package externs

package externs

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"google.golang.org/grpc"
)

func testRegistry(t *testing.T) *RegistryBuilder {
	t.Helper()
	rb := NewRegistryBuilder()
	rb.Namespace("main").Declare("i64 abs(i64)")
	return rb
}

func TestNewServer(t *testing.T) {
	reg, err := testRegistry(t).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	grpcServer := grpc.NewServer()
	defer grpcServer.Stop()

	err = NewServer(grpcServer, ServerConfig{
		Registry: reg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Address:  "localhost:50051",
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	// The Flight service must be registered.
	info := grpcServer.GetServiceInfo()
	if _, ok := info["arrow.flight.protocol.FlightService"]; !ok {
		t.Errorf("FlightService not registered; services: %v", info)
	}
}

func TestNewServerNilRegistry(t *testing.T) {
	grpcServer := grpc.NewServer()
	defer grpcServer.Stop()

	err := NewServer(grpcServer, ServerConfig{})
	if err == nil {
		t.Fatal("NewServer with nil registry succeeded, want error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestServerOptions(t *testing.T) {
	t.Run("empty config", func(t *testing.T) {
		opts := ServerOptions(ServerConfig{})
		if len(opts) != 0 {
			t.Errorf("expected no options, got %d", len(opts))
		}
	})

	t.Run("auth adds interceptors", func(t *testing.T) {
		opts := ServerOptions(ServerConfig{
			Auth: BearerAuth(func(token string) (string, error) {
				return "", ErrUnauthorized
			}),
		})
		if len(opts) != 2 {
			t.Errorf("expected 2 options, got %d", len(opts))
		}
	})

	t.Run("message size limits", func(t *testing.T) {
		opts := ServerOptions(ServerConfig{MaxMessageSize: 16 << 20})
		if len(opts) != 2 {
			t.Errorf("expected 2 options, got %d", len(opts))
		}
	})
}

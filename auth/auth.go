// Package auth provides bearer token authentication for externs Flight
// servers. Declaration registries often front shared compilation services;
// the declare_external action in particular should not be open to anyone.
package auth

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Authenticator validates bearer tokens and returns user identity.
// Implementations MUST be goroutine-safe.
type Authenticator interface {
	// Authenticate validates a bearer token and returns user identity.
	// Returns error if the token is invalid or expired.
	// Context allows timeouts for auth backend calls.
	Authenticate(ctx context.Context, token string) (identity string, err error)
}

// bearerAuthenticator wraps a user-provided validation function.
type bearerAuthenticator struct {
	validateFunc func(token string) (identity string, err error)
}

// BearerAuth creates an Authenticator from a validation function.
// This is the simplest way to add authentication.
//
// Example:
//
//	auth := auth.BearerAuth(func(token string) (string, error) {
//	    if token != compilerServiceKey {
//	        return "", errors.New("unknown token")
//	    }
//	    return "compiler", nil
//	})
func BearerAuth(validateFunc func(token string) (identity string, err error)) Authenticator {
	return &bearerAuthenticator{validateFunc: validateFunc}
}

func (b *bearerAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	return b.validateFunc(token)
}

// contextKey is a private type for context keys to avoid collisions.
type contextKey int

const identityKey contextKey = iota

// WithIdentity returns a new context carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the authenticated identity from context.
// Returns empty string for unauthenticated requests.
func IdentityFromContext(ctx context.Context) string {
	identity, ok := ctx.Value(identityKey).(string)
	if !ok {
		return ""
	}
	return identity
}

// ExtractToken extracts the bearer token from gRPC metadata.
// Looks for an "authorization" header in "Bearer <token>" format.
// Returns empty string when no header is present.
func ExtractToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", nil
	}

	authHeaders := md.Get("authorization")
	if len(authHeaders) == 0 {
		return "", nil
	}

	const bearerPrefix = "Bearer "
	authHeader := authHeaders[0]
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", status.Error(codes.Unauthenticated, "authorization header must use Bearer scheme")
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", status.Error(codes.Unauthenticated, "bearer token is empty")
	}

	return token, nil
}

// ValidateToken validates a bearer token using the provided Authenticator.
// Returns a context with identity set, or an Unauthenticated status.
func ValidateToken(ctx context.Context, token string, authenticator Authenticator) (context.Context, error) {
	if token == "" {
		return ctx, status.Error(codes.Unauthenticated, "missing bearer token")
	}

	identity, err := authenticator.Authenticate(ctx, token)
	if err != nil {
		return ctx, status.Error(codes.Unauthenticated, fmt.Sprintf("invalid token: %v", err))
	}

	return WithIdentity(ctx, identity), nil
}

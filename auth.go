package externs

import (
	"context"

	"github.com/udf-lab/externs-go/auth"
)

// Authenticator validates bearer tokens and returns user identity.
// This is re-exported from the auth package for convenience.
type Authenticator = auth.Authenticator

// BearerAuth creates an Authenticator from a validation function.
// This is the simplest way to add authentication to an externs server.
//
// Example:
//
//	auth := externs.BearerAuth(func(token string) (string, error) {
//	    user, err := validateWithMyBackend(token)
//	    if err != nil {
//	        return "", externs.ErrUnauthorized
//	    }
//	    return user.ID, nil
//	})
func BearerAuth(validateFunc func(token string) (identity string, err error)) Authenticator {
	return auth.BearerAuth(validateFunc)
}

// IdentityFromContext retrieves the authenticated user identity from
// context. Returns empty string if no identity is set (unauthenticated
// request). Dynamic namespace implementations can use this to audit who
// declared a function.
func IdentityFromContext(ctx context.Context) string {
	return auth.IdentityFromContext(ctx)
}

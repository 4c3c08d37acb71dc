// Package auth talks to the hosted identity service. The service is
// consumed, never implemented: sign-in exchanges credentials for a
// token, lookup resolves a token to the account's claims. The admin
// console is gated on the custom "admin" claim.
package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidCredentials covers rejected email/password sign-ins.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrInvalidToken covers expired, malformed or revoked tokens.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrPermissionDenied marks an authenticated account without the
	// required claim. Not retryable; fixing access policy is the cure.
	ErrPermissionDenied = errors.New("auth: permission denied")
)

// Claims are what the identity service knows about a session.
type Claims struct {
	UID   string
	Email string
	Admin bool
}

// Session is the result of a successful sign-in.
type Session struct {
	UID          string
	Email        string
	IDToken      string
	RefreshToken string
	ExpiresIn    string
}

// Verifier resolves a bearer token to its claims.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned by any provider for a missing, malformed,
// expired or otherwise unverifiable credential.
var ErrInvalidToken = errors.New("invalid or expired token")

// Principal is the authenticated user submitting or viewing incidents.
type Principal struct {
	ID          string
	DisplayName string
}

// IsZero reports whether no authenticated session is attached.
func (p Principal) IsZero() bool {
	return p.ID == ""
}

// Provider verifies a bearer credential and resolves it to a Principal.
// Exactly one implementation is active per deployment: the JWT provider
// backed by the legacy login surface, or the Firebase ID-token verifier.
// The two are never combined.
type Provider interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

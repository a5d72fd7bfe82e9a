package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
)

// FirebaseProvider verifies Firebase ID tokens. It is the alternative to the
// JWT provider for deployments where identity lives in Firebase Auth.
type FirebaseProvider struct {
	client *fbauth.Client
}

func NewFirebaseProvider(ctx context.Context, app *firebase.App) (*FirebaseProvider, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase auth client: %w", err)
	}
	return &FirebaseProvider{client: client}, nil
}

// Verify checks the ID token with Firebase and snapshots the display name,
// falling back to the account email when no name claim is present.
func (p *FirebaseProvider) Verify(ctx context.Context, idToken string) (Principal, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	name, _ := token.Claims["name"].(string)
	if name == "" {
		name, _ = token.Claims["email"].(string)
	}

	return Principal{ID: token.UID, DisplayName: name}, nil
}

package firebase

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

// NewApp builds a Firebase app from base64-encoded service account
// credentials. The app is created once at wiring time and passed to the
// components that need it; nothing here is held as package state.
func NewApp(ctx context.Context, encodedCreds, storageBucket string) (*firebase.App, error) {
	creds, err := base64.StdEncoding.DecodeString(encodedCreds)
	if err != nil {
		return nil, fmt.Errorf("failed to decode firebase credentials: %w", err)
	}

	var cfg *firebase.Config
	if storageBucket != "" {
		cfg = &firebase.Config{StorageBucket: storageBucket}
	}

	app, err := firebase.NewApp(ctx, cfg, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	return app, nil
}

package storage

import (
	"context"
	"errors"
	"io"
)

// DisabledUploader stands in when no storage bucket is configured. Every
// upload fails, so submissions with media are rejected instead of silently
// dropping the attachment.
type DisabledUploader struct{}

func (DisabledUploader) Upload(_ context.Context, _, _ string, _ io.Reader) (string, error) {
	return "", errors.New("media storage is not configured")
}

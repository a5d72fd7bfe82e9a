package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
)

// FirebaseUploader stores attachment blobs in the Firebase Storage bucket
// and returns a durable fetchable URL. Upload failures are independent of the
// rest of the submission pipeline; the caller decides whether they are fatal.
type FirebaseUploader struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseUploader(ctx context.Context, app *firebase.App, bucketName string) (*FirebaseUploader, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	var bucket *gcs.BucketHandle
	if bucketName != "" {
		bucket, err = client.Bucket(bucketName)
	} else {
		bucket, err = client.DefaultBucket()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage bucket: %w", err)
	}

	return &FirebaseUploader{bucket: bucket, bucketName: bucketName}, nil
}

// Upload writes the blob under the given key and returns its public URL.
func (u *FirebaseUploader) Upload(ctx context.Context, key, contentType string, data io.Reader) (string, error) {
	w := u.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write media object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize media object: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucketName, escapeKey(key)), nil
}

// escapeKey URL-escapes every path segment of an object key, keeping the
// separators intact.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

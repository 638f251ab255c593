package assets

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GCSStore stores event images as public objects in a Google Cloud Storage
// bucket under the "events/" prefix.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

func (s *GCSStore) Upload(ctx context.Context, payload string) (string, error) {
	if s.client == nil || s.bucket == "" {
		return "", fmt.Errorf("assets: gcs not configured")
	}
	b, contentType, err := DecodeDataURI(payload)
	if err != nil {
		return "", err
	}
	objectPath := "events/" + uuid.NewString() + extByContentType[contentType]

	wc := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := bytes.NewReader(b).WriteTo(wc); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return s.publicURL(objectPath), nil
}

func (s *GCSStore) Destroy(ctx context.Context, url string) error {
	objectPath, ok := s.objectPath(url)
	if !ok {
		return fmt.Errorf("assets: %q is not managed by bucket %s", url, s.bucket)
	}
	return s.client.Bucket(s.bucket).Object(objectPath).Delete(ctx)
}

func (s *GCSStore) IsManaged(url string) bool {
	_, ok := s.objectPath(url)
	return ok
}

func (s *GCSStore) publicURL(objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectPath)
}

func (s *GCSStore) objectPath(url string) (string, bool) {
	if s.bucket == "" {
		return "", false
	}
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucket)
	rest, ok := strings.CutPrefix(url, prefix)
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

var _ Store = (*GCSStore)(nil)

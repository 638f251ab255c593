package assets

import "context"

// Store uploads image payloads to external storage and deletes them by the
// URL it returned. Destroy is best-effort from the caller's point of view:
// during event deletion its failure is logged and swallowed, never surfaced.
type Store interface {
	// Upload decodes a base64 data URI payload and stores it, returning a
	// durable public URL.
	Upload(ctx context.Context, payload string) (string, error)
	// Destroy removes the object behind a URL previously returned by Upload.
	Destroy(ctx context.Context, url string) error
	// IsManaged reports whether the URL points into storage this adapter
	// manages, i.e. whether Destroy can act on it at all.
	IsManaged(url string) bool
}

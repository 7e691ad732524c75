package port

import "context"

// ObjectStorage abstracts object-store access. The refinement pipeline only
// ever reads: given bucket+key it needs a time-limited fetchable URL.
type ObjectStorage interface {
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}

// Package storage provides the content store: addressable blob storage
// keyed by opaque content refs. Callers must only commit a metadata
// reference to a blob after Put has returned, so readers never observe a
// reference to content that is not yet durable.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BlobStore is the minimal content-store contract. Implementations must be
// safe for concurrent use.
type BlobStore interface {
	// Put durably stores data under key. Returning nil means the blob is
	// accepted and readable.
	Put(ctx context.Context, key string, data []byte) error
	// Get returns the blob stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the blob stored under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error
}

// NewContentRef generates a fresh storage key for a new blob. Keys are
// partitioned by upload date so bucket listings stay navigable.
func NewContentRef() string {
	d := time.Now()
	return fmt.Sprintf("accounts/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

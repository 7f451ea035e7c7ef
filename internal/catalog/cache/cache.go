package cache

import (
	"context"
	"errors"
)

// Listings is a cache for catalog listings keyed by endpoint path.
// Values are the raw JSON-encoded listing.
type Listings interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrCacheMiss = errors.New("cache miss")

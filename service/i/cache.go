package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-belief/domain"
)

// RunCache stores finished runs by request digest.
type RunCache interface {
	// Get returns the cached run for key. A miss returns (nil, nil).
	Get(ctx context.Context, key string) (*dmn.Run, error)

	// Set caches run under key.
	Set(ctx context.Context, key string, run *dmn.Run) error

	// Lock serializes work on key across instances. The returned function releases the lock.
	Lock(ctx context.Context, key string) (func(), error)
}

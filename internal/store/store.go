// Package store persists the long-poll update offset across restarts so the
// bot never replays updates it already processed.
package store

import "context"

// OffsetStore holds the next long-poll offset to request.
type OffsetStore interface {
	// LoadOffset returns the persisted offset, or zero when none was saved.
	LoadOffset(ctx context.Context) (int, error)
	// SaveOffset records the offset to request on the next pull.
	SaveOffset(ctx context.Context, offset int) error
	Close() error
}

// Package lock provides mutual exclusion keyed by parcel id.
package lock

import (
	"context"
)

// Release gives the lock back. It is safe to call once.
type Release func(ctx context.Context) error

// Locker serializes work on a key.
type Locker interface {
	// Acquire blocks until the key is owned or ctx is done.
	Acquire(ctx context.Context, key string) (Release, error)
}

// ParcelKey returns the lock key of a parcel.
func ParcelKey(id string) string { return "parcel:" + id }

// Nop never blocks.
type Nop struct{}

// Acquire implements Locker.
func (Nop) Acquire(context.Context, string) (Release, error) {
	return func(context.Context) error { return nil }, nil
}

package ratelimit

import "time"

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// Nop admits every request.
type Nop struct{}

// Allow always returns true.
func (Nop) Allow(string) bool { return true }

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns current time.
func (SystemClock) Now() time.Time { return time.Now() }

package ratelimit

import (
	"sync"
	"time"
)

// Config stores TokenBucket settings.
type Config struct {
	Rate       float64       // tokens per second
	Burst      int           // bucket capacity
	TTL        time.Duration // idle buckets older than this are dropped; 0 keeps them
	MaxBuckets int           // 0 means unbounded
}

// TokenBucket is a per-key token bucket limiter. New keys are refused once MaxBuckets is reached.
type TokenBucket struct {
	cfg   Config
	clock Clock

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	tokens   float64
	refilled time.Time
	seen     time.Time
}

// NewTokenBucket creates a limiter; non-positive Rate and Burst fall back to 1.
func NewTokenBucket(clock Clock, cfg Config) *TokenBucket {
	if clock == nil {
		clock = SystemClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &TokenBucket{cfg: cfg, clock: clock, buckets: make(map[string]*bucket)}
}

// Allow takes one token from the bucket of key.
func (l *TokenBucket) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		if l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets {
			return false
		}
		b = &bucket{tokens: float64(l.cfg.Burst), refilled: now}
		l.buckets[key] = b
	}
	b.seen = now

	if dt := now.Sub(b.refilled); dt > 0 {
		b.tokens = min(b.tokens+dt.Seconds()*l.cfg.Rate, float64(l.cfg.Burst))
		b.refilled = now
	}
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (l *TokenBucket) sweep(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}
	every := max(l.cfg.TTL/2, time.Minute)
	if !l.lastSweep.IsZero() && now.Sub(l.lastSweep) < every {
		return
	}
	l.lastSweep = now
	for k, b := range l.buckets {
		if now.Sub(b.seen) > l.cfg.TTL {
			delete(l.buckets, k)
		}
	}
}

func (l *TokenBucket) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

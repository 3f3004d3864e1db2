package app

import (
	"parcel-service/internal/config"
	"parcel-service/internal/http/middleware/ratelimit"
	"parcel-service/internal/logx"
)

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.Nop{}
	}
	return ratelimit.NewTokenBucket(clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.SystemClock{}
}

func newRateLimitMiddleware(logger logx.Logger, m workflowMetrics, limiter ratelimit.Limiter) *ratelimit.Middleware {
	return ratelimit.New(logger, m.RateLimitExceeded, limiter)
}

package ratelimit

import (
	"time"
)

// Rate defines the rate limit configuration
type Rate struct {
	// Requests is the number of requests allowed in the window
	Requests int
	// Window is the time window for the rate limit
	Window time.Duration
}

// RateLimitInfo contains information about the current rate limit status
type RateLimitInfo struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// RateLimiter defines the interface for rate limiting implementations
type RateLimiter interface {
	// Allow checks if a request is allowed and returns rate limit info
	Allow(key string, limit Rate) (bool, RateLimitInfo)
	// Reset resets the rate limit for a key
	Reset(key string) error
}

// PerMinute builds a one-minute window allowing n requests.
func PerMinute(n int) Rate {
	return Rate{Requests: n, Window: time.Minute}
}

var (
	// PublicAPILimit applies to every route per client IP (60 req/min)
	PublicAPILimit = PerMinute(60)

	// AuthLimit is for authentication endpoints (10 req/min)
	AuthLimit = PerMinute(10)

	// ScanLimit throttles scan submissions per caller (30 req/min)
	ScanLimit = PerMinute(30)
)

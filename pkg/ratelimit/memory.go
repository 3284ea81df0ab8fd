package ratelimit

import (
	"sync"
	"time"
)

// MemoryRateLimiter is a sliding-window limiter held in process memory. It is
// only correct for a single instance and backs the tests.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	now      func() time.Time
	requests map[string][]time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		now:      time.Now,
		requests: make(map[string][]time.Time),
	}
}

func (l *MemoryRateLimiter) Allow(key string, limit Rate) (bool, RateLimitInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-limit.Window)

	kept := l.requests[key][:0]
	for _, at := range l.requests[key] {
		if at.After(windowStart) {
			kept = append(kept, at)
		}
	}

	info := RateLimitInfo{Limit: limit.Requests, Reset: now.Add(limit.Window)}
	if len(kept) > 0 {
		info.Reset = kept[0].Add(limit.Window)
	}

	if len(kept) >= limit.Requests {
		l.requests[key] = kept
		return false, info
	}

	kept = append(kept, now)
	l.requests[key] = kept
	info.Remaining = limit.Requests - len(kept)
	return true, info
}

func (l *MemoryRateLimiter) Reset(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.requests, key)
	return nil
}

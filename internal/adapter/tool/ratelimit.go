package tool

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"fsgate/internal/domain"
)

// RateLimiter implements a sliding-window rate limiter.
// It tracks timestamps of allowed calls and rejects new calls
// when the count within the window exceeds the limit.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	calls  []time.Time
	now    func() time.Time // for testing
}

// NewRateLimiter creates a rate limiter that allows limit calls per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow returns true if a call is allowed under the rate limit, and records it.
// Returns false if the limit has been reached within the current window.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)

	// Trim expired entries.
	n := 0
	for _, t := range r.calls {
		if t.After(cutoff) {
			r.calls[n] = t
			n++
		}
	}
	r.calls = r.calls[:n]

	if len(r.calls) >= r.limit {
		return false
	}

	r.calls = append(r.calls, now)
	return true
}

// RateLimitedTool gates a tool behind a shared rate limiter.
type RateLimitedTool struct {
	inner   domain.Tool
	limiter *RateLimiter
}

// WithRateLimit wraps a tool so that calls over the limit are rejected with
// a rate-limit error result instead of reaching the filesystem.
func WithRateLimit(t domain.Tool, l *RateLimiter) domain.Tool {
	return &RateLimitedTool{inner: t, limiter: l}
}

func (r *RateLimitedTool) Name() string              { return r.inner.Name() }
func (r *RateLimitedTool) Description() string       { return r.inner.Description() }
func (r *RateLimitedTool) Schema() domain.ToolSchema { return r.inner.Schema() }

func (r *RateLimitedTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	if !r.limiter.Allow() {
		return &domain.ToolResult{
			IsError: true,
			Content: domain.NewDomainError(r.inner.Name(), domain.ErrRateLimited, "").Error(),
		}, nil
	}
	return r.inner.Execute(ctx, params)
}

// Package llm holds decorators shared by every LLM provider adapter.
package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.LLMService = (*RateLimited)(nil)

// RateLimited throttles calls to a wrapped LLMService with a token bucket.
// Vision batches of a long scan are sent back to back, which trips
// per-minute quotas on most hosted providers.
type RateLimited struct {
	next    driven.LLMService
	limiter *rate.Limiter
}

// WithRateLimit wraps next so that at most perMinute requests start each
// minute. A non-positive perMinute returns next unchanged.
func WithRateLimit(next driven.LLMService, perMinute int) driven.LLMService {
	if next == nil || perMinute <= 0 {
		return next
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

// Generate waits for a token, then delegates.
func (r *RateLimited) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.next.Generate(ctx, prompt, opts)
}

// Vision waits for a token, then delegates.
func (r *RateLimited) Vision(
	ctx context.Context,
	prompt string,
	images []driven.Image,
	opts driven.GenerateOptions,
) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.next.Vision(ctx, prompt, images, opts)
}

// ModelName returns the wrapped model name.
func (r *RateLimited) ModelName() string {
	return r.next.ModelName()
}

// Ping is not throttled.
func (r *RateLimited) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

// Close closes the wrapped service.
func (r *RateLimited) Close() error {
	return r.next.Close()
}

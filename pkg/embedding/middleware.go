package embedding

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

type dimensionChecked struct {
	next Embedder
	want int
}

// WithDimension rejects vectors whose length differs from want.
func WithDimension(next Embedder, want int) Embedder {
	return &dimensionChecked{next: next, want: want}
}

func (d *dimensionChecked) Name() string { return d.next.Name() }

func (d *dimensionChecked) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := d.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) != d.want {
		return nil, &DimensionError{Want: d.want, Got: len(vec)}
	}
	return vec, nil
}

type rateLimited struct {
	next    Embedder
	limiter *rate.Limiter
}

// WithRateLimit blocks callers so that at most perSecond requests reach next.
// The limiter is shared by every goroutine using the returned Embedder.
func WithRateLimit(next Embedder, perSecond float64, burst int) Embedder {
	if burst < 1 {
		burst = 1
	}
	return &rateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (r *rateLimited) Name() string { return r.next.Name() }

func (r *rateLimited) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}
	return r.next.Embed(ctx, text)
}

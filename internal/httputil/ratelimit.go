// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter is a token-bucket admission gate applied before every outbound
// request. A nil *Limiter performs no limiting, so callers never need to
// branch on whether limiting is configured.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter returns a limiter sustaining perSecond requests with the given
// burst. perSecond <= 0 returns nil (unlimited).
func NewLimiter(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Wait blocks until a request may proceed or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

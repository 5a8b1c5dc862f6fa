// Package ratelimit bounds how many synthesis requests may be issued in any
// rolling time window. Admission is tracked with a sliding log of issuance
// timestamps rather than a refilling bucket, so bursts up to the ceiling are
// allowed but the trailing-window count never exceeds it.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

// ErrInvalidRate indicates a non-positive or non-finite requests-per-second
// ceiling.
var ErrInvalidRate = errors.New("max requests per second must be a positive finite number")

// Limiter admits at most `capacity` issuances within any trailing `window`.
// For ceilings >= 1 the window is one second and the capacity is the integer
// part of the ceiling; fractional ceilings below 1 stretch the window
// instead (0.5/s becomes one request per two seconds). Both shapes keep the
// count of issuances in any rolling second at or below the configured rate.
type Limiter struct {
	mu       sync.Mutex
	issued   []time.Time
	capacity int
	window   time.Duration
}

// New creates a limiter for the given requests-per-second ceiling.
func New(maxPerSecond float64) (*Limiter, error) {
	if maxPerSecond <= 0 || math.IsInf(maxPerSecond, 0) || math.IsNaN(maxPerSecond) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRate, maxPerSecond)
	}

	capacity := int(math.Floor(maxPerSecond))
	window := time.Second

	if capacity < 1 {
		capacity = 1
		window = time.Duration(float64(time.Second) / maxPerSecond)
	}

	return &Limiter{
		issued:   make([]time.Time, 0, capacity),
		capacity: capacity,
		window:   window,
	}, nil
}

// Acquire blocks until issuing one more request keeps the trailing-window
// count within the ceiling, then records the issuance. It returns early with
// the context error if ctx is cancelled while waiting. Safe for concurrent
// use by all workers.
func (l *Limiter) Acquire(ctx context.Context) error {
	for {
		wait, admitted := l.tryAdmit()
		if admitted {
			return nil
		}

		err := sleepContext(ctx, wait)
		if err != nil {
			return fmt.Errorf("rate limiter wait interrupted: %w", err)
		}
	}
}

// tryAdmit records an issuance if capacity is free, otherwise returns how
// long until the oldest issuance leaves the window.
func (l *Limiter) tryAdmit() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.prune(now)

	if len(l.issued) < l.capacity {
		l.issued = append(l.issued, now)

		return 0, true
	}

	wait := l.issued[0].Add(l.window).Sub(now)

	return wait, false
}

// prune drops issuances that have fallen out of the trailing window. The
// log never holds more than `capacity` entries.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)

	keep := 0
	for keep < len(l.issued) && !l.issued[keep].After(cutoff) {
		keep++
	}

	if keep > 0 {
		l.issued = append(l.issued[:0], l.issued[keep:]...)
	}
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

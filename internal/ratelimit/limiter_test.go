package ratelimit

import (
	"context"
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsInvalidRates(t *testing.T) {
	t.Parallel()

	invalidRates := []float64{0, -1, -0.5, math.Inf(1), math.Inf(-1), math.NaN()}

	for _, rate := range invalidRates {
		_, err := New(rate)
		require.Error(t, err, "rate %v should be rejected", rate)
		require.ErrorIs(t, err, ErrInvalidRate)
	}
}

func TestNew_AcceptsFractionalRates(t *testing.T) {
	t.Parallel()

	limiter, err := New(0.5)
	require.NoError(t, err)

	assert.Equal(t, 1, limiter.capacity)
	assert.Equal(t, 2*time.Second, limiter.window)
}

func TestAcquire_AllowsBurstUpToCeiling(t *testing.T) {
	t.Parallel()

	limiter, err := New(5)
	require.NoError(t, err)

	start := time.Now()

	for range 5 {
		require.NoError(t, limiter.Acquire(context.Background()))
	}

	assert.Less(t, time.Since(start), 500*time.Millisecond,
		"a burst up to the ceiling must not block")
}

func TestAcquire_EnforcesMinimumElapsedTime(t *testing.T) {
	t.Parallel()

	// Three acquisitions at one per second require two full waits.
	limiter, err := New(1)
	require.NoError(t, err)

	start := time.Now()

	for range 3 {
		require.NoError(t, limiter.Acquire(context.Background()))
	}

	assert.GreaterOrEqual(t, time.Since(start), 2*time.Second)
}

func TestAcquire_SlidingWindowPropertyUnderConcurrency(t *testing.T) {
	t.Parallel()

	const (
		ceiling      = 20
		totalWorkers = 50
	)

	limiter, err := New(ceiling)
	require.NoError(t, err)

	var (
		mutex      sync.Mutex
		timestamps []time.Time
		waitGroup  sync.WaitGroup
	)

	for range totalWorkers {
		waitGroup.Add(1)

		go func() {
			defer waitGroup.Done()

			acquireErr := limiter.Acquire(context.Background())
			if acquireErr != nil {
				t.Errorf("Acquire failed: %v", acquireErr)

				return
			}

			mutex.Lock()
			timestamps = append(timestamps, time.Now())
			mutex.Unlock()
		}()
	}

	waitGroup.Wait()

	require.Len(t, timestamps, totalWorkers)

	sort.Slice(timestamps, func(i, j int) bool {
		return timestamps[i].Before(timestamps[j])
	})

	// No sliding one-second interval may contain more than `ceiling`
	// issuances. Checking every window anchored at an issuance covers all
	// maximal windows. A small tolerance absorbs the delay between the
	// limiter admitting a caller and the caller recording time.Now().
	const tolerance = 50 * time.Millisecond

	for i := range timestamps {
		count := 0

		for j := i; j < len(timestamps); j++ {
			if timestamps[j].Sub(timestamps[i]) < time.Second-tolerance {
				count++
			}
		}

		assert.LessOrEqual(t, count, ceiling,
			"window starting at issuance %d holds too many requests", i)
	}
}

func TestAcquire_ContextCancellationUnblocksWaiter(t *testing.T) {
	t.Parallel()

	// One request per five seconds, so the second acquisition must wait.
	limiter, err := New(0.2)
	require.NoError(t, err)

	require.NoError(t, limiter.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- limiter.Acquire(ctx)
	}()

	cancel()

	select {
	case acquireErr := <-done:
		require.Error(t, acquireErr)
		require.ErrorIs(t, acquireErr, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Acquire did not return after context cancellation")
	}
}

func TestPrune_DropsOnlyExpiredIssuances(t *testing.T) {
	t.Parallel()

	limiter, err := New(3)
	require.NoError(t, err)

	now := time.Now()
	limiter.issued = []time.Time{
		now.Add(-2 * time.Second),
		now.Add(-1500 * time.Millisecond),
		now.Add(-200 * time.Millisecond),
	}

	limiter.prune(now)

	require.Len(t, limiter.issued, 1)
	assert.Equal(t, now.Add(-200*time.Millisecond), limiter.issued[0])
}

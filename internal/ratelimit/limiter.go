// Package ratelimit implements a sliding-window call limiter.
//
// The window is recomputed on every admission check by pruning timestamps
// older than one minute, rather than being reset on fixed boundaries. Burst
// admission is bounded only by the count check; there is no token smoothing.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Window is the trailing duration over which calls are counted.
const Window = time.Minute

// Error is returned when an admission check is denied. RetryAfter is how
// long the caller must wait before the oldest counted call leaves the window.
type Error struct {
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter.Round(time.Millisecond))
}

// Limiter tracks the timestamps of recently admitted calls for a single
// client instance.
//
// Limiter is safe for concurrent use; the admission check is a
// read-modify-write of the shared timestamp slice and is serialized by a
// mutex.
type Limiter struct {
	mu        sync.Mutex
	calls     []time.Time
	maxPerMin int
	now       func() time.Time
}

// New creates a Limiter admitting at most maxPerMinute calls in any trailing
// one-minute window.
func New(maxPerMinute int) *Limiter {
	return &Limiter{
		maxPerMin: maxPerMinute,
		now:       time.Now,
	}
}

// Admit records the current call attempt if the window has capacity.
//
// On success the call's timestamp joins the window. On rejection it returns
// a *Error carrying the wait until the next slot opens; the attempt itself
// is not recorded.
func (l *Limiter) Admit() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-Window)

	// Prune everything outside the trailing window. The slice is in
	// insertion order, so the survivors are a suffix.
	kept := l.calls[:0]
	for _, t := range l.calls {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.calls = kept

	if len(l.calls) >= l.maxPerMin {
		oldest := l.calls[0]
		return &Error{RetryAfter: Window - now.Sub(oldest)}
	}

	l.calls = append(l.calls, now)
	return nil
}

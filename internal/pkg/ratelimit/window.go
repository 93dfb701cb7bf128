// Package ratelimit implements a sliding-window counter used to bound
// repeated "regenerate" actions. Exceeding the window starts a fixed
// cooldown; when the cooldown elapses the window resets.
package ratelimit

import (
	"sync"
	"time"
)

type Window struct {
	mu            sync.Mutex
	limit         int
	window        time.Duration
	cooldown      time.Duration
	stamps        []time.Time
	cooldownUntil time.Time
	now           func() time.Time
}

type Option func(*Window)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(w *Window) {
		w.now = now
	}
}

func NewWindow(limit int, window, cooldown time.Duration, opts ...Option) *Window {
	w := &Window{
		limit:    limit,
		window:   window,
		cooldown: cooldown,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// TryAcquire records one action if allowed. Returns false while the
// window holds limit timestamps or a cooldown is running.
func (w *Window) TryAcquire() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()

	if !w.cooldownUntil.IsZero() {
		if now.Before(w.cooldownUntil) {
			return false
		}
		// Cooldown elapsed: the window starts fresh.
		w.stamps = w.stamps[:0]
		w.cooldownUntil = time.Time{}
	}

	w.trim(now)

	if len(w.stamps) >= w.limit {
		w.cooldownUntil = now.Add(w.cooldown)
		return false
	}

	w.stamps = append(w.stamps, now)
	return true
}

// CooldownRemaining returns how long until acquisitions are accepted
// again, or zero when no cooldown is running.
func (w *Window) CooldownRemaining() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cooldownUntil.IsZero() {
		return 0
	}

	remaining := w.cooldownUntil.Sub(w.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Remaining reports how many acquisitions the current window still
// accepts.
func (w *Window) Remaining() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if !w.cooldownUntil.IsZero() && now.Before(w.cooldownUntil) {
		return 0
	}

	w.trim(now)
	return w.limit - len(w.stamps)
}

// trim drops timestamps that fell out of the rolling window. Callers
// must hold the lock.
func (w *Window) trim(now time.Time) {
	cutoff := now.Add(-w.window)
	i := 0
	for i < len(w.stamps) && !w.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}

// Package kiosk contains the self-service helpers that sit next to the
// screens: the inactivity timer that sends an abandoned kiosk back to its
// home screen, and the input watchers that keep it from firing while a
// customer is still tapping.
package kiosk

import (
	"context"
	"time"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"go.uber.org/atomic"
)

// IdleTimer counts down from the last observed input. It never navigates by
// itself: on expiry it signals Expired once, and the UI loop applies the
// router's inactivity transition. It re-arms on the next Touch.
type IdleTimer struct {
	timeout time.Duration
	period  time.Duration
	now     func() time.Time
	enabled func() bool

	lastInput *atomic.Time
	fired     *atomic.Bool
	expired   chan struct{}
}

// IdleOption configures an IdleTimer.
type IdleOption func(*IdleTimer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) IdleOption {
	return func(t *IdleTimer) {
		t.now = now
	}
}

// WithCheckPeriod sets how often Run samples the clock.
func WithCheckPeriod(period time.Duration) IdleOption {
	return func(t *IdleTimer) {
		if period > 0 {
			t.period = period
		}
	}
}

// WithEnabled restricts the timer, typically to kiosk mode:
//
//	kiosk.WithEnabled(func() bool { return sess.Mode() == constants.UIModeKiosk })
func WithEnabled(enabled func() bool) IdleOption {
	return func(t *IdleTimer) {
		t.enabled = enabled
	}
}

// NewIdleTimer creates an armed timer. A non-positive timeout uses the default.
func NewIdleTimer(timeout time.Duration, opts ...IdleOption) *IdleTimer {
	if timeout <= 0 {
		timeout = constants.DefaultKioskIdle
	}
	t := &IdleTimer{
		timeout: timeout,
		period:  constants.DefaultIdleCheckPeriod,
		now:     time.Now,
		enabled: func() bool { return true },
		fired:   atomic.NewBool(false),
		expired: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.lastInput = atomic.NewTime(t.now())
	return t
}

// Timeout returns the configured inactivity limit.
func (t *IdleTimer) Timeout() time.Duration {
	return t.timeout
}

// Touch records user input and re-arms the timer. Safe from any goroutine.
func (t *IdleTimer) Touch() {
	t.lastInput.Store(t.now())
	t.fired.Store(false)
}

// Remaining is the time left before expiry, zero once expired.
func (t *IdleTimer) Remaining() time.Duration {
	left := t.timeout - t.now().Sub(t.lastInput.Load())
	return max(left, 0)
}

// Expired delivers one value per expiry.
func (t *IdleTimer) Expired() <-chan struct{} {
	return t.expired
}

// Check fires the timer if the timeout has passed since the last input. It
// reports whether this call fired it. A fired timer stays quiet until the
// next Touch.
func (t *IdleTimer) Check() bool {
	if !t.enabled() {
		return false
	}
	if !t.idle() {
		return false
	}
	if !t.fired.CompareAndSwap(false, true) {
		return false
	}
	// A Touch that landed after idle read lastInput has re-armed the timer.
	if !t.idle() {
		t.fired.Store(false)
		return false
	}

	select {
	case t.expired <- struct{}{}:
	default:
		// The previous expiry has not been consumed yet; one pending signal is enough.
	}
	return true
}

func (t *IdleTimer) idle() bool {
	last := t.lastInput.Load()
	return t.now().Sub(last) >= t.timeout
}

// Run checks the timer periodically until ctx is done.
func (t *IdleTimer) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			t.Check()
		}
	}
}

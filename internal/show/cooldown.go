// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"context"
	"sync"
	"time"
)

// DefaultCooldown is the window the catalog needs to forgive an overload.
const DefaultCooldown = 10 * time.Second

// Cooldown is the single rolling timer shared by one aggregation pass.
//
// # Semantics
//
//   - [Cooldown.Touch] restarts the timer after a success when the window has
//     already elapsed on its own, so no sleep is ever needed for it.
//   - [Cooldown.Wait] sleeps only for what is left of the current window and
//     then restarts the timer.
//
// It is safe for concurrent use. Workers that hit an overload in the same
// window wait for the same deadline, and only the first one to wake restarts
// the timer.
type Cooldown struct {
	window time.Duration
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error

	mu    sync.Mutex
	start time.Time
}

// NewCooldown starts a cooldown timer with the given window.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		window: window,
		now:    time.Now,
		sleep:  sleepContext,
		start:  time.Now(),
	}
}

// Touch restarts the timer if more than the window has elapsed since the last reset.
func (c *Cooldown) Touch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.start) > c.window {
		c.start = now
	}
}

// Remaining returns the time left in the current window. It is never negative.
func (c *Cooldown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingLocked()
}

// Wait suspends until the current window has elapsed, then restarts the timer.
//
// It returns the duration it slept for, or ctx.Err() when the context is
// cancelled before the window elapses.
func (c *Cooldown) Wait(ctx context.Context) (time.Duration, error) {
	c.mu.Lock()
	windowStart := c.start
	remaining := c.remainingLocked()
	c.mu.Unlock()

	if err := c.sleep(ctx, remaining); err != nil {
		return 0, err
	}

	c.mu.Lock()
	if c.start.Equal(windowStart) {
		c.start = c.now()
	}
	c.mu.Unlock()

	return remaining, nil
}

func (c *Cooldown) remainingLocked() time.Duration {
	remaining := c.window - c.now().Sub(c.start)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// sleepContext blocks for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

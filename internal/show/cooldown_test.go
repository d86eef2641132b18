// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when told to; sleeping advances it by the slept duration.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	f.sleeps = append(f.sleeps, d)
	f.mu.Unlock()
	f.Advance(d)
	return nil
}

func newFakeCooldown(window time.Duration) (*Cooldown, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	cooldown := &Cooldown{
		window: window,
		now:    clock.Now,
		sleep:  clock.Sleep,
		start:  clock.Now(),
	}
	return cooldown, clock
}

/*
TestCooldown_WaitsOnlyTheRemainder verifies that an overload mid-window only
waits for what is left of it.
*/
func TestCooldown_WaitsOnlyTheRemainder(t *testing.T) {
	cooldown, clock := newFakeCooldown(10 * time.Second)

	clock.Advance(3 * time.Second)
	waited, err := cooldown.Wait(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, waited)
	assert.Equal(t, []time.Duration{7 * time.Second}, clock.sleeps)

	// The timer restarted when the wait ended.
	assert.Equal(t, 10*time.Second, cooldown.Remaining())
}

/*
TestCooldown_NeverNegative verifies the clamp when a single fetch outlasted the window.
*/
func TestCooldown_NeverNegative(t *testing.T) {
	cooldown, clock := newFakeCooldown(10 * time.Second)

	clock.Advance(25 * time.Second)

	assert.Equal(t, time.Duration(0), cooldown.Remaining())

	waited, err := cooldown.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), waited)
}

/*
TestCooldown_TouchRestartsExpiredWindow verifies the opportunistic restart.
*/
func TestCooldown_TouchRestartsExpiredWindow(t *testing.T) {
	cooldown, clock := newFakeCooldown(10 * time.Second)

	// 1. Inside the window: no restart
	clock.Advance(4 * time.Second)
	cooldown.Touch()
	assert.Equal(t, 6*time.Second, cooldown.Remaining())

	// 2. Past the window: restart without sleeping
	clock.Advance(8 * time.Second)
	cooldown.Touch()
	assert.Equal(t, 10*time.Second, cooldown.Remaining())
	assert.Empty(t, clock.sleeps)
}

/*
TestCooldown_SharedWindow verifies that concurrent waiters of one window sleep
until the same deadline and leave a single fresh window behind.
*/
func TestCooldown_SharedWindow(t *testing.T) {
	cooldown, clock := newFakeCooldown(10 * time.Second)

	release := make(chan struct{})
	slept := make(chan time.Duration, 2)
	cooldown.sleep = func(ctx context.Context, d time.Duration) error {
		slept <- d
		<-release
		return nil
	}

	clock.Advance(3 * time.Second)

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cooldown.Wait(context.Background())
			assert.NoError(t, err)
		}()
	}

	// 1. Both waiters target the same deadline
	assert.Equal(t, 7*time.Second, <-slept)
	assert.Equal(t, 7*time.Second, <-slept)

	// 2. The window elapses and both wake up
	clock.Advance(7 * time.Second)
	close(release)
	wg.Wait()

	assert.Equal(t, 10*time.Second, cooldown.Remaining())
}

/*
TestCooldown_Cancelled verifies that a cancelled context aborts the wait.
*/
func TestCooldown_Cancelled(t *testing.T) {
	cooldown := NewCooldown(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cooldown.Wait(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

/*
TestCooldown_RealSleep verifies the default sleeper against the wall clock.
*/
func TestCooldown_RealSleep(t *testing.T) {
	window := 60 * time.Millisecond
	cooldown := NewCooldown(window)

	start := time.Now()
	_, err := cooldown.Wait(context.Background())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), window-5*time.Millisecond)
}

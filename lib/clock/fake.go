// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance is called; pending After and Sleep calls fire when
// the clock advances past their deadline.
//
// FakeClock is safe for concurrent use.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for testing.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	waiters []*fakeWaiter
}

// fakeWaiter is a pending After or Sleep operation.
type fakeWaiter struct {
	deadline time.Time
	channel  chan time.Time
	fired    bool
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// After returns a channel that receives once the clock advances past
// d from now. If d <= 0, the channel receives immediately.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	channel := make(chan time.Time, 1)
	if d <= 0 {
		channel <- c.current
		return channel
	}
	c.waiters = append(c.waiters, &fakeWaiter{
		deadline: c.current.Add(d),
		channel:  channel,
	})
	return channel
}

// Sleep blocks until the clock advances past d from now. Another
// goroutine must call Advance, or Sleep never returns.
func (c *FakeClock) Sleep(d time.Duration) {
	<-c.After(d)
}

// Advance moves the clock forward by d and fires every waiter whose
// deadline has been reached, in registration order.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.current.Add(d)

	remaining := c.waiters[:0]
	for _, waiter := range c.waiters {
		if waiter.fired {
			continue
		}
		if !waiter.deadline.After(c.current) {
			waiter.channel <- c.current
			waiter.fired = true
			continue
		}
		remaining = append(remaining, waiter)
	}
	c.waiters = remaining
}

// Set jumps the clock to an absolute time. Waiters with deadlines at or
// before the new time fire, same as Advance.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()
	if t.Before(current) {
		panic("clock: Set would move time backwards")
	}
	c.Advance(t.Sub(current))
}

// Package clock drives game callbacks from a host that owns real time.
//
// A FrameClock never starts goroutines. The host (an ebiten Update, a
// terminal ticker, or a test) calls Advance once per frame, and the clock
// runs whatever is due on the caller's goroutine.
package clock

import "time"

// Handle cancels a scheduled callback. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Scheduler schedules recurring timers and next-frame callbacks.
type Scheduler interface {
	// Every calls fn each time interval elapses until cancelled.
	Every(interval time.Duration, fn func()) Handle
	// NextFrame calls fn once on the next frame.
	NextFrame(fn func()) Handle
}

type entry struct {
	fn        func()
	interval  time.Duration
	due       time.Duration
	cancelled bool
}

func (e *entry) Cancel() { e.cancelled = true }

// FrameClock is a manual Scheduler advanced by its host.
type FrameClock struct {
	now    time.Duration
	frame  uint64
	timers []*entry
	frames []*entry
}

// New returns a clock at time zero.
func New() *FrameClock {
	return &FrameClock{}
}

// Now is the total time advanced so far.
func (c *FrameClock) Now() time.Duration { return c.now }

// Frame is the number of completed Advance calls.
func (c *FrameClock) Frame() uint64 { return c.frame }

// Every implements Scheduler. Non-positive intervals are treated as one
// nanosecond so a timer can never spin forever within one Advance.
func (c *FrameClock) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	e := &entry{fn: fn, interval: interval, due: c.now + interval}
	c.timers = append(c.timers, e)
	return e
}

// NextFrame implements Scheduler.
func (c *FrameClock) NextFrame(fn func()) Handle {
	e := &entry{fn: fn}
	c.frames = append(c.frames, e)
	return e
}

// Pending reports live timers and frame callbacks.
func (c *FrameClock) Pending() (timers, frames int) {
	for _, e := range c.timers {
		if !e.cancelled {
			timers++
		}
	}
	for _, e := range c.frames {
		if !e.cancelled {
			frames++
		}
	}
	return timers, frames
}

// Advance moves time forward by dt. Due timers fire first, in the order
// they were created and once per elapsed interval, then the frame
// callbacks registered before this call run. Callbacks registered while
// advancing wait for the next call.
func (c *FrameClock) Advance(dt time.Duration) {
	if dt > 0 {
		c.now += dt
	}

	timers := append([]*entry(nil), c.timers...)
	for _, e := range timers {
		for !e.cancelled && e.due <= c.now {
			e.due += e.interval
			e.fn()
		}
	}
	c.timers = compact(c.timers)

	frames := c.frames
	c.frames = nil
	for _, e := range frames {
		if !e.cancelled {
			e.cancelled = true
			e.fn()
		}
	}
	c.frames = compact(c.frames)
	c.frame++
}

func compact(entries []*entry) []*entry {
	live := entries[:0]
	for _, e := range entries {
		if !e.cancelled {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(entries); i++ {
		entries[i] = nil
	}
	return live
}

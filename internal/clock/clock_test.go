package clock

import (
	"testing"
	"time"
)

func TestEveryFiresOncePerInterval(t *testing.T) {
	c := New()
	calls := 0
	c.Every(5*time.Second, func() { calls++ })

	for i := 0; i < 4; i++ {
		c.Advance(time.Second)
	}
	if calls != 0 {
		t.Fatalf("fired early: %d calls after 4s", calls)
	}

	c.Advance(time.Second)
	if calls != 1 {
		t.Fatalf("expected 1 call at 5s, got %d", calls)
	}

	c.Advance(10 * time.Second)
	if calls != 3 {
		t.Fatalf("expected 3 calls at 15s, got %d", calls)
	}
}

func TestCancelStopsTimer(t *testing.T) {
	c := New()
	calls := 0
	h := c.Every(time.Second, func() { calls++ })

	c.Advance(time.Second)
	h.Cancel()
	h.Cancel()
	c.Advance(5 * time.Second)

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if timers, _ := c.Pending(); timers != 0 {
		t.Errorf("expected no pending timers, got %d", timers)
	}
}

func TestTimerCanCancelItself(t *testing.T) {
	c := New()
	calls := 0
	var h Handle
	h = c.Every(time.Second, func() {
		calls++
		h.Cancel()
	})

	c.Advance(10 * time.Second)
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestNextFrameRunsOnce(t *testing.T) {
	c := New()
	calls := 0
	c.NextFrame(func() { calls++ })

	c.Advance(0)
	c.Advance(0)
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if c.Frame() != 2 {
		t.Errorf("frame = %d, want 2", c.Frame())
	}
}

func TestSelfReschedulingFrameWaitsForNextAdvance(t *testing.T) {
	c := New()
	calls := 0
	var loop func()
	loop = func() {
		calls++
		c.NextFrame(loop)
	}
	c.NextFrame(loop)

	for i := 0; i < 5; i++ {
		c.Advance(16 * time.Millisecond)
	}
	if calls != 5 {
		t.Errorf("expected one call per frame, got %d over 5 frames", calls)
	}
}

func TestCancelledFrameDoesNotRun(t *testing.T) {
	c := New()
	h := c.NextFrame(func() { t.Error("cancelled frame ran") })
	h.Cancel()
	c.Advance(time.Millisecond)

	if _, frames := c.Pending(); frames != 0 {
		t.Errorf("expected no pending frames, got %d", frames)
	}
}

func TestTimersRunBeforeFrames(t *testing.T) {
	c := New()
	var order []string
	c.Every(time.Second, func() { order = append(order, "timer") })
	c.NextFrame(func() { order = append(order, "frame") })

	c.Advance(time.Second)
	if len(order) != 2 || order[0] != "timer" || order[1] != "frame" {
		t.Errorf("order = %v", order)
	}
}

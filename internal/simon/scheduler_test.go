package simon

import (
	"testing"
	"time"
)

func TestManualSchedulerOrder(t *testing.T) {
	s := NewManualScheduler()
	var order []string

	s.Schedule(30*time.Millisecond, func() { order = append(order, "c") })
	s.Schedule(10*time.Millisecond, func() { order = append(order, "a") })
	s.Schedule(10*time.Millisecond, func() { order = append(order, "b") })

	s.Advance(20 * time.Millisecond)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("after 20ms order = %v, expected [a b]", order)
	}
	if s.Now() != 20*time.Millisecond {
		t.Errorf("Now() = %v, expected 20ms", s.Now())
	}

	s.Advance(10 * time.Millisecond)
	if len(order) != 3 || order[2] != "c" {
		t.Errorf("after 30ms order = %v, expected [a b c]", order)
	}
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()
	ran := false

	h := s.Schedule(5*time.Millisecond, func() { ran = true })
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", s.Pending())
	}
	h.Cancel()
	s.Advance(time.Second)

	if ran {
		t.Error("cancelled callback ran")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestManualSchedulerChained(t *testing.T) {
	s := NewManualScheduler()
	count := 0

	var step func()
	step = func() {
		count++
		if count < 5 {
			s.Schedule(10*time.Millisecond, step)
		}
	}
	s.Schedule(10*time.Millisecond, step)

	s.Advance(35 * time.Millisecond)
	if count != 3 {
		t.Errorf("count after 35ms = %d, expected 3", count)
	}

	if ran := s.RunAll(100); ran != 2 {
		t.Errorf("RunAll() ran %d, expected 2", ran)
	}
	if count != 5 {
		t.Errorf("count = %d, expected 5", count)
	}
}

func TestTimerSchedulerPostsCallbacks(t *testing.T) {
	queue := make(chan func(), 4)
	s := NewTimerScheduler(func(fn func()) { queue <- fn })

	done := make(chan struct{})
	s.Schedule(time.Millisecond, func() { close(done) })
	cancelled := s.Schedule(time.Millisecond, func() { t.Error("cancelled callback ran") })
	cancelled.Cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case fn := <-queue:
			fn()
		case <-done:
			return
		case <-deadline:
			t.Fatal("timer callback never ran")
		}
	}
}

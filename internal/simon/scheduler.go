package simon

import (
	"sort"
	"sync"
	"time"
)

// Handle is a pending scheduled callback.
type Handle interface {
	// Cancel prevents the callback from running if it has not run yet.
	Cancel()
}

// Scheduler runs callbacks after a delay. Implementations must run the
// callbacks on the goroutine that owns the Session.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Handle
}

// ManualScheduler is a virtual clock. Nothing runs until Advance is called,
// which makes timer-driven play fully deterministic.
type ManualScheduler struct {
	now     time.Duration
	seq     uint64
	pending []*manualTask
}

type manualTask struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() { t.cancelled = true }

// NewManualScheduler creates a virtual clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule queues fn to run d after the current virtual time.
func (s *ManualScheduler) Schedule(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTask{due: s.now + d, seq: s.seq, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of callbacks still waiting to run.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.pending {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every callback that falls
// due in order. Callbacks scheduled while advancing run too if they fall
// inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		next := s.popDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		next.fn()
	}
	s.now = target
}

// RunAll advances until no callbacks are pending. Periodic callbacks that
// keep rescheduling themselves stop after limit runs.
func (s *ManualScheduler) RunAll(limit int) int {
	ran := 0
	for ran < limit {
		next := s.popDue(-1)
		if next == nil {
			break
		}
		s.now = next.due
		next.fn()
		ran++
	}
	return ran
}

// popDue removes and returns the earliest live task due at or before
// target; a negative target accepts any task.
func (s *ManualScheduler) popDue(target time.Duration) *manualTask {
	live := s.pending[:0]
	for _, t := range s.pending {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.pending = live
	if len(s.pending) == 0 {
		return nil
	}

	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].due != s.pending[j].due {
			return s.pending[i].due < s.pending[j].due
		}
		return s.pending[i].seq < s.pending[j].seq
	})

	first := s.pending[0]
	if target >= 0 && first.due > target {
		return nil
	}
	s.pending = s.pending[1:]
	return first
}

// TimerScheduler schedules with real timers and hands the fired callback to
// post, which must enqueue it on the owning goroutine.
type TimerScheduler struct {
	post func(func())
}

// NewTimerScheduler creates a wall-clock scheduler.
func NewTimerScheduler(post func(func())) *TimerScheduler {
	return &TimerScheduler{post: post}
}

type timerHandle struct {
	mu        sync.Mutex
	timer     *time.Timer
	cancelled bool
}

func (h *timerHandle) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelled = true
	if h.timer != nil {
		h.timer.Stop()
	}
}

func (h *timerHandle) live() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.cancelled
}

// Schedule starts a timer for fn.
func (s *TimerScheduler) Schedule(d time.Duration, fn func()) Handle {
	h := &timerHandle{}
	h.mu.Lock()
	h.timer = time.AfterFunc(d, func() {
		s.post(func() {
			// Cancel may have won the race after the timer fired.
			if h.live() {
				fn()
			}
		})
	})
	h.mu.Unlock()
	return h
}

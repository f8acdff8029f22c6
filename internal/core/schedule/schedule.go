// Package schedule abstracts deferred callbacks so the timer and the
// trigger engine can be driven by wall-clock time in the app and by a
// manual clock in tests.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback
	// already ran or was stopped before.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(delay time.Duration, callback func()) Timer
	Now() time.Time
}

// Real schedules callbacks with time.AfterFunc.
type Real struct{}

// AfterFunc implements Scheduler.
func (Real) AfterFunc(delay time.Duration, callback func()) Timer {
	return time.AfterFunc(delay, callback)
}

// Now implements Scheduler.
func (Real) Now() time.Time {
	return time.Now()
}

// Manual is a Scheduler whose clock only moves on Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	owner *Manual
	at    time.Time
	seq   uint64
	run   func()
	done  bool
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now implements Scheduler.
func (manual *Manual) Now() time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

// AfterFunc implements Scheduler.
func (manual *Manual) AfterFunc(delay time.Duration, callback func()) Timer {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	if delay < 0 {
		delay = 0
	}
	manual.seq++
	timer := &manualTimer{
		owner: manual,
		at:    manual.now.Add(delay),
		seq:   manual.seq,
		run:   callback,
	}
	manual.pending = append(manual.pending, timer)
	return timer
}

// Advance moves the clock forward by delta, running every callback that
// comes due in deadline order. Callbacks scheduled while advancing run too
// if they fall inside the window.
func (manual *Manual) Advance(delta time.Duration) {
	manual.mu.Lock()
	target := manual.now.Add(delta)
	manual.mu.Unlock()

	for {
		manual.mu.Lock()
		next := manual.popDueLocked(target)
		if next == nil {
			manual.now = target
			manual.mu.Unlock()
			return
		}
		manual.now = next.at
		manual.mu.Unlock()

		next.run()
	}
}

// Pending returns the number of callbacks waiting to run.
func (manual *Manual) Pending() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return len(manual.pending)
}

func (manual *Manual) popDueLocked(target time.Time) *manualTimer {
	if len(manual.pending) == 0 {
		return nil
	}
	sort.SliceStable(manual.pending, func(i, j int) bool {
		left, right := manual.pending[i], manual.pending[j]
		if left.at.Equal(right.at) {
			return left.seq < right.seq
		}
		return left.at.Before(right.at)
	})
	next := manual.pending[0]
	if next.at.After(target) {
		return nil
	}
	manual.pending = manual.pending[1:]
	next.done = true
	return next
}

func (timer *manualTimer) Stop() bool {
	manual := timer.owner
	manual.mu.Lock()
	defer manual.mu.Unlock()
	if timer.done {
		return false
	}
	timer.done = true
	for i, pending := range manual.pending {
		if pending == timer {
			manual.pending = append(manual.pending[:i], manual.pending[i+1:]...)
			break
		}
	}
	return true
}

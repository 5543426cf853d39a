package watcher

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Close()

	var calls int32
	for i := 0; i < 5; i++ {
		d.Schedule("render", 20*time.Millisecond, func() {
			atomic.AddInt32(&calls, 1)
		})
	}

	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected 1 call after 5 rapid schedules, got %d", got)
	}
}

func TestDebouncerIndependentTokens(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)
	defer d.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	d.Schedule("a", 5*time.Millisecond, wg.Done)
	d.Schedule("b", 5*time.Millisecond, wg.Done)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Callbacks for independent tokens did not both fire")
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Close()

	var calls int32
	d.Schedule("x", 20*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})
	d.Cancel("x")

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("Cancelled callback still fired %d times", got)
	}
	if d.Pending("x") {
		t.Error("Token still pending after Cancel")
	}
}

func TestDebouncerReentrantSchedule(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)
	defer d.Close()

	done := make(chan struct{})
	var once sync.Once
	var fn func()
	var count int32
	fn = func() {
		if atomic.AddInt32(&count, 1) < 3 {
			d.Schedule("loop", 5*time.Millisecond, fn)
			return
		}
		once.Do(func() { close(done) })
	}
	d.Schedule("loop", 5*time.Millisecond, fn)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Re-entrant scheduling deadlocked or stalled")
	}
}

func TestDebouncerCloseRejectsScheduling(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)

	var calls int32
	d.Schedule("x", 50*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})
	d.Close()
	d.Schedule("y", 5*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("Expected no calls after Close, got %d", got)
	}
	if d.Pending("x") {
		t.Error("Token still pending after Close")
	}
}

func TestDebouncerZeroDelayUsesDefault(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)
	defer d.Close()

	done := make(chan struct{})
	d.Schedule("x", 0, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Default-delay callback never fired")
	}
}

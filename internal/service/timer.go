package service

import (
	"context"
	"sync"
	"time"
)

const DefaultFocusTick = time.Second

// MaxFocusMinutes bounds one focus session to a day.
const MaxFocusMinutes = 24 * 60

type TimerState struct {
	RemainingSeconds int  `json:"remainingSeconds"`
	Running          bool `json:"running"`
}

// FocusTimer counts a focus session down, one second per tick. Its goroutine
// is cancelled and joined on Stop, so no tick can fire after Stop returns.
type FocusTimer struct {
	mu        sync.Mutex
	tick      time.Duration
	remaining int
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewFocusTimer(tick time.Duration) *FocusTimer {
	if tick <= 0 {
		tick = DefaultFocusTick
	}
	return &FocusTimer{tick: tick}
}

// Start (re)starts the countdown from seconds. A running countdown is
// replaced.
func (t *FocusTimer) Start(seconds int) TimerState {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	t.mu.Lock()
	prevCancel, prevDone := t.cancel, t.done
	t.remaining = seconds
	t.running = true
	t.cancel = cancel
	t.done = done
	state := t.stateLocked()
	t.mu.Unlock()

	if prevCancel != nil {
		prevCancel()
		<-prevDone
	}
	go t.run(ctx, cancel, done)
	return state
}

func (t *FocusTimer) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	defer close(done)
	defer cancel()
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.done != done {
				t.mu.Unlock()
				return
			}
			t.remaining--
			if t.remaining <= 0 {
				t.remaining = 0
				t.running = false
				t.cancel = nil
				t.done = nil
				t.mu.Unlock()
				return
			}
			t.mu.Unlock()
		}
	}
}

// Stop halts the countdown and waits for its goroutine. The remaining time
// is kept. It reports whether a countdown was running.
func (t *FocusTimer) Stop() bool {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	wasRunning := t.running
	t.running = false
	t.cancel = nil
	t.done = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	return wasRunning
}

func (t *FocusTimer) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *FocusTimer) stateLocked() TimerState {
	return TimerState{
		RemainingSeconds: t.remaining,
		Running:          t.running,
	}
}

package service

import (
	"sync"
	"time"

	"pawquest/internal/models"
)

type timerPhase int

const (
	timerIdle timerPhase = iota
	timerRunning
	timerPaused
	timerExpired
)

// warningFraction is the share of total time at or below which the one-shot
// low-time warning fires (30%)
const warningFractionPercent = 30

// TimerController runs the per-question countdown: Idle -> Running <->
// Paused -> Expired. It ticks once per second while running, fires the
// low-time warning at most once per countdown (re-crossing the threshold
// after AddTime does not re-fire it), and invokes the expiry callback
// exactly once. Callbacks are invoked without the controller lock held, so
// they may call back into the controller or the engine.
type TimerController struct {
	mu           sync.Mutex
	phase        timerPhase
	remaining    int
	total        int
	warned       bool
	onWarning    func(remaining int)
	onExpire     func()
	stop         chan struct{}
	tickInterval time.Duration
}

// NewTimerController creates an idle timer controller
func NewTimerController() *TimerController {
	return &TimerController{tickInterval: time.Second}
}

// Start cancels any prior countdown and begins a new one from the given
// number of seconds. The warning one-shot re-arms on each Start.
func (c *TimerController) Start(seconds int, onWarning func(remaining int), onExpire func()) {
	c.mu.Lock()
	c.cancelLocked()
	c.phase = timerRunning
	c.remaining = seconds
	c.total = seconds
	c.warned = false
	c.onWarning = onWarning
	c.onExpire = onExpire
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go c.run(stop)
}

// Pause suspends the countdown without losing remaining time. It cancels
// the tick source; Resume creates a new one.
func (c *TimerController) Pause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != timerRunning {
		return false
	}
	c.phase = timerPaused
	c.cancelLocked()
	return true
}

// Resume continues a paused countdown
func (c *TimerController) Resume() bool {
	c.mu.Lock()
	if c.phase != timerPaused {
		c.mu.Unlock()
		return false
	}
	c.phase = timerRunning
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go c.run(stop)
	return true
}

// AddTime increases the remaining time. It is only meaningful while Running
// or Paused; no upper bound is enforced here — callers may cap. Adding time
// never re-arms the low-time warning.
func (c *TimerController) AddTime(seconds int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != timerRunning && c.phase != timerPaused {
		return false
	}
	if seconds > 0 {
		c.remaining += seconds
	}
	return true
}

// Stop cancels the countdown and returns the controller to Idle
func (c *TimerController) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.phase = timerIdle
	c.remaining = 0
	c.total = 0
}

// State returns a snapshot of the countdown
func (c *TimerController) State() models.TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.TimerState{
		RemainingSeconds: c.remaining,
		TotalSeconds:     c.total,
		IsActive:         c.phase == timerRunning || c.phase == timerPaused,
		IsPaused:         c.phase == timerPaused,
	}
}

// cancelLocked closes the current tick source. Caller holds the lock.
func (c *TimerController) cancelLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *TimerController) run(stop chan struct{}) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if c.tick() {
				return
			}
		}
	}
}

// tick advances the countdown by one second and returns true once the
// countdown has expired. Callbacks run after the lock is released.
func (c *TimerController) tick() bool {
	c.mu.Lock()
	if c.phase != timerRunning {
		c.mu.Unlock()
		return false
	}

	c.remaining--

	var warnFn func(int)
	var warnAt int
	if !c.warned && c.remaining > 0 && c.remaining*100 <= c.total*warningFractionPercent {
		c.warned = true
		warnFn = c.onWarning
		warnAt = c.remaining
	}

	var expireFn func()
	expired := false
	if c.remaining <= 0 {
		c.remaining = 0
		c.phase = timerExpired
		expireFn = c.onExpire
		expired = true
		c.stop = nil
	}
	c.mu.Unlock()

	if warnFn != nil {
		warnFn(warnAt)
	}
	if expireFn != nil {
		expireFn()
	}
	return expired
}

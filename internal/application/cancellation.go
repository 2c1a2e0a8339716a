package application

import (
	"time"

	"github.com/bnema/ctxplay/internal/ports"
)

// Controller owns every timer scheduled for the active playback session. It is not safe for
// concurrent use; it lives on the same goroutine that runs the scheduler's callbacks.
type Controller struct {
	scheduler ports.Scheduler
	nextID    uint64
	pending   map[uint64]ports.Timer
}

func NewController(scheduler ports.Scheduler) *Controller {
	return &Controller{
		scheduler: scheduler,
		pending:   map[uint64]ports.Timer{},
	}
}

// Track registers timer. The returned release func deregisters it and reports whether the
// timer was still tracked; a timer released by CancelAll reports false.
func (c *Controller) Track(timer ports.Timer) func() bool {
	c.nextID++
	id := c.nextID
	c.pending[id] = timer

	return func() bool {
		if _, ok := c.pending[id]; !ok {
			return false
		}
		delete(c.pending, id)
		return true
	}
}

// Schedule runs fn after delay unless CancelAll happens first.
func (c *Controller) Schedule(delay time.Duration, fn func()) {
	var release func() bool
	timer := c.scheduler.AfterFunc(delay, func() {
		if release == nil || !release() {
			return
		}
		fn()
	})
	release = c.Track(timer)
}

// CancelAll stops every tracked timer once and returns how many were released.
func (c *Controller) CancelAll() int {
	released := len(c.pending)
	for id, timer := range c.pending {
		timer.Stop()
		delete(c.pending, id)
	}
	return released
}

func (c *Controller) Outstanding() int {
	return len(c.pending)
}

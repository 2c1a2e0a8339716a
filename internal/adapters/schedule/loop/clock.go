// Package loop is a single-goroutine timer queue. Time only moves when the owner calls
// Advance, Next, Drain or Run, and every callback runs on that caller's goroutine.
package loop

import (
	"container/heap"
	"context"
	"time"

	"github.com/bnema/ctxplay/internal/ports"
)

// Clock is a virtual clock implementing ports.Clock and ports.Scheduler. It is not safe for
// concurrent use.
type Clock struct {
	now   time.Time
	seq   uint64
	queue timerQueue
	fired int
}

func New(start time.Time) *Clock {
	return &Clock{now: start}
}

var (
	_ ports.Clock     = (*Clock)(nil)
	_ ports.Scheduler = (*Clock)(nil)
)

func (c *Clock) Now() time.Time {
	return c.now
}

func (c *Clock) AfterFunc(delay time.Duration, fn func()) ports.Timer {
	if delay < 0 {
		delay = 0
	}
	c.seq++
	t := &timer{clock: c, due: c.now.Add(delay), seq: c.seq, fn: fn}
	heap.Push(&c.queue, t)
	return t
}

// Pending is the number of timers that have neither fired nor been stopped.
func (c *Clock) Pending() int {
	return c.queue.Len()
}

// Fired is the number of callbacks run so far.
func (c *Clock) Fired() int {
	return c.fired
}

// Next moves the clock to the earliest due timer and runs it. It reports false when nothing
// is pending.
func (c *Clock) Next() bool {
	if c.queue.Len() == 0 {
		return false
	}
	t := heap.Pop(&c.queue).(*timer)
	if t.due.After(c.now) {
		c.now = t.due
	}
	c.fired++
	t.fn()
	return true
}

// Advance runs every timer due within d, including timers scheduled by those callbacks, and
// leaves the clock at now+d.
func (c *Clock) Advance(d time.Duration) {
	deadline := c.now.Add(d)
	for c.queue.Len() > 0 && !c.queue[0].due.After(deadline) {
		c.Next()
	}
	c.now = deadline
}

// Drain runs timers until none remain or limit callbacks have run. It returns the number run.
func (c *Clock) Drain(limit int) int {
	n := 0
	for n < limit && c.Next() {
		n++
	}
	return n
}

// Run paces the queue against real time, sleeping until each timer is due scaled by speed.
// A speed of zero or less runs without sleeping.
func (c *Clock) Run(ctx context.Context, speed float64) error {
	return c.RunWhile(ctx, speed, func() bool { return true })
}

// RunWhile is Run that stops as soon as cond reports false, checked before every timer.
func (c *Clock) RunWhile(ctx context.Context, speed float64, cond func() bool) error {
	for c.queue.Len() > 0 && cond() {
		wait := c.queue[0].due.Sub(c.now)
		if speed > 0 && wait > 0 {
			sleep := time.NewTimer(time.Duration(float64(wait) / speed))
			select {
			case <-ctx.Done():
				sleep.Stop()
				return ctx.Err()
			case <-sleep.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		c.Next()
	}
	return nil
}

type timer struct {
	clock *Clock
	due   time.Time
	seq   uint64
	fn    func()
	index int
}

func (t *timer) Stop() bool {
	if t.index < 0 {
		return false
	}
	heap.Remove(&t.clock.queue, t.index)
	return true
}

// timerQueue orders by due time, then by scheduling order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

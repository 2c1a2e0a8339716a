package application

import (
	"time"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports"
)

type scheduleFunc func(delay time.Duration, fn func())

// sweep highlights units one at a time in rendering order. Highlights accumulate until the
// final hold, then all are cleared together.
type sweep struct {
	renderer ports.Renderer
	timing   domain.Timing
	schedule scheduleFunc
	units    []unit
	base     time.Duration
	visited  int
	onDone   func()
	stopped  bool
}

func newSweep(renderer ports.Renderer, timing domain.Timing, schedule scheduleFunc, units []unit, base time.Duration, onDone func()) *sweep {
	return &sweep{
		renderer: renderer,
		timing:   timing,
		schedule: schedule,
		units:    units,
		base:     base,
		onDone:   onDone,
	}
}

// start runs the first step synchronously. An empty sweep completes before start returns.
func (s *sweep) start() {
	if len(s.units) == 0 {
		s.complete()
		return
	}
	s.step()
}

func (s *sweep) step() {
	if s.stopped {
		return
	}
	if s.visited >= len(s.units) {
		s.schedule(s.timing.SweepHold, s.finish)
		return
	}

	current := s.units[s.visited]
	s.renderer.SetUnitHighlighted(current.handle, true)
	s.visited++

	delay := s.base
	if current.kind == unitAttachment {
		delay = s.timing.AttachmentDelay(current.weight)
	}
	s.schedule(delay, s.step)
}

func (s *sweep) finish() {
	if s.stopped {
		return
	}
	s.clearHighlights()
	s.complete()
}

func (s *sweep) complete() {
	s.stopped = true
	s.onDone()
}

// cancel clears any highlight already applied. The completion callback never runs.
func (s *sweep) cancel() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.clearHighlights()
}

func (s *sweep) clearHighlights() {
	for _, u := range s.units[:s.visited] {
		s.renderer.SetUnitHighlighted(u.handle, false)
	}
}

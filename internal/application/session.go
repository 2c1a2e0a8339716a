package application

import (
	"time"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports"
)

type unitKind int

const (
	unitWord unitKind = iota
	unitAttachment
)

// unit is one rendered word or attachment that a sweep may highlight.
type unit struct {
	handle ports.Handle
	kind   unitKind
	weight float64
}

// SweepRecord describes one completed or in-flight pass over the context.
type SweepRecord struct {
	Message int
	Units   int
}

// Session is the mutable state of one playback run. Only the Sequencer touches it.
type Session struct {
	id        uint64
	runID     string
	startedAt time.Time
	cursor    int
	consumed  float64
	state     domain.PlaybackState
	rendered  []unit
	sweeps    []SweepRecord
}

func newSession(id uint64, runID string, startedAt time.Time) *Session {
	return &Session{
		id:        id,
		runID:     runID,
		startedAt: startedAt,
		state:     domain.StateIdle,
	}
}

func (s *Session) commit(u unit) {
	s.rendered = append(s.rendered, u)
}

// units returns everything rendered so far; later commits do not affect the copy.
func (s *Session) units() []unit {
	return append([]unit(nil), s.rendered...)
}

func (s *Session) consume(weight float64) {
	if weight > 0 {
		s.consumed += weight
	}
}

type Snapshot struct {
	RunID       string
	State       domain.PlaybackState
	Cursor      int
	Messages    int
	Capacity    domain.Capacity
	Units       int
	Sweeps      []SweepRecord
	Outstanding int
	StartedAt   time.Time
}

// UnitVisits is the total number of unit highlights across all sweeps.
func (s Snapshot) UnitVisits() int {
	total := 0
	for _, sweep := range s.Sweeps {
		total += sweep.Units
	}
	return total
}

package application

import (
	"testing"
	"time"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports"
	"github.com/bnema/ctxplay/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSequencerRejectsConfiguration(t *testing.T) {
	t.Parallel()

	negative := domain.DefaultTiming()
	negative.SweepHold = -time.Millisecond

	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr error
	}{
		{name: "zero limit", mutate: func(o *Options) { o.CapacityLimit = 0 }, wantErr: domain.ErrCapacityLimit},
		{name: "negative limit", mutate: func(o *Options) { o.CapacityLimit = -5 }, wantErr: domain.ErrCapacityLimit},
		{name: "negative delay", mutate: func(o *Options) { o.Timing = negative }, wantErr: domain.ErrNegativeDelay},
		{name: "nil scheduler", mutate: func(o *Options) { o.Scheduler = nil }, wantErr: errNilScheduler},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t, domain.Script{})
			opts := Options{
				Scheduler:     h.clock,
				Timing:        domain.DefaultTiming(),
				CapacityLimit: domain.DefaultCapacityLimit,
			}
			tt.mutate(&opts)

			_, err := NewSequencer(opts)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPlaybackEndToEnd(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	h.seq.Start()
	h.clock.Drain(drainLimit)

	snap := h.seq.Snapshot()
	assert.Equal(t, domain.StateFinished, snap.State)
	assert.Equal(t, 6, snap.Cursor)
	assert.InDelta(t, 792, snap.Capacity.Consumed, 1e-6)
	assert.InDelta(t, 79.2, snap.Capacity.Percentage(), 1e-6)
	assert.Equal(t, "79%", snap.Capacity.Label())
	assert.Equal(t, domain.CapacityWarning, snap.Capacity.Level())
	assert.Zero(t, snap.Outstanding)
	assert.Zero(t, h.clock.Pending())
	assert.NotEmpty(t, snap.RunID)

	assert.Equal(t, domain.CapacityWarning, h.renderer.levels[len(h.renderer.levels)-1])
	assert.InDelta(t, 79.2, h.renderer.lastPercentage(), 1e-6)
	assert.Empty(t, h.renderer.highlighted)
	assert.Equal(t, domain.StateFinished, h.renderer.states[len(h.renderer.states)-1])

	largest := map[int]int{}
	for _, sweep := range snap.Sweeps {
		largest[sweep.Message] = max(largest[sweep.Message], sweep.Units)
	}
	assert.Greater(t, largest[2], largest[1])
	assert.Equal(t, len(h.renderer.passes), len(nonEmpty(snap.Sweeps)))
}

func TestCapacityIsMonotonicWhileRunning(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	h.seq.Start()
	h.clock.Drain(drainLimit)

	require.NotEmpty(t, h.renderer.percentages)
	assert.Zero(t, h.renderer.percentages[0])
	for i := 1; i < len(h.renderer.percentages); i++ {
		assert.GreaterOrEqual(t, h.renderer.percentages[i], h.renderer.percentages[i-1])
	}
}

func TestAssistantWeightIsConserved(t *testing.T) {
	t.Parallel()

	weights := []float64{52, 1, 0.3, 100, 7}
	for _, weight := range weights {
		text := "uno dos tres cuatro cinco seis siete"
		h := newHarness(t, mustScript(t, domain.NewMessage(domain.RoleAssistant, text, weight, nil)))
		h.seq.Start()
		h.clock.Drain(drainLimit)

		assert.InDelta(t, weight, h.seq.Snapshot().Capacity.Consumed, 1e-6*7, "weight %v", weight)
	}
}

func TestSweepVisitsEveryRenderedUnitInOrder(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	h.seq.Start()
	h.clock.Drain(drainLimit)

	for i, pass := range h.renderer.passes {
		for j, unit := range pass {
			if j > 0 {
				assert.Greater(t, uint64(unit), uint64(pass[j-1]), "pass %d is out of order", i)
			}
			_, rendered := h.renderer.text[unit]
			assert.True(t, rendered, "pass %d visited a unit that is not rendered", i)
		}
	}

	// The first sweep runs after the first user message and covers its six words only.
	require.NotEmpty(t, h.renderer.passes)
	assert.Len(t, h.renderer.passes[0], 6)
}

func TestUserMessageTimeline(t *testing.T) {
	t.Parallel()

	h := newHarness(t, mustScript(t, domain.NewMessage(domain.RoleUser, "hola", 10,
		&domain.Attachment{Name: "a.pdf", TokenWeight: 10})))

	h.seq.Start()
	assert.Equal(t, domain.StateRevealingUser, h.seq.State())
	assert.InDelta(t, 1, h.renderer.lastPercentage(), 1e-9)

	h.clock.Advance(199 * time.Millisecond)
	assert.Empty(t, h.renderer.passes)

	h.clock.Advance(time.Millisecond)
	assert.Equal(t, domain.StateSweepingContext, h.seq.State())
	require.Len(t, h.renderer.passes, 1)
	assert.Len(t, h.renderer.passes[0], 1)

	// base 3ms after the word, then 10 × 2ms on the attachment, then the hold
	h.clock.Advance(3 * time.Millisecond)
	assert.Len(t, h.renderer.passes[0], 2)

	h.clock.Drain(drainLimit)
	assert.Equal(t, domain.StateFinished, h.seq.State())
	assert.Equal(t, 323*time.Millisecond, h.elapsed())
}

func TestAssistantMessageTimeline(t *testing.T) {
	t.Parallel()

	h := newHarness(t, mustScript(t, domain.NewMessage(domain.RoleAssistant, "uno dos", 10, nil)))

	h.seq.Start()
	// Nothing rendered yet, so the first sweep is empty and the first word appears at once.
	assert.Equal(t, []string{"uno"}, words(h.renderer))
	assert.InDelta(t, 0.5, h.renderer.lastPercentage(), 1e-9)

	h.clock.Drain(drainLimit)

	snap := h.seq.Snapshot()
	assert.Equal(t, domain.StateFinished, snap.State)
	assert.Equal(t, []SweepRecord{{Message: 0, Units: 0}, {Message: 0, Units: 1}}, snap.Sweeps)
	assert.Equal(t, 1, snap.UnitVisits())
	// 40 word delay, 8 sweep step, 100 hold, 40 word delay, 600 pause
	assert.Equal(t, 788*time.Millisecond, h.elapsed())
}

func TestEmptyScriptFinishesImmediately(t *testing.T) {
	t.Parallel()

	h := newHarness(t, domain.Script{})
	h.seq.Start()

	snap := h.seq.Snapshot()
	assert.Equal(t, domain.StateFinished, snap.State)
	assert.Empty(t, snap.Sweeps)
	assert.Zero(t, h.clock.Pending())
	assert.Zero(t, snap.Capacity.Consumed)
}

func TestOnePendingResumptionWhileRunning(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	h.seq.Start()

	for h.seq.State().Running() {
		require.Equal(t, 1, h.seq.Snapshot().Outstanding)
		require.Equal(t, 1, h.clock.Pending())
		require.True(t, h.clock.Next())
	}
	assert.Equal(t, domain.StateFinished, h.seq.State())
}

func TestCancelMidFinalMessage(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	h.seq.Start()

	for {
		require.True(t, h.clock.Next(), "playback finished before the final message streamed")
		snap := h.seq.Snapshot()
		if snap.Cursor == 5 && snap.Capacity.Consumed > 740+1e-9 {
			break
		}
	}

	h.seq.Cancel()
	cancelled := h.seq.Snapshot()
	calls := h.renderer.calls

	assert.Equal(t, domain.StateCancelled, cancelled.State)
	assert.Greater(t, cancelled.Capacity.Consumed, 740.0)
	assert.Less(t, cancelled.Capacity.Consumed, 792.0)
	assert.Zero(t, cancelled.Outstanding)
	assert.Empty(t, h.renderer.highlighted)

	h.clock.Drain(drainLimit)

	assert.Zero(t, h.clock.Pending())
	assert.Equal(t, calls, h.renderer.calls)
	assert.Equal(t, cancelled.Capacity, h.seq.Snapshot().Capacity)
}

func TestCancelAtEveryStepLeavesNothingBehind(t *testing.T) {
	t.Parallel()

	probe := newHarness(t, demoScript(t))
	probe.seq.Start()
	steps := probe.clock.Drain(drainLimit)
	require.Greater(t, steps, 100)

	for _, at := range []int{0, 1, 2, 7, 30, steps / 3, steps / 2, steps - 2, steps - 1} {
		h := newHarness(t, demoScript(t))
		h.seq.Start()
		for i := 0; i < at; i++ {
			require.True(t, h.clock.Next())
		}

		h.seq.Cancel()
		before := h.seq.Snapshot()
		calls := h.renderer.calls

		h.clock.Drain(drainLimit)

		assert.Zero(t, h.clock.Pending(), "step %d", at)
		assert.Zero(t, h.seq.Snapshot().Outstanding, "step %d", at)
		assert.Equal(t, calls, h.renderer.calls, "step %d", at)
		assert.Equal(t, before, h.seq.Snapshot(), "step %d", at)
		assert.Empty(t, h.renderer.highlighted, "step %d", at)
	}
}

func TestCancelOutsideRunIsNoop(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	h.seq.Cancel()
	assert.Equal(t, domain.StateIdle, h.seq.State())

	h.seq.Start()
	h.clock.Drain(drainLimit)
	h.seq.Cancel()
	assert.Equal(t, domain.StateFinished, h.seq.State())
}

func TestRestartIsIdempotent(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	h.seq.Start()
	h.clock.Drain(drainLimit)
	first := h.seq.Snapshot()
	firstBlocks := len(h.renderer.blocks)

	h.seq.Start()
	h.clock.Drain(drainLimit)
	second := h.seq.Snapshot()

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.State, second.State)
	assert.Equal(t, first.Capacity, second.Capacity)
	assert.Equal(t, first.Units, second.Units)
	assert.Equal(t, first.Sweeps, second.Sweeps)
	assert.Equal(t, 2*firstBlocks, len(h.renderer.blocks))
	assert.Equal(t, 2, h.renderer.clears)
}

func TestRestartAfterCancelStartsFresh(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	h.seq.Start()
	h.clock.Drain(40)
	h.seq.Cancel()

	h.seq.Start()
	snap := h.seq.Snapshot()
	assert.Equal(t, domain.StateRevealingUser, snap.State)
	assert.Zero(t, snap.Cursor)
	assert.InDelta(t, 22, snap.Capacity.Consumed, 1e-9)
	assert.Equal(t, 1, snap.Outstanding)

	h.clock.Drain(drainLimit)
	assert.InDelta(t, 792, h.seq.Snapshot().Capacity.Consumed, 1e-6)
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	h.seq.Start()
	h.clock.Drain(25)
	before := h.seq.Snapshot()
	clears := h.renderer.clears

	h.seq.Start()

	assert.Equal(t, before, h.seq.Snapshot())
	assert.Equal(t, clears, h.renderer.clears)
	assert.Equal(t, 1, h.clock.Pending())
}

func TestResetReturnsToIdle(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	h.seq.Start()
	h.clock.Drain(60)

	h.seq.Reset()
	h.seq.Reset()

	snap := h.seq.Snapshot()
	assert.Equal(t, domain.StateIdle, snap.State)
	assert.Zero(t, snap.Capacity.Consumed)
	assert.Zero(t, snap.Units)
	assert.Zero(t, snap.Outstanding)
	assert.Zero(t, h.clock.Pending())
	assert.Zero(t, h.renderer.lastPercentage())
	assert.Equal(t, domain.CapacityNormal, h.renderer.levels[len(h.renderer.levels)-1])
	assert.Equal(t, domain.StateIdle, h.renderer.states[len(h.renderer.states)-1])
}

func TestNilRendererDegrades(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	seq, err := NewSequencer(Options{
		Script:        demoScript(t),
		Scheduler:     h.clock,
		Clock:         h.clock,
		Timing:        domain.DefaultTiming(),
		CapacityLimit: domain.DefaultCapacityLimit,
	})
	require.NoError(t, err)

	seq.Start()
	h.clock.Drain(drainLimit)
	assert.Equal(t, domain.StateFinished, seq.State())
	assert.InDelta(t, 792, seq.Snapshot().Capacity.Consumed, 1e-6)
}

func TestAdvanceHandler(t *testing.T) {
	t.Parallel()

	nav := mocks.NewMockNavigationPort(t)
	var handler ports.AdvanceHandler
	nav.EXPECT().Register(mock.Anything).Run(func(h ports.AdvanceHandler) { handler = h }).Once()

	h := newHarness(t, demoScript(t))
	seq, err := NewSequencer(Options{
		Script:        demoScript(t),
		Renderer:      h.renderer,
		Scheduler:     h.clock,
		Clock:         h.clock,
		Navigation:    nav,
		Timing:        domain.DefaultTiming(),
		CapacityLimit: domain.DefaultCapacityLimit,
	})
	require.NoError(t, err)
	require.NotNil(t, handler)

	assert.False(t, handler(), "idle: start and stay")
	assert.Equal(t, domain.StateRevealingUser, seq.State())

	assert.True(t, handler(), "running: move on")

	seq.Cancel()
	assert.False(t, handler(), "cancelled: restart and stay")
	assert.True(t, seq.State().Running())

	h.clock.Drain(drainLimit)
	assert.True(t, handler(), "finished: move on")
	assert.Equal(t, domain.StateFinished, seq.State())

	nav.EXPECT().Clear().Once()
	seq.Start()
	seq.Close()
	assert.Zero(t, h.clock.Pending())
	assert.Equal(t, domain.StateCancelled, seq.State())
}

func TestCloseWhileRunning(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	h.seq.Start()
	h.clock.Drain(10)
	require.True(t, h.seq.State().Running())
	consumed := h.seq.Snapshot().Capacity.Consumed

	h.seq.Close()

	snap := h.seq.Snapshot()
	assert.Equal(t, domain.StateCancelled, snap.State)
	assert.False(t, snap.State.Running())
	assert.Zero(t, snap.Outstanding)
	assert.Zero(t, h.clock.Pending())
	assert.InDelta(t, consumed, snap.Capacity.Consumed, 1e-9)

	h.seq.Start()
	snap = h.seq.Snapshot()
	assert.Equal(t, domain.StateRevealingUser, snap.State)
	assert.Zero(t, snap.Cursor)
	assert.InDelta(t, 22, snap.Capacity.Consumed, 1e-9)
	assert.Equal(t, 1, h.clock.Pending())

	h.clock.Drain(drainLimit)
	assert.Equal(t, domain.StateFinished, h.seq.State())
	assert.InDelta(t, 792, h.seq.Snapshot().Capacity.Consumed, 1e-6)
}

func TestCloseOutsideRunKeepsState(t *testing.T) {
	t.Parallel()

	h := newHarness(t, demoScript(t))
	h.seq.Close()
	assert.Equal(t, domain.StateIdle, h.seq.State())

	h.seq.Start()
	h.clock.Drain(drainLimit)
	h.seq.Close()
	assert.Equal(t, domain.StateFinished, h.seq.State())
}

func nonEmpty(sweeps []SweepRecord) []SweepRecord {
	var out []SweepRecord
	for _, s := range sweeps {
		if s.Units > 0 {
			out = append(out, s)
		}
	}
	return out
}

func words(r *recorder) []string {
	var out []string
	for h := ports.Handle(1); h <= r.last; h++ {
		if w, ok := r.text[h]; ok {
			out = append(out, w)
		}
	}
	return out
}

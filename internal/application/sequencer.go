package application

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports"
	"github.com/google/uuid"
)

var errNilScheduler = errors.New("scheduler is nil")

type Options struct {
	Script        domain.Script
	Renderer      ports.Renderer
	Scheduler     ports.Scheduler
	Clock         ports.Clock
	Navigation    ports.NavigationPort
	Timing        domain.Timing
	CapacityLimit float64
	Logger        *slog.Logger
}

// Sequencer replays a Script through a Renderer. All methods must be called from the
// goroutine that runs the scheduler's callbacks.
type Sequencer struct {
	script     domain.Script
	renderer   ports.Renderer
	controller *Controller
	clock      ports.Clock
	nav        ports.NavigationPort
	timing     domain.Timing
	limit      float64
	logger     *slog.Logger

	lastID  uint64
	session *Session
	sweep   *sweep
}

func NewSequencer(opts Options) (*Sequencer, error) {
	if opts.Scheduler == nil {
		return nil, errNilScheduler
	}
	if err := domain.ValidateCapacityLimit(opts.CapacityLimit); err != nil {
		return nil, err
	}
	if err := opts.Timing.Validate(); err != nil {
		return nil, fmt.Errorf("validate timing: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	renderer := opts.Renderer
	if renderer == nil {
		logger.Warn("renderer missing, playback output is discarded")
		renderer = discardRenderer{}
	}

	clock := opts.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	q := &Sequencer{
		script:     opts.Script,
		renderer:   renderer,
		controller: NewController(opts.Scheduler),
		clock:      clock,
		nav:        opts.Navigation,
		timing:     opts.Timing,
		limit:      opts.CapacityLimit,
		logger:     logger,
	}
	q.session = newSession(0, "", time.Time{})

	if q.nav != nil {
		q.nav.Register(q.handleAdvance)
	} else {
		logger.Debug("navigation port missing, advance signals are not intercepted")
	}

	return q, nil
}

// Start begins playback from the first message. It is a no-op while a session is running;
// from Finished or Cancelled it resets first.
func (q *Sequencer) Start() {
	if q.session.state.Running() {
		q.logger.Debug("start ignored, playback already running", "run_id", q.session.runID)
		return
	}

	q.Reset()

	q.lastID++
	q.session = newSession(q.lastID, uuid.NewString(), q.clock.Now())
	q.logger.Info("playback started", "run_id", q.session.runID, "messages", q.script.Len())

	q.advance()
}

// Cancel stops a running session in place: rendered content and consumed capacity stay,
// pending work is released.
func (q *Sequencer) Cancel() {
	if !q.session.state.Running() {
		return
	}

	released := q.halt()
	q.setState(domain.StateCancelled)
	q.logger.Info("playback cancelled",
		"run_id", q.session.runID,
		"cursor", q.session.cursor,
		"capacity", q.capacity().Label(),
		"released", released,
	)
}

// Reset releases all pending work, clears the rendered conversation and returns to Idle.
func (q *Sequencer) Reset() {
	released := q.halt()
	previous := q.session
	q.session = newSession(0, "", time.Time{})

	q.renderer.Clear()
	q.pushCapacity()
	q.renderer.SetPlaybackState(domain.StateIdle)

	if previous.id != 0 {
		q.logger.Debug("playback reset", "run_id", previous.runID, "released", released)
	}
}

// Close detaches the sequencer from the host. A running session is cancelled first, so
// the sequencer never rests in a transient state without a pending resumption.
func (q *Sequencer) Close() {
	q.Cancel()
	if q.nav != nil {
		q.nav.Clear()
	}
	q.halt()
}

func (q *Sequencer) State() domain.PlaybackState {
	return q.session.state
}

func (q *Sequencer) Snapshot() Snapshot {
	s := q.session
	return Snapshot{
		RunID:       s.runID,
		State:       s.state,
		Cursor:      s.cursor,
		Messages:    q.script.Len(),
		Capacity:    q.capacity(),
		Units:       len(s.rendered),
		Sweeps:      append([]SweepRecord(nil), s.sweeps...),
		Outstanding: q.controller.Outstanding(),
		StartedAt:   s.startedAt,
	}
}

// handleAdvance is registered with the navigation port: the first advance starts playback
// and keeps the host in place, later ones let it move on.
func (q *Sequencer) handleAdvance() bool {
	state := q.session.state
	if state != domain.StateFinished && !state.Running() {
		q.Start()
		return false
	}
	return true
}

func (q *Sequencer) advance() {
	if q.session.cursor >= q.script.Len() {
		q.finish()
		return
	}

	message := q.script.At(q.session.cursor)
	switch message.Role {
	case domain.RoleUser:
		q.revealUser(message)
	case domain.RoleAssistant:
		q.streamAssistant(message)
	default:
		panic(fmt.Sprintf("message %d: %v %q", q.session.cursor+1, domain.ErrUnknownRole, message.Role))
	}
}

func (q *Sequencer) revealUser(message domain.Message) {
	q.setState(domain.StateRevealingUser)

	block := q.renderer.AppendMessageBlock(message.Role, message.Attachment)
	for _, word := range message.Content {
		q.session.commit(unit{handle: q.renderer.AppendWordUnit(block, word), kind: unitWord})
	}
	if message.Attachment != nil {
		h := q.renderer.AppendAttachmentIndicator(block, message.Attachment.Name, message.Attachment.TokenWeight)
		q.session.commit(unit{handle: h, kind: unitAttachment, weight: message.Attachment.TokenWeight})
	}
	q.renderer.ScrollToLatest()
	q.consume(message.TokenWeight)

	base := q.timing.SweepStep
	if message.Attachment != nil {
		base = q.timing.SweepStepWithAttachment
	}

	q.after(q.timing.UserPause, func() {
		q.setState(domain.StateSweepingContext)
		q.runSweep(base, q.nextMessage)
	})
}

func (q *Sequencer) streamAssistant(message domain.Message) {
	q.setState(domain.StateStreamingAssistant)

	block := q.renderer.AppendMessageBlock(message.Role, nil)
	q.renderer.ScrollToLatest()

	streamer := newWordStreamer(q, block, message, func() {
		q.session.cursor++
		q.after(q.timing.AssistantPause, q.advance)
	})
	streamer.next()
}

func (q *Sequencer) nextMessage() {
	q.session.cursor++
	q.advance()
}

func (q *Sequencer) finish() {
	q.setState(domain.StateFinished)
	q.logger.Info("playback finished",
		"run_id", q.session.runID,
		"capacity", q.capacity().Label(),
		"level", string(q.capacity().Level()),
		"sweeps", len(q.session.sweeps),
		"elapsed", q.clock.Now().Sub(q.session.startedAt),
	)
}

func (q *Sequencer) runSweep(base time.Duration, onDone func()) {
	units := q.session.units()
	q.session.sweeps = append(q.session.sweeps, SweepRecord{Message: q.session.cursor, Units: len(units)})

	current := newSweep(q.renderer, q.timing, q.after, units, base, nil)
	current.onDone = func() {
		if q.sweep == current {
			q.sweep = nil
		}
		onDone()
	}
	q.sweep = current
	current.start()
}

// after schedules fn for the current session only. A callback that fires once the session
// has been replaced or stopped does nothing.
func (q *Sequencer) after(delay time.Duration, fn func()) {
	session := q.session
	q.controller.Schedule(delay, func() {
		if q.session != session || !session.state.Running() {
			return
		}
		fn()
	})
}

func (q *Sequencer) halt() int {
	if q.sweep != nil {
		q.sweep.cancel()
		q.sweep = nil
	}
	return q.controller.CancelAll()
}

func (q *Sequencer) consume(weight float64) {
	q.session.consume(weight)
	q.pushCapacity()
}

func (q *Sequencer) capacity() domain.Capacity {
	return domain.Capacity{Consumed: q.session.consumed, Limit: q.limit}
}

func (q *Sequencer) pushCapacity() {
	c := q.capacity()
	q.renderer.SetCapacityIndicator(c.Percentage(), c.Level())
}

func (q *Sequencer) setState(state domain.PlaybackState) {
	q.session.state = state
	q.renderer.SetPlaybackState(state)
}

type discardRenderer struct{}

func (discardRenderer) Clear() {}

func (discardRenderer) AppendMessageBlock(domain.Role, *domain.Attachment) ports.Handle {
	return 0
}

func (discardRenderer) AppendAttachmentIndicator(ports.Handle, string, float64) ports.Handle {
	return 0
}

func (discardRenderer) AppendWordUnit(ports.Handle, string) ports.Handle {
	return 0
}

func (discardRenderer) SetUnitHighlighted(ports.Handle, bool) {}

func (discardRenderer) SetCapacityIndicator(float64, domain.CapacityLevel) {}

func (discardRenderer) SetPlaybackState(domain.PlaybackState) {}

func (discardRenderer) ScrollToLatest() {}

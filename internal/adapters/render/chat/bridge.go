package chat

import (
	"time"

	"github.com/bnema/ctxplay/internal/ports"
	tea "github.com/charmbracelet/bubbletea"
)

// firedMsg delivers a due timer back to Update, so every sequencer callback runs on the
// bubbletea goroutine.
type firedMsg struct {
	timer *bridgeTimer
}

// Bridge implements ports.Scheduler on top of tea.Cmd. Timers created during Update are
// collected and handed to the runtime by Flush.
type Bridge struct {
	speed  float64
	queued []*bridgeTimer
}

var _ ports.Scheduler = (*Bridge)(nil)

// NewBridge scales every delay by 1/speed. A speed of zero or less fires timers as soon as
// the runtime schedules them.
func NewBridge(speed float64) *Bridge {
	return &Bridge{speed: speed}
}

func (b *Bridge) AfterFunc(delay time.Duration, fn func()) ports.Timer {
	t := &bridgeTimer{fn: fn, stop: make(chan struct{})}
	if b.speed > 0 {
		t.timer = time.NewTimer(time.Duration(float64(delay) / b.speed))
	}
	b.queued = append(b.queued, t)
	return t
}

// Flush returns a command that waits on every timer created since the last Flush.
func (b *Bridge) Flush() tea.Cmd {
	if len(b.queued) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(b.queued))
	for _, t := range b.queued {
		cmds = append(cmds, t.wait)
	}
	b.queued = nil
	return tea.Batch(cmds...)
}

// Handle runs the callback of a fired timer unless it was stopped in the meantime.
func (b *Bridge) Handle(msg firedMsg) {
	t := msg.timer
	if t.done {
		return
	}
	t.done = true
	t.fn()
}

type bridgeTimer struct {
	timer *time.Timer
	stop  chan struct{}
	fn    func()
	done  bool
}

func (t *bridgeTimer) wait() tea.Msg {
	if t.timer == nil {
		select {
		case <-t.stop:
			return nil
		default:
			return firedMsg{timer: t}
		}
	}

	select {
	case <-t.stop:
		return nil
	case <-t.timer.C:
		return firedMsg{timer: t}
	}
}

func (t *bridgeTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	if t.timer != nil {
		t.timer.Stop()
	}
	close(t.stop)
	return true
}

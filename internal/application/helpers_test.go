package application

import (
	"testing"
	"time"

	"github.com/bnema/ctxplay/internal/adapters/schedule/loop"
	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

const drainLimit = 1_000_000

// recorder is a Renderer that remembers every call, so tests can check what the sequencer
// drew and when.
type recorder struct {
	last        ports.Handle
	text        map[ports.Handle]string
	highlighted map[ports.Handle]bool
	passes      [][]ports.Handle
	percentages []float64
	levels      []domain.CapacityLevel
	states      []domain.PlaybackState
	blocks      []domain.Role
	clears      int
	scrolls     int
	calls       int
}

func newRecorder() *recorder {
	return &recorder{
		text:        map[ports.Handle]string{},
		highlighted: map[ports.Handle]bool{},
	}
}

func (r *recorder) Clear() {
	r.calls++
	r.clears++
	r.highlighted = map[ports.Handle]bool{}
}

func (r *recorder) AppendMessageBlock(role domain.Role, _ *domain.Attachment) ports.Handle {
	r.calls++
	r.blocks = append(r.blocks, role)
	r.last++
	return r.last
}

func (r *recorder) AppendAttachmentIndicator(_ ports.Handle, name string, _ float64) ports.Handle {
	r.calls++
	r.last++
	r.text[r.last] = name
	return r.last
}

func (r *recorder) AppendWordUnit(_ ports.Handle, word string) ports.Handle {
	r.calls++
	r.last++
	r.text[r.last] = word
	return r.last
}

// SetUnitHighlighted groups highlights into passes: a highlight on a clean slate starts one.
func (r *recorder) SetUnitHighlighted(unit ports.Handle, highlighted bool) {
	r.calls++
	if !highlighted {
		delete(r.highlighted, unit)
		return
	}
	if len(r.highlighted) == 0 {
		r.passes = append(r.passes, nil)
	}
	r.highlighted[unit] = true
	r.passes[len(r.passes)-1] = append(r.passes[len(r.passes)-1], unit)
}

func (r *recorder) SetCapacityIndicator(percentage float64, level domain.CapacityLevel) {
	r.calls++
	r.percentages = append(r.percentages, percentage)
	r.levels = append(r.levels, level)
}

func (r *recorder) SetPlaybackState(state domain.PlaybackState) {
	r.calls++
	r.states = append(r.states, state)
}

func (r *recorder) ScrollToLatest() {
	r.calls++
	r.scrolls++
}

func (r *recorder) lastPercentage() float64 {
	if len(r.percentages) == 0 {
		return 0
	}
	return r.percentages[len(r.percentages)-1]
}

// demoScript has the weights of the built-in conversation with shorter texts.
func demoScript(t *testing.T) domain.Script {
	t.Helper()

	script, err := domain.NewScript(
		domain.NewMessage(domain.RoleUser, "Hola, necesito ayuda con un informe", 22, nil),
		domain.NewMessage(domain.RoleAssistant, "Claro, dime qué necesitas y lo preparamos juntos", 58, nil),
		domain.NewMessage(domain.RoleUser, "Analiza este registro de accesos del edificio", 600,
			&domain.Attachment{Name: "registros_acceso_edificio.pdf", TokenWeight: 580}),
		domain.NewMessage(domain.RoleAssistant, "He revisado el registro y hay tres accesos fuera de horario", 48, nil),
		domain.NewMessage(domain.RoleUser, "Resume los tres en una frase", 12, nil),
		domain.NewMessage(domain.RoleAssistant, "Tres accesos nocturnos sin autorización registrados esta semana", 52, nil),
	)
	require.NoError(t, err)
	return script
}

func mustScript(t *testing.T, messages ...domain.Message) domain.Script {
	t.Helper()

	script, err := domain.NewScript(messages...)
	require.NoError(t, err)
	return script
}

type harness struct {
	seq      *Sequencer
	clock    *loop.Clock
	renderer *recorder
}

func newHarness(t *testing.T, script domain.Script) harness {
	t.Helper()

	clock := loop.New(epoch)
	renderer := newRecorder()
	seq, err := NewSequencer(Options{
		Script:        script,
		Renderer:      renderer,
		Scheduler:     clock,
		Clock:         clock,
		Timing:        domain.DefaultTiming(),
		CapacityLimit: domain.DefaultCapacityLimit,
	})
	require.NoError(t, err)

	return harness{seq: seq, clock: clock, renderer: renderer}
}

func (h harness) elapsed() time.Duration {
	return h.clock.Now().Sub(epoch)
}

func mockAnyContext() interface{} {
	return mock.Anything
}

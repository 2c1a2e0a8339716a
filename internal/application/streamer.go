package application

import (
	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports"
)

// wordStreamer reveals an assistant message word by word. Every word is preceded by a sweep
// over the whole context, including the words of this message already revealed.
type wordStreamer struct {
	host      *Sequencer
	block     ports.Handle
	words     []string
	increment float64
	index     int
	onDone    func()
}

func newWordStreamer(host *Sequencer, block ports.Handle, message domain.Message, onDone func()) *wordStreamer {
	return &wordStreamer{
		host:      host,
		block:     block,
		words:     message.Content,
		increment: message.WeightPerWord(),
		onDone:    onDone,
	}
}

func (w *wordStreamer) next() {
	if w.index >= len(w.words) {
		w.onDone()
		return
	}
	w.host.runSweep(w.host.timing.SweepStep, w.reveal)
}

func (w *wordStreamer) reveal() {
	h := w.host.renderer.AppendWordUnit(w.block, w.words[w.index])
	w.host.session.commit(unit{handle: h, kind: unitWord})
	w.host.consume(w.increment)
	w.index++
	w.host.renderer.ScrollToLatest()

	w.host.after(w.host.timing.WordDelay, w.next)
}

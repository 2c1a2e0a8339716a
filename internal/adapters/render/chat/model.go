// Package chat is the interactive terminal surface for playback: the conversation in a
// scrollable viewport, the context bar underneath, and key bindings for the sequencer.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/ctxplay/internal/adapters/nav"
	"github.com/bnema/ctxplay/internal/adapters/render/transcript"
	"github.com/bnema/ctxplay/internal/application"
	"github.com/bnema/ctxplay/internal/ports"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedModel = errors.New("unexpected final bubbletea model type")

// Factory builds the sequencer against the surfaces owned by the model.
type Factory func(renderer ports.Renderer, scheduler ports.Scheduler, navigation ports.NavigationPort) (*application.Sequencer, error)

type Options struct {
	Title        string
	NewSequencer Factory
	AutoStart    bool
	// Speed scales playback; 1 is real time.
	Speed float64
}

type startMsg struct{}

type Model struct {
	title      string
	transcript *transcript.Transcript
	bridge     *Bridge
	nav        *nav.Interaction
	seq        *application.Sequencer

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	styles   styles

	autoStart bool
	ready     bool
	quitting  bool
	revision  int
	scrolls   int
	width     int
	height    int
}

func NewModel(opts Options) (Model, error) {
	if opts.NewSequencer == nil {
		return Model{}, errors.New("sequencer factory is nil")
	}

	m := Model{
		title:      opts.Title,
		transcript: transcript.New(),
		bridge:     NewBridge(opts.Speed),
		nav:        nav.NewInteraction(),
		keys:       newKeyMap(),
		help:       help.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:     newStyles(),
		autoStart:  opts.AutoStart,
		revision:   -1,
	}

	seq, err := opts.NewSequencer(m.transcript, m.bridge, m.nav)
	if err != nil {
		return Model{}, fmt.Errorf("build sequencer: %w", err)
	}
	m.seq = seq

	return m, nil
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.autoStart {
		cmds = append(cmds, func() tea.Msg { return startMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case firedMsg:
		m.bridge.Handle(msg)
	case startMsg:
		m.seq.Start()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.sync()
	cmds = append(cmds, m.bridge.Flush())
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Start):
		m.seq.Start()
	case key.Matches(msg, m.keys.Cancel):
		m.seq.Cancel()
	case key.Matches(msg, m.keys.Reset):
		m.seq.Reset()
	case key.Matches(msg, m.keys.Advance):
		if m.nav.Advance() {
			return m.quit()
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.sync()
		return m, tea.Batch(cmd, m.bridge.Flush())
	}

	m.sync()
	return m, m.bridge.Flush()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.seq.Close()
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	if !m.ready {
		m.viewport = viewport.New(width, 1)
		m.ready = true
	}
	m.viewport.Width = width
	m.layout()
	m.revision = -1
}

// layout gives the viewport whatever the header, status and help lines leave.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	helpLines := 1
	if m.help.ShowAll {
		for _, column := range m.keys.FullHelp() {
			helpLines = max(helpLines, len(column))
		}
	}
	m.viewport.Height = max(m.height-2-helpLines, 1)
}

// sync redraws the viewport when the transcript changed and follows scroll requests.
func (m *Model) sync() {
	m.keys.Start.SetHelp("s", startLabel(m.seq.State()))
	if !m.ready {
		return
	}

	if rev := m.transcript.Revision(); rev != m.revision {
		m.viewport.SetContent(renderTranscript(m.transcript.Snapshot(), m.width, m.styles))
		m.revision = rev
	}
	if scrolls := m.transcript.ScrollRequests(); scrolls != m.scrolls {
		m.viewport.GotoBottom()
		m.scrolls = scrolls
	}
}

// Snapshot reports the sequencer state, for callers that inspect the final model.
func (m Model) Snapshot() application.Snapshot {
	return m.seq.Snapshot()
}

func (m Model) Transcript() transcript.View {
	return m.transcript.Snapshot()
}

// Run plays the conversation in the terminal until the user quits or ctx is done.
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) (Model, error) {
	m, err := NewModel(opts)
	if err != nil {
		return Model{}, err
	}

	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, programOpts...)
	finalModel, err := tea.NewProgram(m, programOpts...).Run()
	m.seq.Close()
	if err != nil {
		return Model{}, fmt.Errorf("run chat: %w", err)
	}

	final, ok := finalModel.(Model)
	if !ok {
		return Model{}, ErrUnexpectedModel
	}

	return final, nil
}

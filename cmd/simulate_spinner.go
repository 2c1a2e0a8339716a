package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/ctxplay/internal/application"
	"github.com/bnema/ctxplay/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// playbackProgress is what the spinner line shows about a paced run.
type playbackProgress struct {
	State    domain.PlaybackState
	Message  int
	Messages int
	Capacity domain.Capacity
}

func progressOf(snapshot application.Snapshot) playbackProgress {
	message := min(snapshot.Cursor+1, snapshot.Messages)
	return playbackProgress{
		State:    snapshot.State,
		Message:  message,
		Messages: snapshot.Messages,
		Capacity: snapshot.Capacity,
	}
}

type playbackProgressMsg playbackProgress

type playbackDoneMsg struct {
	err error
}

type playbackSpinnerModel struct {
	spinner  spinner.Model
	label    string
	play     tea.Cmd
	progress *playbackProgress
	levels   map[domain.CapacityLevel]lipgloss.Style
	detail   lipgloss.Style
	err      error
	done     bool
}

func newPlaybackSpinnerModel(label string, play tea.Cmd) playbackSpinnerModel {
	return playbackSpinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("141"))),
		),
		label: label,
		play:  play,
		levels: map[domain.CapacityLevel]lipgloss.Style{
			domain.CapacityNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
			domain.CapacityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			domain.CapacityFull:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		},
		detail: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (m playbackSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.play)
}

func (m playbackSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case playbackProgressMsg:
		progress := playbackProgress(msg)
		m.progress = &progress
		return m, nil
	case playbackDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m playbackSpinnerModel) View() string {
	if m.done {
		return ""
	}

	line := m.spinner.View() + " " + m.label
	if m.progress == nil {
		return line
	}

	p := m.progress
	level := p.Capacity.Level()
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		line,
		m.detail.Render(fmt.Sprintf("  message %d/%d  %s  ", p.Message, p.Messages, p.State.Label())),
		m.levels[level].Render(fmt.Sprintf("%s %s", p.Capacity.Label(), level)),
	)
}

// runPlaybackSpinner shows a spinner on output while play runs. play owns the sequencer for
// the whole run and reports through its callback whenever the visible progress changes.
func runPlaybackSpinner(ctx context.Context, output io.Writer, label string, play func(context.Context, func(playbackProgress)) error) error {
	var p *tea.Program
	report := func(progress playbackProgress) {
		p.Send(playbackProgressMsg(progress))
	}
	playCmd := func() tea.Msg {
		return playbackDoneMsg{err: play(ctx, report)}
	}

	p = tea.NewProgram(
		newPlaybackSpinnerModel(label, playCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(playbackSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

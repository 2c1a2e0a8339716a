package chat

import (
	"github.com/bnema/ctxplay/internal/domain"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Start   key.Binding
	Cancel  key.Binding
	Reset   key.Binding
	Advance key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Cancel:  key.NewBinding(key.WithKeys("c", "esc"), key.WithHelp("c", "cancel")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Advance: key.NewBinding(key.WithKeys(" ", "enter", "right"), key.WithHelp("space", "next")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Cancel, k.Advance, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Cancel, k.Reset, k.Advance},
		{k.Up, k.Down, k.Help, k.Quit},
	}
}

// startLabel follows the playback state: start, playing, then restart.
func startLabel(state domain.PlaybackState) string {
	switch {
	case state.Running():
		return "playing…"
	case state == domain.StateFinished || state == domain.StateCancelled:
		return "restart"
	default:
		return "start"
	}
}

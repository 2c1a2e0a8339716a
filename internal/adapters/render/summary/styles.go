package summary

import (
	"github.com/bnema/ctxplay/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	role       map[domain.Role]lipgloss.Style
	word       lipgloss.Style
	attachment lipgloss.Style
	detail     lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	barBracket lipgloss.Style
	barEmpty   lipgloss.Style
	level      map[domain.CapacityLevel]lipgloss.Style
	state      map[domain.PlaybackState]lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true),
		header: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		role: map[domain.Role]lipgloss.Style{
			domain.RoleUser:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
			domain.RoleAssistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141")),
		},
		word:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		attachment: lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		level: map[domain.CapacityLevel]lipgloss.Style{
			domain.CapacityNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
			domain.CapacityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			domain.CapacityFull:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		},
		state: map[domain.PlaybackState]lipgloss.Style{
			domain.StateFinished:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
			domain.StateCancelled: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		},
	}
}

func (s styles) forLevel(level domain.CapacityLevel) lipgloss.Style {
	if style, ok := s.level[level]; ok {
		return style
	}
	return s.detail
}

func (s styles) forState(state domain.PlaybackState) lipgloss.Style {
	if style, ok := s.state[state]; ok {
		return style
	}
	return s.detail
}

func (s styles) forRole(role domain.Role) lipgloss.Style {
	if style, ok := s.role[role]; ok {
		return style
	}
	return s.detail
}

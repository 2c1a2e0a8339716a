package chat

import (
	"github.com/bnema/ctxplay/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title       lipgloss.Style
	role        map[domain.Role]lipgloss.Style
	bubble      map[domain.Role]lipgloss.Style
	word        lipgloss.Style
	highlighted lipgloss.Style
	fresh       lipgloss.Style
	attachment  lipgloss.Style
	attachLit   lipgloss.Style
	status      lipgloss.Style
	barBracket  lipgloss.Style
	barEmpty    lipgloss.Style
	level       map[domain.CapacityLevel]lipgloss.Style
	empty       lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		role: map[domain.Role]lipgloss.Style{
			domain.RoleUser:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
			domain.RoleAssistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141")),
		},
		bubble: map[domain.Role]lipgloss.Style{
			domain.RoleUser: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1),
			domain.RoleAssistant: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("141")).Padding(0, 1),
		},
		word:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		highlighted: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("220")),
		fresh:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("120")),
		attachment:  lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		attachLit:   lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("180")),
		status:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		level: map[domain.CapacityLevel]lipgloss.Style{
			domain.CapacityNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
			domain.CapacityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			domain.CapacityFull:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		},
		empty: lipgloss.NewStyle().Faint(true),
	}
}

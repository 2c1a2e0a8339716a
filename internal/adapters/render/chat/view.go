package chat

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/ctxplay/internal/adapters/render/transcript"
	"github.com/bnema/ctxplay/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 30

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading…"
	}

	view := m.transcript.Snapshot()
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header(view.State),
		m.viewport.View(),
		m.statusLine(view),
		m.help.View(m.keys),
	)
}

func (m Model) header(state domain.PlaybackState) string {
	title := m.title
	if title == "" {
		title = "Context playback"
	}
	line := m.styles.title.Render(title) + "  " + m.styles.status.Render(state.Label())
	if state.Running() {
		line += " " + m.spinner.View()
	}
	return line
}

func (m Model) statusLine(view transcript.View) string {
	style, ok := m.styles.level[view.Level]
	if !ok {
		style = m.styles.status
	}

	filled := int(math.Round(barWidth * min(max(view.Percentage, 0), 100) / 100))
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.styles.status.Render("context "),
		m.styles.barBracket.Render("["),
		style.Render(strings.Repeat("█", filled)),
		m.styles.barEmpty.Render(strings.Repeat("░", barWidth-filled)),
		m.styles.barBracket.Render("]"),
		" ",
		style.Render(view.Capacity()),
	)
}

func renderTranscript(view transcript.View, width int, s styles) string {
	if len(view.Blocks) == 0 {
		return s.empty.Render("Press s to start the conversation.")
	}

	inner := max(width-4, 10)
	bubbles := make([]string, 0, len(view.Blocks))
	for _, block := range view.Blocks {
		bubbles = append(bubbles, renderBubble(block, inner, s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, bubbles...)
}

func renderBubble(block transcript.Block, width int, s styles) string {
	words := make([]string, 0, len(block.Units))
	var attachment string
	for _, u := range block.Units {
		if u.Attachment {
			style := s.attachment
			if u.Highlighted {
				style = s.attachLit
			}
			attachment = style.Render(fmt.Sprintf("📎 %s (%g tokens)", u.Text, u.Weight))
			continue
		}
		style := s.word
		switch {
		case u.Highlighted:
			style = s.highlighted
		case u.Fresh:
			style = s.fresh
		}
		words = append(words, style.Render(u.Text))
	}

	roleStyle, ok := s.role[block.Role]
	if !ok {
		roleStyle = s.status
	}
	parts := []string{
		roleStyle.Render(block.Role.Label()),
		lipgloss.NewStyle().Width(width).Render(strings.Join(words, " ")),
	}
	if attachment != "" {
		parts = append(parts, attachment)
	}

	bubble, ok := s.bubble[block.Role]
	if !ok {
		bubble = lipgloss.NewStyle()
	}
	return bubble.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

package summary

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/ctxplay/internal/adapters/render/transcript"
	"github.com/bnema/ctxplay/internal/application"
	"github.com/bnema/ctxplay/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 24

type Report struct {
	Title      string
	Source     string
	RunID      string
	State      domain.PlaybackState
	Capacity   domain.Capacity
	Sweeps     int
	UnitVisits int
	Elapsed    time.Duration
	Transcript transcript.View
}

type RenderOptions struct {
	// BarWidth defaults to 24 cells.
	BarWidth       int
	ShowTranscript bool
}

type Outline struct {
	Title   string
	Source  string
	Limit   float64
	Entries []application.OutlineEntry
}

func renderReport(report Report, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(titleOrDefault(report.Title)),
		s.header.Render(fmt.Sprintf("script: %s", report.Source)),
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.detail.Render("state: "),
			s.forState(report.State).Render(string(report.State)),
		),
		capacityLine(report.Capacity, opts.BarWidth, s),
		s.detail.Render(fmt.Sprintf("sweeps: %d  unit visits: %d  elapsed: %s", report.Sweeps, report.UnitVisits, report.Elapsed)),
	}
	if report.RunID != "" {
		lines = append(lines, s.header.Render("run: "+report.RunID))
	}

	if !opts.ShowTranscript {
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	if len(report.Transcript.Blocks) == 0 {
		lines = append(lines, s.section.Render(s.empty.Render("Nothing was rendered.")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, block := range report.Transcript.Blocks {
		lines = append(lines, s.section.Render(renderBlock(block, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderBlock(block transcript.Block, s styles) string {
	parts := []string{s.forRole(block.Role).Render(block.Role.Label())}
	if words := block.Words(); words != "" {
		parts = append(parts, s.word.Render(words))
	}
	if att, ok := block.Attachment(); ok {
		parts = append(parts, s.attachment.Render(fmt.Sprintf("[%s] (%g tokens)", att.Text, att.Weight)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderOutline(outline Outline, s styles) string {
	lines := []string{
		s.title.Render(titleOrDefault(outline.Title)),
		s.header.Render(fmt.Sprintf("script: %s  messages: %d  limit: %g", outline.Source, len(outline.Entries), outline.Limit)),
	}

	if len(outline.Entries) == 0 {
		lines = append(lines, s.empty.Render("The script has no messages."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, entry := range outline.Entries {
		head := fmt.Sprintf("%d. %s", entry.Index, entry.Role.Label())
		meta := fmt.Sprintf("words: %d  tokens: %g  total: %g", entry.Words, entry.Weight, entry.Cumulative)
		if entry.Attachment != nil {
			meta += "  " + s.attachment.Render(fmt.Sprintf("[%s] (%g tokens)", entry.Attachment.Name, entry.Attachment.TokenWeight))
		}

		lines = append(lines, s.section.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			s.forRole(entry.Role).Render(head),
			s.detail.Render(meta),
			capacityLine(entry.Capacity, 0, s),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func capacityLine(c domain.Capacity, width int, s styles) string {
	level := c.Level()
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.detail.Render("context: "),
		renderProgressBar(c.Percentage(), width, level, s),
		" ",
		s.forLevel(level).Render(fmt.Sprintf("%s %s", c.Label(), level)),
	)
}

// renderProgressBar fills from the left as the context window fills up.
func renderProgressBar(percentage float64, width int, level domain.CapacityLevel, s styles) string {
	if width <= 0 {
		width = defaultBarWidth
	}

	filled := int(math.Round(float64(width) * clampPercent(percentage) / 100))
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.forLevel(level).Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func titleOrDefault(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Context playback"
	}
	return title
}

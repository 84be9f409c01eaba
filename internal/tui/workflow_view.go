package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/lunch-roulette/internal/workflow"
)

var (
	labelStyleReady   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	labelStyleBlocked = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	labelStyleRunning = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	labelStyleGate    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	labelStyleSkipped = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	labelStyleDefault = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	detailTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

// renderTimeline draws the three workflow steps as one row each:
// a status glyph, the step label, a status badge and the step message.
func renderTimeline(steps []workflow.Step, width int) string {
	lines := make([]string, 0, len(steps))
	for i, step := range steps {
		style := labelStyleForStatus(step.Status)
		line := fmt.Sprintf("%s %d. %s %s",
			style.Render(statusGlyph(step.Status)),
			i+1,
			labelStyleDefault.Render(step.Label),
			style.Render("["+step.Status.Label()+"]"),
		)
		if msg := strings.TrimSpace(step.Message); msg != "" {
			line += " " + detailTextStyle.Render(msg)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().Width(max(minColumnWidth, width)).Render(strings.Join(lines, "\n"))
}

func labelStyleForStatus(status workflow.Status) lipgloss.Style {
	switch status {
	case workflow.StatusDone:
		return labelStyleReady
	case workflow.StatusError:
		return labelStyleBlocked
	case workflow.StatusActive:
		return labelStyleRunning
	case workflow.StatusPending:
		return labelStyleSkipped
	default:
		return labelStyleDefault
	}
}

func statusGlyph(status workflow.Status) string {
	switch status {
	case workflow.StatusDone:
		return "●"
	case workflow.StatusError:
		return "✕"
	case workflow.StatusActive:
		return "◐"
	default:
		return "○"
	}
}

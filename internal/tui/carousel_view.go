package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dishStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F7B801")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F7B801")).
			Padding(0, 3)
	spinningDishStyle = dishStyle.
				Foreground(lipgloss.Color("#999999")).
				BorderForeground(lipgloss.Color("#444444"))
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
)

// renderRoulette shows the dish (or the spinning decoy) and, after a draw,
// the candidate carousel.
func (a *App) renderRoulette(width int) string {
	sel := a.coord.Selection()
	var dish string
	switch {
	case a.coord.Spinning():
		label := sel.Display
		if label == "" {
			label = "..."
		}
		dish = spinningDishStyle.Render("🎲 " + label)
	case sel.Final != "":
		dish = dishStyle.Render("🍽  " + sel.Final)
	default:
		dish = labelStyleSkipped.Render("space를 눌러 오늘의 메뉴를 뽑아 보세요.")
	}
	sections := []string{dish}
	if sel.SearchURL != "" {
		sections = append(sections, "", a.renderCarousel(width))
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderCarousel(width int) string {
	c := a.coord.Carousel()
	candidate, ok := c.Current()
	if !ok {
		return ""
	}
	dots := make([]string, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if i == c.Active() {
			dots = append(dots, labelStyleRunning.Render("●"))
		} else {
			dots = append(dots, labelStyleSkipped.Render("○"))
		}
	}
	body := strings.Join([]string{
		labelStyleGate.Render(candidate.Title),
		labelStyleDefault.Render(candidate.Description),
		detailTextStyle.Render(candidate.URL),
	}, "\n")
	card := cardStyle.Width(max(minColumnWidth, width-2)).Render(body)
	footer := fmt.Sprintf("%s  %s", strings.Join(dots, " "), detailTextStyle.Render("enter 열기 · y 복사 · ←/→ 이동"))
	return lipgloss.JoinVertical(lipgloss.Left, card, footer)
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/skyward/internal/core"
	"github.com/vovakirdan/skyward/internal/games/skyward"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	dialogStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var body string
	switch {
	case m.game.Phase() == skyward.PhaseLoading:
		body = m.place(m.loadingView())
	case m.dialog:
		body = m.place(m.dialogView())
	case m.help.ShowAll:
		body = m.place(dialogStyle.Render(titleStyle.Render("Keys") + "\n\n" + m.help.View(m.keyMapper.Keys())))
	default:
		m.game.Render(m.screen)
		body = RenderScreen(m.screen)
	}
	return body + "\n" + m.statusLine()
}

// place centres content in the game area.
func (m Model) place(content string) string {
	return lipgloss.Place(m.width, m.screen.Height(), lipgloss.Center, lipgloss.Center, content)
}

func (m Model) loadingView() string {
	return dialogStyle.Render(
		titleStyle.Render("SKYWARD") + "\n\n" +
			mutedStyle.Render("Loading your profile...") + "\n\n" +
			m.progress.ViewAs(m.loadProgress),
	)
}

func (m Model) dialogView() string {
	policy := m.svc.Redeemer.Policy()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Redeem " + policy.RewardLabel))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Balance: " + humanize.Comma(int64(m.ledger.Balance())) +
		"  |  Cost: " + humanize.Comma(int64(policy.Threshold))))
	b.WriteString("\n\n")
	b.WriteString("Phone: ")
	b.WriteString(m.phone.View())
	b.WriteString("\n\n")
	switch {
	case m.redeeming:
		b.WriteString(mutedStyle.Render("Sending request..."))
	case m.dialogErr != "":
		b.WriteString(errorStyle.Render(m.dialogErr))
	default:
		b.WriteString(mutedStyle.Render("enter send  esc cancel"))
	}
	return dialogStyle.Render(b.String())
}

// statusLine shows the current notice, or the short help.
func (m Model) statusLine() string {
	if m.notice != nil {
		style := okStyle
		if m.notice.isErr {
			style = errorStyle
		}
		return style.Render(m.notice.text) + mutedStyle.Render("  (esc)")
	}
	return m.help.View(m.keyMapper.Keys())
}

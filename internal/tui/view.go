package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"curriculumstudio/internal/studio"
)

var (
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89B3C"))
	eyebrowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A6D3B")).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sectionStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#C89B3C")).Padding(1, 2)
	cardBaseStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(22)

	cardStyles = map[studio.CardStatus]lipgloss.Style{
		studio.CardComplete: cardBaseStyle.BorderForeground(lipgloss.Color("#8A6D3B")),
		studio.CardActive:   cardBaseStyle.BorderForeground(lipgloss.Color("#C89B3C")).Bold(true),
		studio.CardIdle:     cardBaseStyle.BorderForeground(lipgloss.Color("8")).Faint(true),
	}
)

func (m Model) View() string {
	if m.state.IsFullPageMode {
		return m.fullPageView()
	}

	var sb strings.Builder
	sb.WriteString(eyebrowStyle.Render("CURRICULUM STUDIO"))
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Design a rigorous curriculum with an academic pipeline."))
	sb.WriteString("\n\n")

	button := "[enter] Generate"
	if m.state.IsLoading {
		button = m.spinner.View() + " Generating..."
	}
	sb.WriteString(sectionStyle.Render(strings.Join([]string{
		titleStyle.Render("Topic input"),
		subtleStyle.Render("What academic focus should the program center on?"),
		m.topic.View(),
		button,
	}, "\n")))
	sb.WriteString("\n\n")

	sb.WriteString(titleStyle.Render("Research Orchestration"))
	sb.WriteString("  ")
	sb.WriteString(subtleStyle.Render(m.state.Stage.Message()))
	sb.WriteString("\n")
	sb.WriteString(m.stageCards())
	sb.WriteString("\n")
	sb.WriteString(m.progress.ViewAs(m.state.Stage.Progress() / 100))
	sb.WriteString("\n\n")

	sb.WriteString(titleStyle.Render("Generated curriculum"))
	sb.WriteString("\n")
	if m.state.Error != "" {
		sb.WriteString(errorStyle.Render(m.state.Error))
		sb.WriteString("\n")
	}
	sb.WriteString(m.output())
	sb.WriteString("\n")

	if m.state.IsAdminOpen {
		sb.WriteString("\n")
		sb.WriteString(modalStyle.Render(strings.Join([]string{
			titleStyle.Render("Admin Access"),
			"Enter the secret code to enable full page mode.",
			m.admin.View(),
			subtleStyle.Render("[enter] Unlock  [esc] Cancel"),
		}, "\n")))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(subtleStyle.Render("ctrl+a: admin  ctrl+c: quit"))
	return sb.String()
}

func (m Model) stageCards() string {
	cards := make([]string, 0, len(studio.Stages))
	for i, info := range studio.Stages {
		status := m.state.Stage.CardStatus(i)
		body := fmt.Sprintf("%s  %s\n%s", accentStyle.Render(info.Stage.String()), info.Label, subtleStyle.Render(info.Description))
		cards = append(cards, cardStyles[status].Render(body))
	}
	if m.width < 4*26 {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) output() string {
	switch {
	case m.state.Curriculum != "":
		return sectionStyle.Render(m.state.Curriculum)
	case m.state.IsLoading:
		return subtleStyle.Render("Generating curriculum...")
	default:
		return subtleStyle.Render("Enter a topic and press Generate to see the outline here.")
	}
}

func (m Model) fullPageView() string {
	return modalStyle.Render(strings.Join([]string{
		eyebrowStyle.Render("ADMIN EXPERIENCE"),
		titleStyle.Render("Full Page Curriculum Console"),
		"You are now in the immersive view. This mode showcases the full pipeline experience.",
		"",
		subtleStyle.Render("[esc] Exit full page mode"),
	}, "\n"))
}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/connecthub/engagement"
)

var (
	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	interactionStyle = lipgloss.NewStyle().
				PaddingLeft(2)
)

func (m Model) renderDetailView() string {
	if m.selected == nil {
		return ""
	}
	c := m.selected
	summary := engagement.Summarize(m.detail, m.now())

	var s strings.Builder
	s.WriteString(subtleStyle.Render("← Back to Contacts (esc)"))
	s.WriteString("\n\n")

	s.WriteString(titleStyle.Render(c.Name))
	s.WriteString("\n")
	for _, line := range []string{c.Role, c.Company, c.Email} {
		if line != "" {
			s.WriteString(line)
			s.WriteString("\n")
		}
	}

	if len(c.Tags) > 0 {
		for _, tag := range c.Tags {
			s.WriteString(tagStyle.Render(tag))
		}
		s.WriteString("\n")
	}
	s.WriteString("\n")

	lastContact := "Never"
	if summary.DaysSince != nil {
		lastContact = strconv.Itoa(*summary.DaysSince) + "d ago"
	}
	s.WriteString(statValueStyle.Render(strconv.Itoa(summary.Count)))
	s.WriteString(" Interactions • Last contact: ")
	s.WriteString(lastContact)
	s.WriteString(" ")
	s.WriteString(badgeStyle(summary.Tier).Render(summary.BadgeLabel()))
	s.WriteString("\n\n")

	s.WriteString(titleStyle.Render("Interaction History"))
	s.WriteString("\n")
	s.WriteString(m.renderInteractionLog())

	if m.status != "" {
		s.WriteString("\n")
		s.WriteString(statusStyle.Render(m.status))
	}

	s.WriteString("\n")
	s.WriteString(m.renderDetailHelp())
	return s.String()
}

func (m Model) renderInteractionLog() string {
	if m.detailLoading && len(m.detail) == 0 {
		return subtleStyle.Render("Loading interactions...")
	}
	if len(m.detail) == 0 {
		return "No interactions recorded yet\n" + subtleStyle.Render("Start by logging your first conversation")
	}

	var s strings.Builder
	for i, in := range m.detail {
		marker := "  "
		if i == m.detailCursor {
			marker = cursorStyle.Render("> ")
		}

		header := fmt.Sprintf("%s %s • %s", in.Type.Glyph(), in.Type.Label(), in.Date.Display())
		if in.Duration != "" {
			header += " • " + in.Duration
		}
		if i == m.detailCursor {
			header = cursorStyle.Render(header)
		}

		s.WriteString(marker)
		s.WriteString(header)
		s.WriteString("\n")
		s.WriteString(interactionStyle.Render(in.Notes))
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"↑/↓: Select interaction",
		"n: Log interaction",
		"d: Delete interaction",
		"D: Delete contact",
		"Esc: Back",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "b":
		m.backToList()
		return m, nil
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.detailCursor > 0 {
			m.detailCursor--
		}
	case "down", "j":
		if m.detailCursor < len(m.detail)-1 {
			m.detailCursor++
		}
	case "n":
		m.openInteractionForm()
	case "d":
		if m.detailCursor < len(m.detail) {
			in := m.detail[m.detailCursor]
			m.confirmDelete(deleteInteraction, in.ID, fmt.Sprintf("%s on %s", in.Type.Label(), in.Date.Display()))
		}
	case "D":
		m.confirmDelete(deleteContact, m.selected.ID, m.selected.Name)
	}
	return m, nil
}

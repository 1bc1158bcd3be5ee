package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/connecthub/models"
)

var (
	statCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			MarginRight(1).
			Width(28)

	statWarningStyle = statCardStyle.
				BorderForeground(lipgloss.Color("214"))

	statValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))
)

func newContactTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Company", Width: 16},
		{Title: "Role", Width: 16},
		{Title: "Last", Width: 10},
		{Title: "#", Width: 4},
		{Title: "Badge", Width: 10},
		{Title: "Tags", Width: 20},
	}

	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
}

func contactRows(engagements []models.ContactEngagement) []table.Row {
	rows := make([]table.Row, 0, len(engagements))
	for _, e := range engagements {
		rows = append(rows, table.Row{
			e.Contact.Name,
			e.Contact.Company,
			e.Contact.Role,
			e.Summary.LastDateLabel(),
			strconv.Itoa(e.Summary.Count),
			e.Summary.BadgeLabel(),
			strings.Join(e.Contact.Tags, ", "),
		})
	}
	return rows
}

func (m Model) tableHeight() int {
	return max(m.height-14, 3)
}

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("ConnectHub"))
	s.WriteString("  ")
	s.WriteString(subtleStyle.Render("Track relationships that matter"))
	s.WriteString("\n\n")

	s.WriteString(m.renderDashboard())
	s.WriteString("\n")

	s.WriteString(m.search.View())
	s.WriteString("\n\n")

	if len(m.contacts) == 0 {
		s.WriteString(m.renderEmptyList())
	} else {
		s.WriteString(m.table.View())
		if e, ok := m.highlighted(); ok {
			s.WriteString("\n")
			s.WriteString(badgeStyle(e.Summary.Tier).Render(e.Summary.BadgeLabel()))
			s.WriteString(" ")
			s.WriteString(subtleStyle.Render(fmt.Sprintf("%s • Last: %s • %d interactions",
				e.Contact.Email, e.Summary.LastDateLabel(), e.Summary.Count)))
		}
	}

	if m.status != "" {
		s.WriteString("\n")
		s.WriteString(statusStyle.Render(m.status))
	}

	s.WriteString("\n")
	s.WriteString(m.renderListHelp())
	return s.String()
}

func (m Model) renderDashboard() string {
	card := func(style lipgloss.Style, value int, label string) string {
		return style.Render(statValueStyle.Render(strconv.Itoa(value)) + "\n" + subtleStyle.Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card(statCardStyle, m.fleet.Total, "Total Contacts"),
		card(statWarningStyle, m.fleet.NeedFollowUp, "Need Follow-up (30+ days)"),
		card(statCardStyle, m.fleet.TotalInteractions, "Total Interactions"),
	)
}

func (m Model) renderEmptyList() string {
	if strings.TrimSpace(m.search.Value()) != "" {
		return titleStyle.Render("No contacts found") + "\n" + subtleStyle.Render("Try adjusting your search")
	}
	return titleStyle.Render("No contacts yet") + "\n" + subtleStyle.Render("Add your first contact to get started")
}

func (m Model) renderListHelp() string {
	if m.searching {
		return helpStyle.Render("Type to search • Enter/Esc: Done")
	}
	help := []string{
		"↑/↓: Navigate",
		"Enter: View details",
		"/: Search",
		"a: Add contact",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) highlighted() (models.ContactEngagement, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.engagements) {
		return models.ContactEngagement{}, false
	}
	return m.engagements[i], true
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.Focus()
		m.table.Blur()
		return m, nil
	case "a", "n":
		m.openContactForm()
		return m, nil
	case "enter":
		e, ok := m.highlighted()
		if !ok {
			return m, nil
		}
		return m, m.openDetail(e.Contact)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleSearchKeys forwards keystrokes to the search box and issues a fetch
// whenever the query text changes.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "down", "up":
		m.searching = false
		m.search.Blur()
		m.table.Focus()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.refetchContacts())
}

func (m *Model) openDetail(contact models.Contact) tea.Cmd {
	c := contact
	m.viewMode = ViewDetail
	m.selected = &c
	m.detail = nil
	m.detailCursor = 0
	m.status = ""
	return m.refetchDetail()
}

func (m *Model) backToList() {
	m.viewMode = ViewList
	m.selected = nil
	m.detail = nil
	m.detailCursor = 0
	m.detailLoading = false
	m.modal = ModalNone
}

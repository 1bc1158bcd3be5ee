// ABOUTME: Delete confirmation and alert dialogs for TUI
// ABOUTME: Confirms contact and interaction deletion before any request is sent
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/connecthub/client"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m *Model) confirmDelete(target deleteTarget, id, label string) {
	m.pending = pendingDelete{target: target, id: id, label: label}
	m.modal = ModalConfirmDelete
}

func (m Model) renderConfirmDelete() string {
	kind := "contact"
	if m.pending.target == deleteInteraction {
		kind = "interaction"
	}

	title := warningStyle.Render("⚠  DELETE CONFIRMATION  ⚠")
	message := fmt.Sprintf("Are you sure you want to delete this %s?", kind)
	entityInfo := fmt.Sprintf("\n%s: %s\n", strings.ToUpper(kind), m.pending.label)
	warning := "\nThis action cannot be undone!"

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Delete (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		entityInfo,
		warningStyle.Render(warning),
		"",
		buttons,
	)
	return confirmBoxStyle.Render(content)
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		pending := m.pending
		m.pending = pendingDelete{}
		m.modal = ModalNone
		return m, m.deleteCmd(pending)
	case "n", "N", "esc":
		m.pending = pendingDelete{}
		m.modal = ModalNone
	}
	return m, nil
}

// deleteCmd issues the delete. The dialog already collected confirmation.
func (m Model) deleteCmd(p pendingDelete) tea.Cmd {
	repo, ctx := m.repo, m.ctx
	switch p.target {
	case deleteContact:
		return func() tea.Msg {
			return contactDeletedMsg{id: p.id, err: repo.DeleteContact(ctx, p.id, client.Confirmed)}
		}
	case deleteInteraction:
		return func() tea.Msg {
			return interactionDeletedMsg{err: repo.DeleteInteraction(ctx, p.id, client.Confirmed)}
		}
	}
	return nil
}

func (m Model) renderAlert() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		warningStyle.Render(m.alert),
		"",
		cancelButtonStyle.Render("OK (enter)"),
	)
	return confirmBoxStyle.Render(content)
}

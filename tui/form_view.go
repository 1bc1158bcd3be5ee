package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/connecthub/models"
)

// Contact form field order
const (
	contactName = iota
	contactEmail
	contactCompany
	contactRole
	contactTags
)

// Interaction form field order. The type selector sits before the inputs.
const (
	interactionTypeField = iota
	interactionDate
	interactionDuration
	interactionNotes
)

var contactLabels = []string{"Name *", "Email *", "Company", "Role", "Tags (comma separated)"}

var interactionLabels = []string{"Type *", "Date *", "Duration (optional)", "Notes *"}

func newInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Cursor.SetMode(cursor.CursorStatic)
	return input
}

func (m *Model) openContactForm() {
	m.contactInputs = []textinput.Model{
		newInput("John Doe", 100),
		newInput("john@example.com", 100),
		newInput("TechCorp", 100),
		newInput("Software Engineer", 100),
		newInput("client, active, prospect", 200),
	}
	m.modal = ModalContactForm
	m.focusIndex = contactName
	focusOnly(m.contactInputs, m.focusIndex)
}

func (m *Model) openInteractionForm() {
	// index 0 is the type selector; its input is never rendered
	m.interactionInputs = []textinput.Model{
		newInput("", 0),
		newInput("YYYY-MM-DD", 10),
		newInput("e.g., 30min, 1hr", 50),
		newInput("What did you discuss?", 1000),
	}
	m.interactionInputs[interactionDate].SetValue(m.now().Format(models.DateLayout))
	m.interactionType = 0
	m.modal = ModalInteractionForm
	m.focusIndex = interactionTypeField
	focusOnly(m.interactionInputs, m.focusIndex)
}

func focusOnly(inputs []textinput.Model, index int) {
	for i := range inputs {
		if i == index {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}

func (m Model) renderContactForm() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Add New Contact"))
	s.WriteString("\n\n")
	for i, input := range m.contactInputs {
		s.WriteString(formLine(i == m.focusIndex, contactLabels[i], input.View()))
	}
	s.WriteString(helpStyle.Render("Tab: Next field • Enter: Save • Esc: Cancel"))
	return dialogStyle.Render(s.String())
}

func (m Model) renderInteractionForm() string {
	var s strings.Builder
	name := ""
	if m.selected != nil {
		name = m.selected.Name
	}
	s.WriteString(titleStyle.Render("Log Interaction with " + name))
	s.WriteString("\n\n")

	var types []string
	for i, t := range models.InteractionTypes {
		label := t.Label()
		if i == m.interactionType {
			label = cursorStyle.Render("[" + label + "]")
		}
		types = append(types, label)
	}
	s.WriteString(formLine(m.focusIndex == interactionTypeField, interactionLabels[interactionTypeField], strings.Join(types, "  ")))

	for i := interactionDate; i < len(m.interactionInputs); i++ {
		s.WriteString(formLine(i == m.focusIndex, interactionLabels[i], m.interactionInputs[i].View()))
	}
	s.WriteString(helpStyle.Render("Tab: Next field • ←/→: Change type • Enter: Save • Esc: Cancel"))
	return dialogStyle.Render(s.String())
}

func formLine(focused bool, label, field string) string {
	marker := "  "
	if focused {
		marker = cursorStyle.Render("> ")
	}
	return marker + subtleStyle.Render(label) + "\n  " + field + "\n"
}

func (m Model) handleContactFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = ModalNone
		m.contactInputs = nil
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.contactInputs)
		focusOnly(m.contactInputs, m.focusIndex)
		return m, nil
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex + len(m.contactInputs) - 1) % len(m.contactInputs)
		focusOnly(m.contactInputs, m.focusIndex)
		return m, nil
	case "enter":
		return m, m.submitContactForm()
	}

	var cmd tea.Cmd
	m.contactInputs[m.focusIndex], cmd = m.contactInputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m Model) submitContactForm() tea.Cmd {
	in := models.ContactInput{
		Name:    m.contactInputs[contactName].Value(),
		Email:   m.contactInputs[contactEmail].Value(),
		Company: m.contactInputs[contactCompany].Value(),
		Role:    m.contactInputs[contactRole].Value(),
		Tags:    m.contactInputs[contactTags].Value(),
	}
	repo, ctx := m.repo, m.ctx
	return func() tea.Msg {
		contact, err := repo.CreateContact(ctx, in)
		return contactCreatedMsg{contact: contact, err: err}
	}
}

func (m Model) handleInteractionFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = ModalNone
		m.interactionInputs = nil
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.interactionInputs)
		focusOnly(m.interactionInputs, m.focusIndex)
		return m, nil
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex + len(m.interactionInputs) - 1) % len(m.interactionInputs)
		focusOnly(m.interactionInputs, m.focusIndex)
		return m, nil
	case "enter":
		return m, m.submitInteractionForm()
	}

	if m.focusIndex == interactionTypeField {
		switch msg.String() {
		case "left", "h":
			m.interactionType = (m.interactionType + len(models.InteractionTypes) - 1) % len(models.InteractionTypes)
		case "right", "l", " ":
			m.interactionType = (m.interactionType + 1) % len(models.InteractionTypes)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.interactionInputs[m.focusIndex], cmd = m.interactionInputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m Model) submitInteractionForm() tea.Cmd {
	if m.selected == nil {
		return nil
	}
	contactID := m.selected.ID
	in := models.InteractionInput{
		Type:     string(models.InteractionTypes[m.interactionType]),
		Date:     m.interactionInputs[interactionDate].Value(),
		Duration: m.interactionInputs[interactionDuration].Value(),
		Notes:    m.interactionInputs[interactionNotes].Value(),
	}
	repo, ctx := m.repo, m.ctx
	return func() tea.Msg {
		_, err := repo.AddInteraction(ctx, contactID, in)
		return interactionAddedMsg{err: err}
	}
}

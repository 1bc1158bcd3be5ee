// ABOUTME: Asynchronous backend calls for the TUI
// ABOUTME: Each request runs as a tea.Cmd and reports back as a message
package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/engagement"
	"github.com/harperreed/connecthub/models"
)

type contactsLoadedMsg struct {
	seq      int
	contacts []models.Contact
	err      error
}

type interactionsLoadedMsg struct {
	interactions []models.Interaction
	err          error
}

type detailLoadedMsg struct {
	seq          int
	contactID    string
	interactions []models.Interaction
	err          error
}

type contactCreatedMsg struct {
	contact *models.Contact
	err     error
}

type contactDeletedMsg struct {
	id  string
	err error
}

type interactionAddedMsg struct {
	err error
}

type interactionDeletedMsg struct {
	err error
}

func (m Model) loadContactsCmd(seq int, query string) tea.Cmd {
	repo, ctx := m.repo, m.ctx
	return func() tea.Msg {
		contacts, err := repo.ListContacts(ctx, query)
		return contactsLoadedMsg{seq: seq, contacts: contacts, err: err}
	}
}

func (m Model) loadInteractionsCmd() tea.Cmd {
	repo, ctx := m.repo, m.ctx
	return func() tea.Msg {
		interactions, err := repo.ListInteractions(ctx)
		return interactionsLoadedMsg{interactions: interactions, err: err}
	}
}

func (m Model) loadDetailCmd(seq int, contactID string) tea.Cmd {
	repo, ctx := m.repo, m.ctx
	return func() tea.Msg {
		interactions, err := repo.ContactInteractions(ctx, contactID)
		return detailLoadedMsg{seq: seq, contactID: contactID, interactions: interactions, err: err}
	}
}

// refetchContacts reloads the list for the current query. Older responses
// still in flight are dropped when they arrive.
func (m *Model) refetchContacts() tea.Cmd {
	m.listSeq++
	return m.loadContactsCmd(m.listSeq, m.search.Value())
}

func (m *Model) refetchDetail() tea.Cmd {
	if m.selected == nil {
		return nil
	}
	m.detailSeq++
	m.detailLoading = true
	return m.loadDetailCmd(m.detailSeq, m.selected.ID)
}

func (m Model) handleContactsLoaded(msg contactsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.listSeq {
		return m, nil
	}

	if msg.err != nil {
		if !m.loaded {
			m.loading = false
			m.loadErr = msg.err
			return m, nil
		}
		m.status = "Search failed: " + msg.err.Error()
		return m, nil
	}

	m.loading = false
	m.loaded = true
	m.loadErr = nil
	m.status = ""
	m.contacts = msg.contacts
	m.recompute()
	return m, m.loadInteractionsCmd()
}

func (m Model) handleInteractionsLoaded(msg interactionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "Could not load interactions: " + msg.err.Error()
		return m, nil
	}
	m.interactions = msg.interactions
	m.recompute()
	return m, nil
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.detailSeq || m.selected == nil || m.selected.ID != msg.contactID {
		return m, nil
	}
	m.detailLoading = false
	if msg.err != nil {
		m.status = "Could not load interactions: " + msg.err.Error()
		return m, nil
	}
	m.status = ""
	m.detail = msg.interactions
	if m.detailCursor >= len(m.detail) {
		m.detailCursor = max(len(m.detail)-1, 0)
	}
	return m, nil
}

func (m Model) handleContactCreated(msg contactCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.alert = alertText("Error adding contact", msg.err)
		return m, nil
	}
	m.modal = ModalNone
	m.contactInputs = nil
	return m, m.refetchContacts()
}

func (m Model) handleContactDeleted(msg contactDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, client.ErrDeclined) {
			return m, nil
		}
		m.alert = alertText("Error deleting contact", msg.err)
		return m, nil
	}
	if m.selected != nil && m.selected.ID == msg.id {
		m.backToList()
	}
	return m, m.refetchContacts()
}

func (m Model) handleInteractionAdded(msg interactionAddedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.alert = alertText("Error adding interaction", msg.err)
		return m, nil
	}
	m.modal = ModalNone
	m.interactionInputs = nil
	return m, tea.Batch(m.refetchDetail(), m.loadInteractionsCmd())
}

func (m Model) handleInteractionDeleted(msg interactionDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, client.ErrDeclined) {
			return m, nil
		}
		m.alert = alertText("Error deleting interaction", msg.err)
		return m, nil
	}
	return m, tea.Batch(m.refetchDetail(), m.loadInteractionsCmd())
}

// recompute rebuilds the per-contact engagement and the dashboard from the
// current contact list and the full interaction list.
func (m *Model) recompute() {
	now := m.now()
	m.engagements = engagement.Engagements(m.contacts, m.interactions, now)
	m.fleet = engagement.SummarizeFleet(m.contacts, m.interactions, now)
	m.table.SetRows(contactRows(m.engagements))
	if m.table.Cursor() >= len(m.engagements) {
		m.table.SetCursor(max(len(m.engagements)-1, 0))
	}
}

func alertText(prefix string, err error) string {
	if client.IsValidation(err) {
		if msg := err.Error(); msg != "" {
			return strings.ToUpper(msg[:1]) + msg[1:]
		}
	}
	return prefix + ": " + err.Error()
}

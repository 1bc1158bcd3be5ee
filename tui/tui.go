// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: List mode with dashboard and search, detail mode with interaction history
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/models"
)

// Repository is the backend surface the TUI needs. *client.Client satisfies it.
type Repository interface {
	ListContacts(ctx context.Context, query string) ([]models.Contact, error)
	CreateContact(ctx context.Context, in models.ContactInput) (*models.Contact, error)
	DeleteContact(ctx context.Context, id string, confirmer client.Confirmer) error
	ListInteractions(ctx context.Context) ([]models.Interaction, error)
	ContactInteractions(ctx context.Context, contactID string) ([]models.Interaction, error)
	AddInteraction(ctx context.Context, contactID string, in models.InteractionInput) (*models.Interaction, error)
	DeleteInteraction(ctx context.Context, id string, confirmer client.Confirmer) error
}

// ViewMode is one of the two display modes.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

// Modal is an overlay drawn on top of the current mode.
type Modal int

const (
	ModalNone Modal = iota
	ModalContactForm
	ModalInteractionForm
	ModalConfirmDelete
)

// Model is the main bubbletea model
type Model struct {
	ctx  context.Context
	repo Repository
	now  func() time.Time

	viewMode ViewMode
	modal    Modal

	// Initial load
	loading bool
	loaded  bool
	loadErr error

	// List view state
	contacts     []models.Contact
	interactions []models.Interaction
	engagements  []models.ContactEngagement
	fleet        models.FleetSummary
	table        table.Model
	search       textinput.Model
	searching    bool
	listSeq      int
	status       string

	// Detail view state
	selected      *models.Contact
	detail        []models.Interaction
	detailLoading bool
	detailCursor  int
	detailSeq     int

	// Form state
	contactInputs     []textinput.Model
	interactionInputs []textinput.Model
	interactionType   int
	focusIndex        int

	// Delete confirmation state
	pending pendingDelete

	// Blocking alert, drawn above any modal
	alert string

	width  int
	height int
}

type deleteTarget int

const (
	deleteContact deleteTarget = iota
	deleteInteraction
)

type pendingDelete struct {
	target deleteTarget
	id     string
	label  string
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides the time source used for engagement calculations.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// NewModel creates a new TUI model
func NewModel(ctx context.Context, repo Repository, opts ...Option) Model {
	search := newInput("Search contacts by name, company, role or tag...", 100)
	search.Prompt = "/ "

	m := Model{
		ctx:      ctx,
		repo:     repo,
		now:      time.Now,
		viewMode: ViewList,
		loading:  true,
		listSeq:  1,
		search:   search,
		table:    newContactTable(),
		width:    100,
		height:   30,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.loadContactsCmd(m.listSeq, "")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(m.tableHeight())
		return m, nil
	case contactsLoadedMsg:
		return m.handleContactsLoaded(msg)
	case interactionsLoadedMsg:
		return m.handleInteractionsLoaded(msg)
	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)
	case contactCreatedMsg:
		return m.handleContactCreated(msg)
	case contactDeletedMsg:
		return m.handleContactDeleted(msg)
	case interactionAddedMsg:
		return m.handleInteractionAdded(msg)
	case interactionDeletedMsg:
		return m.handleInteractionDeleted(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading && !m.loaded {
		return m.renderLoading()
	}
	if m.loadErr != nil {
		return m.renderLoadError()
	}

	var base string
	switch m.viewMode {
	case ViewList:
		base = m.renderListView()
	case ViewDetail:
		base = m.renderDetailView()
	}

	if m.alert != "" {
		return m.overlay(m.renderAlert())
	}
	switch m.modal {
	case ModalContactForm:
		return m.overlay(m.renderContactForm())
	case ModalInteractionForm:
		return m.overlay(m.renderInteractionForm())
	case ModalConfirmDelete:
		return m.overlay(m.renderConfirmDelete())
	}
	return base
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.loadErr != nil {
		switch msg.String() {
		case "r":
			m.loadErr = nil
			m.loading = true
			m.listSeq++
			return m, m.loadContactsCmd(m.listSeq, m.search.Value())
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}
	if !m.loaded {
		return m, nil
	}

	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc", " ":
			m.alert = ""
		}
		return m, nil
	}

	switch m.modal {
	case ModalContactForm:
		return m.handleContactFormKeys(msg)
	case ModalInteractionForm:
		return m.handleInteractionFormKeys(msg)
	case ModalConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	}
	return m, nil
}

// Mode reports the current display mode.
func (m Model) Mode() ViewMode {
	return m.viewMode
}

// ActiveModal reports the overlay currently shown, if any.
func (m Model) ActiveModal() Modal {
	return m.modal
}

// Alert returns the blocking alert text, or "" when none is shown.
func (m Model) Alert() string {
	return m.alert
}

func (m Model) overlay(dialog string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m Model) renderLoading() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		titleStyle.Render("Loading ConnectHub..."))
}

func (m Model) renderLoadError() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		warningStyle.Render("Error Loading Application"),
		"",
		m.loadErr.Error(),
		"",
		helpStyle.Render("r: Retry • q: Quit"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("61")).
			Padding(0, 1).
			MarginRight(1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("170")).
			Padding(1, 2).
			Width(60)
)

var tierColors = map[models.StalenessTier]lipgloss.Color{
	models.TierUnknown:  lipgloss.Color("245"),
	models.TierFresh:    lipgloss.Color("42"),
	models.TierWarning:  lipgloss.Color("214"),
	models.TierCritical: lipgloss.Color("196"),
}

func badgeStyle(tier models.StalenessTier) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(tierColors[tier]).
		Padding(0, 1)
}

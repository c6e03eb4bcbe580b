package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/export"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

// SigningModel walks the draft leases one at a time and sends each for
// signature once a document URL is entered.
type SigningModel struct {
	CommonModel
	leaseService *lease.Service

	queue   []*lease.Lease
	current *lease.Lease

	urlInput textinput.Model

	loading    bool
	status     string
	totalCount int
	sent       int
}

func NewSigningModel(svc *lease.Service) SigningModel {
	ti := textinput.New()
	ti.Placeholder = "https://sign.example.com/lease.pdf"
	ti.Width = 60

	return SigningModel{
		leaseService: svc,
		urlInput:     ti,
		loading:      true,
	}
}

func (m SigningModel) Title() string { return "Signing Queue" }

func (m SigningModel) ShortHelp() string {
	return "Enter: send | Tab: skip | Esc: back"
}

func (m SigningModel) Init() tea.Cmd {
	return m.loadDraftsCmd()
}

func (m SigningModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			if m.current != nil {
				return m, m.sendCmd(m.urlInput.Value())
			}
		case tea.KeyTab:
			if m.current != nil {
				m.next()
				return m, textinput.Blink
			}
		}

	case loadDraftsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.queue = msg.leases
		m.totalCount = len(m.queue)
		m.next()

		return m, textinput.Blink

	case sendResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			break
		}

		m.sent++
		m.status = ""
		m.next()
	}

	m.urlInput, cmd = m.urlInput.Update(msg)

	return m, cmd
}

func (m SigningModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading draft leases...")
	}

	if m.current == nil {
		if m.totalCount == 0 {
			return lipgloss.NewStyle().Padding(2).Render(m.status + "No draft leases waiting.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(2).Render(
			successStyle.Render(fmt.Sprintf("Sent %d of %d drafts for signature.", m.sent, m.totalCount)) +
				"\n\n(Esc to back)")
	}

	info := fmt.Sprintf("Unit:   %s\nTenant: %s\nTerm:   %s to %s\nRent:   %s/mo\n",
		location(m.current),
		tenant(m.current),
		FormatDate(m.current.StartDate),
		FormatDate(m.current.EndDate),
		export.FormatCents(m.current.MonthlyRent),
	)

	if m.current.Terms.Kind == lease.TermsRenewal {
		info += warningStyle.Render("Renewal") + "\n"
	}

	s := fmt.Sprintf("Draft Lease (%d remaining)\n\n%s\nDocument URL:\n%s",
		len(m.queue)+1, info, m.urlInput.View())

	if m.status != "" {
		s += "\n\n" + errorStyle.Render(m.status)
	}

	return lipgloss.NewStyle().Padding(2).Render(s + "\n\n(Enter to send, Tab to skip, Esc to back)")
}

func (m *SigningModel) next() {
	if len(m.queue) == 0 {
		m.current = nil
		m.urlInput.SetValue("")
		m.urlInput.Blur()

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
	m.urlInput.SetValue(m.current.DocumentURL)
	m.urlInput.Focus()
}

type loadDraftsMsg struct {
	leases []*lease.Lease
	err    error
}

func (m SigningModel) loadDraftsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		leases, err := m.leaseService.List(ctx, lease.ListFilter{Status: new(lease.StatusDraft)})

		return loadDraftsMsg{leases: leases, err: err}
	}
}

type sendResultMsg struct {
	err error
}

func (m SigningModel) sendCmd(url string) tea.Cmd {
	id := m.current.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.leaseService.SendForSignature(ctx, id, url)

		return sendResultMsg{err: err}
	}
}

package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/export"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateSend
	listStateTerminate
)

var statusFilters = []struct {
	label  string
	status *lease.Status
}{
	{label: "All"},
	{label: "Draft", status: new(lease.StatusDraft)},
	{label: "Pending Signature", status: new(lease.StatusPendingSignature)},
	{label: "Active", status: new(lease.StatusActive)},
	{label: "Expired", status: new(lease.StatusExpired)},
	{label: "Terminated", status: new(lease.StatusTerminated)},
}

type ListModel struct {
	CommonModel
	leaseService *lease.Service

	state  listState
	table  table.Model
	leases []*lease.Lease
	form   *huh.Form

	statusFilterIdx int

	filter  lease.ListFilter
	loading bool
	err     error
	status  string
}

func NewListModel(svc *lease.Service) ListModel {
	return ListModel{
		leaseService: svc,
		table: newTable([]table.Column{
			{Title: "Ends", Width: 12},
			{Title: "Status", Width: 18},
			{Title: "Days", Width: 6},
			{Title: "Rent", Width: 11},
			{Title: "Unit", Width: 28},
			{Title: "Tenant", Width: 20},
		}),
		loading: true,
	}
}

func (m ListModel) Title() string { return "Leases" }

func (m ListModel) ShortHelp() string {
	if m.state != listStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | s: status filter | n: send for signature | g: mark signed | t: terminate | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadLeasesCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.leases = msg.leases
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadLeasesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == listStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m ListModel) selected() *lease.Lease {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.leases) {
		return nil
	}

	return m.leases[idx]
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadLeasesCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.filter.Status = statusFilters[m.statusFilterIdx].status

			return m, m.loadLeasesCmd()
		case "n":
			return m.enterForm(listStateSend)
		case "t":
			return m.enterForm(listStateTerminate)
		case "g":
			if l := m.selected(); l != nil {
				return m, m.signCmd(l)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) enterForm(state listState) (tea.Model, tea.Cmd) {
	l := m.selected()
	if l == nil {
		return m, nil
	}

	switch state {
	case listStateSend:
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Key("document_url").
					Title("Document URL").
					Placeholder("https://...").
					Value(new(l.DocumentURL)).
					Validate(required("document URL")),
			),
		)
	case listStateTerminate:
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Key("date").
					Title("Termination Date").
					Placeholder("YYYY-MM-DD").
					Value(new(FormatDate(m.leaseService.Now()))).
					Validate(func(s string) error {
						_, err := parseDate(s)
						return err
					}),
				huh.NewInput().
					Key("reason").
					Title("Reason").
					Validate(required("reason")),
				huh.NewConfirm().
					Key("refund").
					Title(fmt.Sprintf("Refund deposit of %s?", export.FormatCents(l.SecurityDeposit))),
			),
		)
	}

	m.form = m.form.WithWidth(45).WithShowHelp(false)
	m.state = state
	m.table.Blur()

	return m, m.form.Init()
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " cannot be empty")
		}

		return nil
	}
}

func (m ListModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading leases...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Filter: [s] Status: %s | %d leases",
		activeStyle(statusFilters[m.statusFilterIdx].label), len(m.leases))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state != listStateBrowse && m.form != nil {
		title := "Send for Signature"
		if m.state == listStateTerminate {
			title = "Terminate Lease"
		}

		where := ""
		if l := m.selected(); l != nil {
			where = location(l)
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s\n\n%s", title, where, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ListModel) refreshTable() {
	now := m.leaseService.Now()
	rows := make([]table.Row, 0, len(m.leases))

	for _, l := range m.leases {
		rows = append(rows, table.Row{
			FormatDate(l.EndDate),
			string(lease.EffectiveStatus(l, now)),
			fmt.Sprint(lease.DaysUntilExpiration(l, now)),
			export.FormatCents(l.MonthlyRent),
			location(l),
			tenant(l),
		})
	}

	m.table.SetRows(rows)
}

type loadListMsg struct {
	leases []*lease.Lease
	err    error
}

func (m ListModel) loadLeasesCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		leases, err := m.leaseService.List(ctx, filter)

		return loadListMsg{leases: leases, err: err}
	}
}

type listSaveMsg struct {
	status string
	err    error
}

func (m ListModel) signCmd(l *lease.Lease) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.leaseService.Sign(ctx, l.ID); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "Lease for " + location(l) + " is now active."}
	}
}

func (m ListModel) saveCmd() tea.Cmd {
	l := m.selected()
	if l == nil {
		return nil
	}

	state, form := m.state, m.form

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		switch state {
		case listStateSend:
			if _, err := m.leaseService.SendForSignature(ctx, l.ID, form.GetString("document_url")); err != nil {
				return listSaveMsg{err: err}
			}

			return listSaveMsg{status: "Sent for signature."}

		case listStateTerminate:
			date, err := parseDate(form.GetString("date"))
			if err != nil {
				return listSaveMsg{err: err}
			}

			_, refund, err := m.leaseService.Terminate(ctx, l.ID, lease.TerminateParams{
				TerminationDate: date,
				Reason:          form.GetString("reason"),
				RefundDeposit:   form.GetBool("refund"),
			})
			if err != nil {
				return listSaveMsg{err: err}
			}

			if refund.Refund {
				return listSaveMsg{status: "Terminated. Refund " + export.FormatCents(refund.Amount) + " to the tenant."}
			}

			return listSaveMsg{status: "Terminated. Deposit retained."}
		}

		return listSaveMsg{}
	}
}

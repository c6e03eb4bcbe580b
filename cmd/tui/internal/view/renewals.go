package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/export"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

var horizonOptions = []int{30, 60, 90, 180}

type renewalsState int

const (
	renewalsStateHorizon renewalsState = iota
	renewalsStateBrowse
	renewalsStateForm
	renewalsStateResult
)

// RenewalsModel lists leases nearing expiry and renews the selected one.
type RenewalsModel struct {
	CommonModel
	leaseService *lease.Service

	state         renewalsState
	horizonCursor int
	table         table.Model
	candidates    []lease.Candidate
	form          *huh.Form

	loading bool
	status  string
	warning string
	err     error
}

func NewRenewalsModel(svc *lease.Service) RenewalsModel {
	return RenewalsModel{
		leaseService:  svc,
		horizonCursor: 2,
		table: newTable([]table.Column{
			{Title: "Ends", Width: 12},
			{Title: "Days", Width: 6},
			{Title: "Bucket", Width: 9},
			{Title: "Rent", Width: 11},
			{Title: "Unit", Width: 28},
			{Title: "Tenant", Width: 20},
		}),
	}
}

func (m RenewalsModel) Title() string { return "Renewals" }

func (m RenewalsModel) ShortHelp() string {
	switch m.state {
	case renewalsStateBrowse:
		return "Esc: back | Enter: renew | r: refresh"
	case renewalsStateForm:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m RenewalsModel) Init() tea.Cmd {
	return nil
}

func (m RenewalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCandidatesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.candidates = msg.candidates
		m.refreshTable()

		return m, nil

	case renewResultMsg:
		m.state = renewalsStateResult
		m.form = nil
		m.err = msg.err
		m.warning = ""

		if msg.err == nil {
			m.status = fmt.Sprintf("Renewal drafted: %s to %s at %s/mo.",
				FormatDate(msg.result.Lease.StartDate),
				FormatDate(msg.result.Lease.EndDate),
				export.FormatCents(msg.result.Lease.MonthlyRent))
			m.warning = msg.result.Warning
		}

		return m, nil
	}

	switch m.state {
	case renewalsStateHorizon:
		return m.updateHorizon(msg)
	case renewalsStateBrowse:
		return m.updateBrowse(msg)
	case renewalsStateForm:
		return m.updateForm(msg)
	case renewalsStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = renewalsStateBrowse
			m.table.Focus()
			m.loading = true

			return m, m.loadCandidatesCmd()
		}
	}

	return m, nil
}

func (m RenewalsModel) updateHorizon(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		return m, Back
	case tea.KeyUp:
		if m.horizonCursor > 0 {
			m.horizonCursor--
		}
	case tea.KeyDown:
		if m.horizonCursor < len(horizonOptions)-1 {
			m.horizonCursor++
		}
	case tea.KeyEnter:
		m.state = renewalsStateBrowse
		m.loading = true
		m.err = nil

		return m, m.loadCandidatesCmd()
	}

	return m, nil
}

func (m RenewalsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = renewalsStateHorizon
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadCandidatesCmd()
		case "enter":
			return m.enterForm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RenewalsModel) selected() *lease.Lease {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.candidates) {
		return nil
	}

	return m.candidates[idx].Lease
}

func (m RenewalsModel) enterForm() (tea.Model, tea.Cmd) {
	l := m.selected()
	if l == nil {
		return m, nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("end").
				Title("New End Date").
				Value(new(FormatDate(l.EndDate.AddDate(1, 0, 0)))).
				Validate(func(s string) error {
					_, err := parseDate(s)
					return err
				}),
			huh.NewSelect[string]().
				Key("mode").
				Title("Rent Change").
				Options(
					huh.NewOption("Keep current rent", string(lease.IncreaseNone)),
					huh.NewOption("Percentage increase", string(lease.IncreasePercentage)),
					huh.NewOption("Fixed increase ($)", string(lease.IncreaseFixed)),
					huh.NewOption("New monthly rent ($)", string(lease.IncreaseExplicit)),
				),
			huh.NewInput().
				Key("value").
				Title("Amount").
				Description("Percent or dollars, depending on the rent change"),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = renewalsStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m RenewalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = renewalsStateBrowse
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

	params, err := renewParams(m.form.GetString("end"), lease.IncreaseMode(m.form.GetString("mode")), m.form.GetString("value"))
	if err != nil {
		return m, func() tea.Msg { return renewResultMsg{err: err} }
	}

	return m, m.renewCmd(m.selected(), params)
}

// renewParams turns the form input into service parameters. Dollar amounts are
// converted to cents.
func renewParams(end string, mode lease.IncreaseMode, value string) (lease.RenewParams, error) {
	newEnd, err := parseDate(end)
	if err != nil {
		return lease.RenewParams{}, err
	}

	params := lease.RenewParams{NewEndDate: newEnd}
	value = strings.TrimSpace(value)

	if mode != lease.IncreaseNone && mode != "" && value == "" {
		return lease.RenewParams{}, errors.New("an amount is required for this rent change")
	}

	switch mode {
	case lease.IncreaseNone, "":
	case lease.IncreasePercentage:
		pct, err := decimal.NewFromString(strings.TrimSuffix(value, "%"))
		if err != nil {
			return lease.RenewParams{}, fmt.Errorf("invalid percentage %q", value)
		}

		params.RentIncrease = lease.Percentage(pct)
	case lease.IncreaseFixed:
		cents, err := parseDollars(value)
		if err != nil {
			return lease.RenewParams{}, err
		}

		params.RentIncrease = lease.Fixed(cents)
	case lease.IncreaseExplicit:
		cents, err := parseDollars(value)
		if err != nil {
			return lease.RenewParams{}, err
		}

		params.NewMonthlyRent = &cents
	default:
		return lease.RenewParams{}, fmt.Errorf("unknown rent change %q", mode)
	}

	return params, nil
}

func (m RenewalsModel) View() string {
	switch m.state {
	case renewalsStateHorizon:
		s := "Show leases expiring within:\n\n"

		for i, days := range horizonOptions {
			cursor := " "
			if i == m.horizonCursor {
				cursor = ">"
			}

			s += fmt.Sprintf("%s %d days\n", cursor, days)
		}

		return lipgloss.NewStyle().Padding(2).Render(s)

	case renewalsStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(
				errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
		}

		s := successStyle.Render(m.status)
		if m.warning != "" {
			s += "\n\n" + warningStyle.Render("Warning: "+m.warning)
		}

		return lipgloss.NewStyle().Padding(2).Render(s + "\n\n(Esc to go back)")
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading renewal candidates...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("%d leases expiring within %s", len(m.candidates),
		activeStyle(fmt.Sprintf("%d days", horizonOptions[m.horizonCursor])))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state == renewalsStateForm && m.form != nil {
		var info string
		if idx := m.table.Cursor(); idx >= 0 && idx < len(m.candidates) {
			c := m.candidates[idx]
			info = fmt.Sprintf("%s\nCurrent rent: %s\nExpires in %d days (%s)",
				location(c.Lease), export.FormatCents(c.Lease.MonthlyRent),
				c.DaysUntilExpiration, bucketLabel(c.Bucket))
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Renew Lease\n\n%s\n\n%s", info, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *RenewalsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.candidates))

	for _, c := range m.candidates {
		rows = append(rows, table.Row{
			FormatDate(c.Lease.EndDate),
			fmt.Sprint(c.DaysUntilExpiration),
			string(c.Bucket),
			export.FormatCents(c.Lease.MonthlyRent),
			location(c.Lease),
			tenant(c.Lease),
		})
	}

	m.table.SetRows(rows)
}

type loadCandidatesMsg struct {
	candidates []lease.Candidate
	err        error
}

func (m RenewalsModel) loadCandidatesCmd() tea.Cmd {
	horizon := horizonOptions[m.horizonCursor]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		candidates, err := m.leaseService.RenewalCandidates(ctx, lease.CandidateQuery{HorizonDays: &horizon})

		return loadCandidatesMsg{candidates: candidates, err: err}
	}
}

type renewResultMsg struct {
	result *lease.RenewResult
	err    error
}

func (m RenewalsModel) renewCmd(l *lease.Lease, params lease.RenewParams) tea.Cmd {
	if l == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.leaseService.Renew(ctx, l.ID, params)

		return renewResultMsg{result: res, err: err}
	}
}

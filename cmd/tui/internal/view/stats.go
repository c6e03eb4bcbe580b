package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

type StatsModel struct {
	CommonModel
	leaseService *lease.Service

	stats   lease.Stats
	loading bool
	err     error
}

func NewStatsModel(svc *lease.Service) StatsModel {
	return StatsModel{leaseService: svc, loading: true}
}

func (m StatsModel) Title() string { return "Portfolio Stats" }

func (m StatsModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m StatsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}

	case loadStatsMsg:
		m.loading = false
		m.err = msg.err
		m.stats = msg.stats
	}

	return m, nil
}

func (m StatsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading stats...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	label := lipgloss.NewStyle().Width(28)

	var sb strings.Builder

	row := func(name string, n int, style lipgloss.Style) {
		fmt.Fprintf(&sb, "%s%s\n", label.Render(name), style.Render(fmt.Sprint(n)))
	}

	plain := lipgloss.NewStyle()

	row("Total leases", m.stats.TotalLeases, plain.Bold(true))
	sb.WriteString("\n")
	row("Active", m.stats.ActiveLeases, plain)
	row("Draft", m.stats.DraftLeases, plain)
	row("Pending signature", m.stats.PendingSignatureLeases, plain)
	row("Expired", m.stats.ExpiredLeases, plain)
	row("Terminated", m.stats.TerminatedLeases, plain)
	sb.WriteString("\n")
	row("Expiring within 30 days", m.stats.ExpiringWithin30, errorStyle)
	row("Expiring within 90 days", m.stats.ExpiringWithin90, warningStyle)
	row("Terminated this month", m.stats.TerminatedThisMonth, plain)

	return lipgloss.NewStyle().Padding(2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(
				"As of "+FormatDate(m.leaseService.Now())),
			boxed(lipgloss.NewStyle().Padding(1, 2).Render(sb.String())),
		),
	)
}

type loadStatsMsg struct {
	stats lease.Stats
	err   error
}

func (m StatsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		stats, err := m.leaseService.Stats(ctx, lease.StatsQuery{})

		return loadStatsMsg{stats: stats, err: err}
	}
}

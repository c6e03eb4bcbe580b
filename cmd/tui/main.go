package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/cmd/tui/internal/view"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/application"
	appStore "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/application/store"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/config"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/database"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/export"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
	leaseStore "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease/store"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/rentroll"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/template"
	templateStore "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/template/store"
)

type model struct {
	leaseService    *lease.Service
	templateService *template.Service
	rentRollService *rentroll.Service
	exportService   *export.Service

	appName     string
	currentView View

	listView      view.ListModel
	renewalsView  view.RenewalsModel
	signingView   view.SigningModel
	statsView     view.StatsModel
	templatesView view.TemplatesModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu View = iota
	ViewList
	ViewRenewals
	ViewSigning
	ViewStats
	ViewTemplates
	ViewImport
	ViewExport
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	appSvc := application.NewService(appStore.New(db))
	templateSvc := template.NewService(templateStore.New(db))
	leaseSvc := lease.NewService(leaseStore.New(db), appSvc, templateSvc,
		lease.WithRenewalHorizon(cfg.Lease.RenewalHorizonDays),
		lease.WithRentIncreaseWarnPercent(cfg.Lease.RentIncreaseWarnPercent),
	)

	return model{
		leaseService:    leaseSvc,
		templateService: templateSvc,
		rentRollService: rentroll.NewService(leaseSvc),
		exportService:   export.NewService(leaseSvc, cfg.Documents.BaseURL, cfg.Documents.APIToken, cfg.Documents.Timeout),
		appName:         cfg.App.Name,
		currentView:     ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.leaseService)

				return m, m.listView.Init()
			case "2":
				m.currentView = ViewRenewals
				m.renewalsView = view.NewRenewalsModel(m.leaseService)

				return m, m.renewalsView.Init()
			case "3":
				m.currentView = ViewSigning
				m.signingView = view.NewSigningModel(m.leaseService)

				return m, m.signingView.Init()
			case "4":
				m.currentView = ViewStats
				m.statsView = view.NewStatsModel(m.leaseService)

				return m, m.statsView.Init()
			case "5":
				m.currentView = ViewTemplates
				m.templatesView = view.NewTemplatesModel(m.templateService)

				return m, m.templatesView.Init()
			case "6":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.rentRollService)

				return m, m.importView.Init()
			case "7":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewRenewals:
		var newModel tea.Model
		newModel, cmd = m.renewalsView.Update(msg)
		m.renewalsView = newModel.(view.RenewalsModel)
	case ViewSigning:
		var newModel tea.Model
		newModel, cmd = m.signingView.Update(msg)
		m.signingView = newModel.(view.SigningModel)
	case ViewStats:
		var newModel tea.Model
		newModel, cmd = m.statsView.Update(msg)
		m.statsView = newModel.(view.StatsModel)
	case ViewTemplates:
		var newModel tea.Model
		newModel, cmd = m.templatesView.Update(msg)
		m.templatesView = newModel.(view.TemplatesModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

// screen is satisfied by every view model.
type screen interface {
	View() string
	ShortHelp() string
}

func (m model) View() string {
	var s screen

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + " Leases\n\n" +
				"1. Browse Leases\n" +
				"2. Renewals\n" +
				"3. Signing Queue\n" +
				"4. Portfolio Stats\n" +
				"5. Lease Templates\n" +
				"6. Import Rent Roll\n" +
				"7. Export Leases\n\n" +
				"q. Quit",
		)
	case ViewList:
		s = m.listView
	case ViewRenewals:
		s = m.renewalsView
	case ViewSigning:
		s = m.signingView
	case ViewStats:
		s = m.statsView
	case ViewTemplates:
		s = m.templatesView
	case ViewImport:
		s = m.importView
	case ViewExport:
		s = m.exportView
	default:
		return "Unknown View"
	}

	return s.View() + "\n" + lipgloss.NewStyle().Faint(true).PaddingLeft(2).Render(s.ShortHelp())
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

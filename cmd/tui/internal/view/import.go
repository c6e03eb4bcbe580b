package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/rentroll"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	rentRollService *rentroll.Service

	state      importState
	filePicker filepicker.Model

	report     *rentroll.Report
	failedList list.Model

	status string
	err    error
}

func NewImportModel(svc *rentroll.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		rentRollService: svc,
		filePicker:      fp,
	}
}

func (m ImportModel) Title() string { return "Import Rent Roll" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "↑/↓: scroll failures | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateResult && m.report != nil && len(m.report.Failed) > 0 {
			var cmd tea.Cmd
			m.failedList, cmd = m.failedList.Update(msg)

			return m, cmd
		}

	case importResultMsg:
		m.state = importStateResult

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.report = msg.report
		m.status = fmt.Sprintf("Created %d draft leases from a %s rent roll (%s).",
			len(msg.report.Created), msg.report.Profile, msg.report.Charset)

		items := make([]list.Item, len(msg.report.Failed))
		for i, f := range msg.report.Failed {
			items[i] = rowErrorItem{err: f}
		}

		m.failedList = list.New(items, rowErrorDelegate{}, 80, 15)
		m.failedList.Title = fmt.Sprintf("%d rows failed", len(items))
		m.failedList.SetShowStatusBar(false)
		m.failedList.SetFilteringEnabled(false)
		m.failedList.SetShowHelp(false)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == importStateResult {
		m.state = importStateFilePick
		m.err = nil
		m.report = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Select a rent roll to import:\n\n" + m.filePicker.View(),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)

	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	s := successStyle.Render(m.status)
	if len(m.report.Failed) > 0 {
		s += "\n\n" + m.failedList.View()
	}

	return style.Render(s + "\n\n(Esc to go back)")
}

type importResultMsg struct {
	report *rentroll.Report
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		report, err := m.rentRollService.Import(ctx, f)

		return importResultMsg{report: report, err: err}
	}
}

type rowErrorItem struct {
	err rentroll.RowError
}

func (i rowErrorItem) Title() string       { return "" }
func (i rowErrorItem) Description() string { return "" }
func (i rowErrorItem) FilterValue() string { return "" }

type rowErrorDelegate struct{}

func (d rowErrorDelegate) Height() int                             { return 2 }
func (d rowErrorDelegate) Spacing() int                            { return 0 }
func (d rowErrorDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowErrorDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(rowErrorItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	fmt.Fprintf(w, "%sRow %d  %s\n      %s\n",
		cursor,
		item.err.Row,
		item.err.ApplicationID,
		errorStyle.Render(item.err.Err.Error()),
	)
}

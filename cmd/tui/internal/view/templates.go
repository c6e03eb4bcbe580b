package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/template"
)

type templatesState int

const (
	templatesStateList templatesState = iota
	templatesStateCreate
)

// templateItem wraps a template to implement list.Item.
type templateItem struct {
	t *template.Template
}

func (i templateItem) Title() string {
	count := faintStyle.Render(fmt.Sprintf("[%d clauses]", len(i.t.Clauses)))
	return fmt.Sprintf("%s  %s", i.t.Name, count)
}

func (i templateItem) Description() string {
	if len(i.t.Clauses) == 0 {
		return ""
	}

	return i.t.Clauses[0]
}

func (i templateItem) FilterValue() string {
	return i.t.Name
}

type TemplatesModel struct {
	CommonModel
	templateService *template.Service

	state templatesState
	list  list.Model
	form  *huh.Form

	loading bool
	status  string
}

func NewTemplatesModel(svc *template.Service) TemplatesModel {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Lease Templates"
	l.SetShowHelp(false)

	return TemplatesModel{
		templateService: svc,
		list:            l,
		loading:         true,
	}
}

func (m TemplatesModel) Title() string { return "Templates" }

func (m TemplatesModel) ShortHelp() string {
	if m.state == templatesStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | /: filter | c: create"
}

func (m TemplatesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TemplatesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTemplatesMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		items := make([]list.Item, len(msg.templates))
		for i, t := range msg.templates {
			items[i] = templateItem{t: t}
		}

		return m, m.list.SetItems(items)

	case templateSavedMsg:
		m.state = templatesStateList
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Created %q.", msg.name)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	}

	if m.state == templatesStateCreate {
		return m.updateCreate(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				return m, nil
			}

			return m, Back
		case "c":
			return m.enterCreate()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TemplatesModel) enterCreate() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Validate(required("name")),
			huh.NewText().
				Key("clauses").
				Title("Clauses").
				Description("One clause per line").
				Validate(required("clauses")),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = templatesStateCreate

	return m, m.form.Init()
}

func (m TemplatesModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = templatesStateList
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd(m.form.GetString("name"), strings.Split(m.form.GetString("clauses"), "\n"))
}

func (m TemplatesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading templates...")
	}

	if m.state == templatesStateCreate {
		return lipgloss.NewStyle().Padding(1).Render("New Template\n\n" + m.form.View())
	}

	content := m.list.View()
	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type loadTemplatesMsg struct {
	templates []*template.Template
	err       error
}

func (m TemplatesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		templates, err := m.templateService.List(ctx)

		return loadTemplatesMsg{templates: templates, err: err}
	}
}

type templateSavedMsg struct {
	name string
	err  error
}

func (m TemplatesModel) saveCmd(name string, clauses []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		t, err := m.templateService.Create(ctx, name, clauses)
		if err != nil {
			return templateSavedMsg{err: err}
		}

		return templateSavedMsg{name: t.Name}
	}
}

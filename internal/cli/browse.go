package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/throughput/internal/cli/formatter"
	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/service"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse projects, features and stories interactively",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return withCode(ExitUsage, fmt.Errorf("browse needs an interactive terminal"))
			}
			_, err := tea.NewProgram(newBrowseModel(cmd.Context(), app.Projects), tea.WithAltScreen()).Run()
			return err
		},
	}
}

type browseLevel int

const (
	levelProjects browseLevel = iota
	levelFeatures
	levelStories
)

// projectsLoadedMsg carries the project list.
type projectsLoadedMsg struct {
	projects []domain.ProjectSummary
	err      error
}

// projectLoadedMsg carries one project with its features and stories.
type projectLoadedMsg struct {
	detail *service.ProjectDetail
	err    error
}

type browseKeys struct {
	Open key.Binding
	Back key.Binding
	Quit key.Binding
}

func defaultBrowseKeys() browseKeys {
	return browseKeys{
		Open: key.NewBinding(key.WithKeys("enter", "l", "right"), key.WithHelp("enter", "open")),
		Back: key.NewBinding(key.WithKeys("esc", "h", "left", "backspace"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// browseModel drills down from projects to features to stories.
type browseModel struct {
	ctx      context.Context
	projects service.ProjectService
	keys     browseKeys
	table    table.Model

	level    browseLevel
	list     []domain.ProjectSummary
	detail   *service.ProjectDetail
	feature  int
	loading  bool
	err      error
	quitting bool
}

func newBrowseModel(ctx context.Context, projects service.ProjectService) *browseModel {
	t := table.New(table.WithFocused(true), table.WithHeight(15))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true).
		Foreground(formatter.ColorHeader).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(formatter.ColorFg).Background(formatter.ColorBlue).Bold(false)
	t.SetStyles(styles)

	return &browseModel{
		ctx:      ctx,
		projects: projects,
		keys:     defaultBrowseKeys(),
		table:    t,
		loading:  true,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadProjects()
}

func (m *browseModel) loadProjects() tea.Cmd {
	ctx, svc := m.ctx, m.projects
	return func() tea.Msg {
		projects, err := svc.List(ctx)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (m *browseModel) loadProject(id int64) tea.Cmd {
	ctx, svc := m.ctx, m.projects
	return func() tea.Msg {
		detail, err := svc.Inspect(ctx, id)
		return projectLoadedMsg{detail: detail, err: err}
	}
}

const (
	// browseChromeLines is the breadcrumb, help and spacing around the table.
	browseChromeLines = 6
	minTableRows      = 3
)

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.list = msg.projects
		m.showProjects()
		return m, nil

	case projectLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.detail = msg.detail
		m.showFeatures()
		return m, nil

	case tea.WindowSizeMsg:
		// SetHeight includes the header line; keep at least minTableRows rows.
		m.table.SetHeight(max(msg.Height-browseChromeLines, minTableRows+1))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Open):
			return m, m.open()
		case key.Matches(msg, m.keys.Back):
			m.back()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *browseModel) open() tea.Cmd {
	if m.loading || len(m.table.Rows()) == 0 {
		return nil
	}
	i := m.table.Cursor()
	switch m.level {
	case levelProjects:
		m.loading = true
		m.err = nil
		return m.loadProject(m.list[i].ID)
	case levelFeatures:
		m.feature = i
		m.showStories()
	}
	return nil
}

func (m *browseModel) back() {
	m.err = nil
	switch m.level {
	case levelStories:
		m.showFeatures()
		m.table.SetCursor(m.feature)
	case levelFeatures:
		m.detail = nil
		m.showProjects()
	}
}

// setTable swaps columns and rows. Rows are cleared first so they never
// outnumber the columns while the table re-renders.
func (m *browseModel) setTable(cols []table.Column, rows []table.Row) {
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m *browseModel) showProjects() {
	m.level = levelProjects
	rows := make([]table.Row, 0, len(m.list))
	for _, p := range m.list {
		rows = append(rows, table.Row{
			fmt.Sprint(p.ID), p.Name, fmt.Sprint(p.FeatureCount), fmt.Sprint(p.StoryCount),
			formatter.HumanTimestamp(p.CreatedAt),
		})
	}
	m.setTable([]table.Column{
		{Title: "ID", Width: 5},
		{Title: "Project", Width: 30},
		{Title: "Features", Width: 8},
		{Title: "Stories", Width: 8},
		{Title: "Imported", Width: 18},
	}, rows)
}

func (m *browseModel) showFeatures() {
	m.level = levelFeatures
	rows := make([]table.Row, 0, len(m.detail.Features))
	for _, f := range m.detail.Features {
		t := f.Totals
		rows = append(rows, table.Row{
			f.Name, fmt.Sprint(len(f.Stories)), formatter.Num(t.TotalStoryPoints),
			formatter.Num(t.TotalManDays), formatter.Num(t.ActualTotalManDays),
			formatter.Percent(t.DefectRemovalEfficiency),
		})
	}
	m.setTable([]table.Column{
		{Title: "Feature", Width: 28},
		{Title: "Stories", Width: 7},
		{Title: "Points", Width: 8},
		{Title: "Est. MD", Width: 8},
		{Title: "Actual MD", Width: 9},
		{Title: "DRE", Width: 7},
	}, rows)
}

func (m *browseModel) showStories() {
	m.level = levelStories
	f := m.detail.Features[m.feature]
	rows := make([]table.Row, 0, len(f.Stories))
	for _, s := range f.Stories {
		actual, prod, done := "--", "--", ""
		if p := s.Productivity; p != nil {
			actual = formatter.Num(p.HoursActual)
			prod = formatter.Num(p.Productivity)
			if p.Completed {
				done = "✔"
			}
		}
		rows = append(rows, table.Row{
			s.Title, formatter.Num(s.HoursEstimated), formatter.Num(s.StoryPoints), actual, prod, done,
		})
	}
	m.setTable([]table.Column{
		{Title: "Story", Width: 30},
		{Title: "Hours", Width: 7},
		{Title: "Points", Width: 7},
		{Title: "Actual", Width: 7},
		{Title: "Prod.", Width: 6},
		{Title: "Done", Width: 4},
	}, rows)
}

func (m *browseModel) breadcrumb() string {
	parts := []string{"Projects"}
	if m.level >= levelFeatures && m.detail != nil {
		parts = append(parts, m.detail.Project.Name)
	}
	if m.level == levelStories {
		parts = append(parts, m.detail.Features[m.feature].Name)
	}
	return strings.Join(parts, " › ")
}

func (m *browseModel) helpLine() string {
	bindings := []key.Binding{m.keys.Open, m.keys.Back, m.keys.Quit}
	if m.level == levelStories {
		bindings = bindings[1:]
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, formatter.StyleYellow.Render(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, "  ")
}

func (m *browseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render(m.breadcrumb()) + "\n\n")

	switch {
	case m.loading:
		b.WriteString("  " + formatter.Dim("Loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + formatter.Error(m.err.Error()) + "\n")
	case len(m.table.Rows()) == 0 && m.level == levelProjects:
		b.WriteString("  " + formatter.Dim("No projects found. Import a CSV first.") + "\n")
	default:
		b.WriteString(m.table.View() + "\n")
	}

	b.WriteString("\n  " + m.helpLine() + "\n")
	return b.String()
}

package browse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/compozy/usertable/cli/helpers"
	"github.com/compozy/usertable/cli/tui/components"
	"github.com/compozy/usertable/cli/tui/models"
	"github.com/compozy/usertable/cli/tui/styles"
	"github.com/compozy/usertable/engine/record"
	"github.com/compozy/usertable/engine/table"
	"github.com/compozy/usertable/engine/table/sorting"
	"github.com/compozy/usertable/pkg/format"
	"github.com/compozy/usertable/pkg/logger"
	"github.com/compozy/usertable/pkg/theme"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	// title, filter, two header lines, footer, detail, status and help
	chromeLines = 8
)

// usersLoadedMsg carries the result of a fetch.
type usersLoadedMsg struct {
	records []record.Record
	err     error
}

// Params wires the collaborators of the browser model.
type Params struct {
	Source    record.Source
	Options   table.Options
	Timeout   time.Duration
	Store     theme.Store
	RowHeight int
	// Copy writes text to the clipboard; defaults to the system clipboard.
	Copy func(string) error
}

// Model is the interactive users browser. The cursor is an index into the
// filtered list so it survives view mode switches.
type Model struct {
	models.BaseModel
	log       logger.Logger
	ctrl      *table.Controller
	source    record.Source
	timeout   time.Duration
	store     theme.Store
	rowHeight int
	theme     styles.Theme
	table     *components.UsersTable
	keys      components.KeyMap
	help      help.Model
	spinner   spinner.Model
	filter    textinput.Model
	filtering bool
	cursor    int
	status    string
	copy      func(string) error
}

func NewModel(ctx context.Context, p Params) *Model {
	if p.Copy == nil {
		p.Copy = clipboard.WriteAll
	}
	if p.Store == nil {
		p.Store = theme.NewMemoryStore(p.Options.Dark)
	}
	if p.RowHeight < 1 {
		p.RowHeight = 1
	}
	th := styles.For(p.Options.Dark)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = th.Info
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "Search by name or email"
	input.CharLimit = 128
	input.SetValue(p.Options.Filter)
	return &Model{
		BaseModel: models.NewBaseModel(ctx),
		log:       logger.FromContext(ctx),
		ctrl:      table.New(ctx, p.Options),
		source:    p.Source,
		timeout:   p.Timeout,
		store:     p.Store,
		rowHeight: p.RowHeight,
		theme:     th,
		table:     components.NewUsersTable(th, defaultWidth),
		keys:      components.DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		filter:    input,
		copy:      p.Copy,
	}
}

// Controller exposes the underlying table controller.
func (m *Model) Controller() *table.Controller {
	return m.ctrl
}

// Cursor returns the index of the highlighted row in the filtered list.
func (m *Model) Cursor() int {
	return m.cursor
}

func (m *Model) Filtering() bool {
	return m.filtering
}

// Status returns the last flash message.
func (m *Model) Status() string {
	return m.status
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

// fetch runs the source off the update loop.
func (m *Model) fetch() tea.Cmd {
	source, timeout, ctx := m.source, m.timeout, m.Context()
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		records, err := source.Fetch(ctx)
		return usersLoadedMsg{records: records, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd := m.BaseModel.Update(msg); cmd != nil {
		return m, cmd
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	case usersLoadedMsg:
		if err := m.ctrl.Complete(msg.records, msg.err); err != nil {
			m.log.Debug("stale fetch result dropped", "error", err)
			return m, nil
		}
		m.SetError(msg.err)
		m.table.Reset()
		m.resize()
		m.setCursor(m.cursor)
		return m, nil
	case spinner.TickMsg:
		if m.ctrl.Phase() != table.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.filtering {
			return m, m.updateFilter(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != m.ctrl.View().Filter {
		m.report(m.ctrl.SetFilter(m.filter.Value()))
		m.cursor = 0
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quit()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Refetch):
		return m.refetch()
	}
	if m.ctrl.Phase() != table.PhaseReady {
		return nil
	}
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Up):
		m.setCursor(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		m.setCursor(m.cursor + 1)
	case key.Matches(msg, m.keys.Toggle):
		if row := m.cursorRow(); row != nil {
			m.report(m.ctrl.ToggleRow(row.Record.ID))
		}
	case key.Matches(msg, m.keys.ToggleAll):
		m.report(m.ctrl.ToggleAll())
	case key.Matches(msg, m.keys.SortName):
		m.sort(sorting.KeyName)
	case key.Matches(msg, m.keys.SortBalance):
		m.sort(sorting.KeyBalance)
	case key.Matches(msg, m.keys.SortEmail):
		m.sort(sorting.KeyEmail)
	case key.Matches(msg, m.keys.SortDate):
		m.sort(sorting.KeyRegistered)
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m.filter.Focus()
	case key.Matches(msg, m.keys.ClearFilter):
		m.filter.SetValue("")
		m.report(m.ctrl.SetFilter(""))
		m.cursor = 0
	case key.Matches(msg, m.keys.NextPage):
		m.turnPage(1)
	case key.Matches(msg, m.keys.PrevPage):
		m.turnPage(-1)
	case key.Matches(msg, m.keys.First):
		m.setCursor(0)
	case key.Matches(msg, m.keys.Last):
		m.setCursor(m.ctrl.View().Filtered - 1)
	case key.Matches(msg, m.keys.PageSize):
		m.report(m.ctrl.CyclePageSize())
		m.cursor = 0
	case key.Matches(msg, m.keys.ViewMode):
		m.report(m.ctrl.ToggleViewMode())
		m.setCursor(m.cursor)
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Copy):
		m.copySelected()
	}
	return nil
}

func (m *Model) refetch() tea.Cmd {
	if err := m.ctrl.Refetch(); err != nil {
		return nil
	}
	m.status = ""
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m *Model) sort(k sorting.Key) {
	m.report(m.ctrl.RequestSort(k))
	m.setCursor(m.cursor)
}

// setCursor clamps index to the filtered list and brings its row into view.
func (m *Model) setCursor(index int) {
	view := m.ctrl.View()
	if !view.Ready() {
		return
	}
	m.cursor = max(0, min(index, view.Filtered-1))
	if view.Mode == table.ViewVirtualized {
		m.report(m.ctrl.ScrollToRow(m.cursor))
		return
	}
	if view.Page != nil && view.Page.Size > 0 {
		if page := m.cursor/view.Page.Size + 1; page != view.Page.Current {
			m.report(m.ctrl.SetPage(page))
		}
	}
}

// turnPage moves a page in paginated mode and a screenful when virtualized.
func (m *Model) turnPage(delta int) {
	view := m.ctrl.View()
	if view.Mode == table.ViewVirtualized {
		rows := 1
		if view.Window != nil {
			rows = max(1, view.Window.Last-view.Window.First)
		}
		m.setCursor(m.cursor + delta*rows)
		return
	}
	if delta > 0 {
		m.report(m.ctrl.NextPage())
	} else {
		m.report(m.ctrl.PrevPage())
	}
	if page := m.ctrl.View().Page; page != nil {
		m.cursor = min((page.Current-1)*page.Size, max(0, m.ctrl.View().Filtered-1))
	}
}

func (m *Model) toggleTheme() {
	dark, err := m.ctrl.ToggleTheme()
	if err != nil {
		m.report(err)
		return
	}
	if err := m.store.SetDark(dark); err != nil {
		m.log.Warn("failed to save theme preference", "error", err)
		m.status = m.theme.Warning.Render("Theme not saved: " + err.Error())
	}
	m.theme = styles.For(dark)
	m.table.SetTheme(m.theme)
	m.spinner.Style = m.theme.Info
}

func (m *Model) copySelected() {
	selected := m.ctrl.Selected()
	if len(selected) == 0 {
		m.status = m.theme.Muted.Render("Nothing selected")
		return
	}
	emails := make([]string, len(selected))
	for i := range selected {
		emails[i] = selected[i].Email
	}
	if err := m.copy(strings.Join(emails, "\n")); err != nil {
		cliErr := helpers.WrapCliError(helpers.CodeClipboard, "Copy failed", err)
		m.log.Warn("failed to copy to clipboard", "error", cliErr)
		m.status = m.theme.Error.Render(cliErr.Message + ": " + err.Error())
		return
	}
	m.status = m.theme.Success.Render(fmt.Sprintf(
		"Copied %d %s", len(emails), helpers.Pluralize(len(emails), "email", "emails"),
	))
}

// resize hands the space left for rows to the controller.
func (m *Model) resize() {
	if !m.IsReady() || m.ctrl.Phase() != table.PhaseReady {
		return
	}
	_, height := m.Size()
	m.report(m.ctrl.Resize(max(1, height-chromeLines) * m.rowHeight))
}

func (m *Model) report(err error) {
	if err != nil {
		m.log.Debug("intent rejected", "error", err)
	}
}

// failureCause names the transport problem behind a failed fetch, if any.
func failureCause(err error) string {
	switch {
	case err == nil:
		return ""
	case helpers.IsTimeoutError(err):
		return "The request timed out."
	case helpers.IsNetworkError(err):
		return "The server could not be reached."
	default:
		return ""
	}
}

func (m *Model) cursorRow() *table.Row {
	view := m.ctrl.View()
	for i := range view.Rows {
		if view.Rows[i].Index == m.cursor {
			return &view.Rows[i]
		}
	}
	return nil
}

func (m *Model) View() string {
	if m.IsQuitting() {
		return ""
	}
	view := m.ctrl.View()
	width, height := m.Size()
	if !m.IsReady() {
		width, height = defaultWidth, defaultHeight
	}
	lines := []string{m.titleLine(&view)}
	switch view.Phase {
	case table.PhaseLoading:
		lines = append(lines, m.spinner.View()+" Loading users...")
	case table.PhaseError:
		lines = append(lines, m.theme.Error.Render(view.Message))
		if cause := failureCause(m.Error()); cause != "" {
			lines = append(lines, m.theme.Muted.Render(cause))
		}
		lines = append(lines, m.theme.Muted.Render("Press r to try again."))
	default:
		lines = append(lines, m.filterLine(&view))
		if view.Empty() {
			lines = append(lines, m.theme.Warning.Render(fmt.Sprintf("No users match %q", view.Filter)))
		} else {
			lines = append(lines, m.table.Render(&view, m.cursor))
		}
		if view.Mode == table.ViewVirtualized {
			lines = append(lines, components.RenderScrollStatus(&m.theme, &view))
		} else {
			lines = append(lines, components.RenderPagination(&m.theme, view.Page))
		}
		lines = append(lines, m.detailLine())
	}
	if m.status != "" {
		lines = append(lines, m.status)
	}
	lines = append(lines, m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(content)
}

func (m *Model) titleLine(view *table.View) string {
	title := m.theme.Title.Render("Users")
	if !view.Ready() {
		return title
	}
	meta := fmt.Sprintf(" %s %s · %s selected · sort %s · %s",
		format.Count(view.Total), helpers.Pluralize(view.Total, "user", "users"),
		format.Count(view.Selected), view.Sort, view.Mode)
	return title + m.theme.Muted.Render(meta)
}

func (m *Model) filterLine(view *table.View) string {
	switch {
	case m.filtering:
		return m.filter.View()
	case view.Filter != "":
		return m.theme.Info.Render("Filter: "+view.Filter) + m.theme.Muted.Render("  (esc to clear)")
	default:
		return m.theme.Muted.Render("Press / to filter")
	}
}

// detailLine shows the full registration timestamp of the highlighted row.
func (m *Model) detailLine() string {
	row := m.cursorRow()
	if row == nil {
		return ""
	}
	return m.theme.Muted.Render(fmt.Sprintf("%s · registered %s",
		row.Record.Email, format.DateDetailed(row.Record.RegisteredAt)))
}

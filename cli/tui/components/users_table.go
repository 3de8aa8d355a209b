package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	cliutils "github.com/compozy/usertable/cli/helpers"
	"github.com/compozy/usertable/cli/tui/styles"
	"github.com/compozy/usertable/engine/record"
	"github.com/compozy/usertable/engine/table"
	"github.com/compozy/usertable/engine/table/selection"
	"github.com/compozy/usertable/engine/table/sorting"
	"github.com/compozy/usertable/pkg/format"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultRowCacheSize = 512
	checkboxWidth       = 3
	balanceWidth        = 14
	dateWidth           = 13
	statusWidth         = 8
	minTextColumnWidth  = 8
	columnGap           = 1
)

// Column is one rendered column. Sortable columns carry their sort key and
// the digit that triggers it.
type Column struct {
	Title string
	Key   sorting.Key
	Hint  string
	Width int
	Align lipgloss.Position
}

// rowCells holds the formatted, untruncated cells of one record.
type rowCells struct {
	name       string
	email      string
	balance    string
	registered string
	status     string
	active     bool
}

// UsersTable renders table views as fixed-width terminal rows. Formatted
// cells are cached per record id; call Reset after the collection changes.
type UsersTable struct {
	theme   styles.Theme
	width   int
	columns []Column
	cache   *lru.Cache[string, rowCells]
}

func NewUsersTable(theme styles.Theme, width int) *UsersTable {
	cache, err := lru.New[string, rowCells](defaultRowCacheSize)
	if err != nil {
		panic(fmt.Sprintf("row cache: %v", err))
	}
	t := &UsersTable{theme: theme, cache: cache}
	t.SetWidth(width)
	return t
}

func (t *UsersTable) SetTheme(theme styles.Theme) {
	t.theme = theme
}

// SetWidth recomputes the column layout for a terminal width.
func (t *UsersTable) SetWidth(width int) {
	t.width = width
	fixed := checkboxWidth + balanceWidth + dateWidth + statusWidth + 5*columnGap
	text := max(width-fixed, 2*minTextColumnWidth)
	nameWidth := max(minTextColumnWidth, text*2/5)
	emailWidth := max(minTextColumnWidth, text-nameWidth)
	t.columns = []Column{
		{Title: "Name", Key: sorting.KeyName, Hint: "1", Width: nameWidth, Align: lipgloss.Left},
		{Title: "Email", Key: sorting.KeyEmail, Hint: "3", Width: emailWidth, Align: lipgloss.Left},
		{Title: "Balance", Key: sorting.KeyBalance, Hint: "2", Width: balanceWidth, Align: lipgloss.Right},
		{Title: "Registered", Key: sorting.KeyRegistered, Hint: "4", Width: dateWidth, Align: lipgloss.Left},
		{Title: "Status", Width: statusWidth, Align: lipgloss.Left},
	}
}

func (t *UsersTable) Columns() []Column {
	return t.columns
}

// Reset drops every cached row.
func (t *UsersTable) Reset() {
	t.cache.Purge()
}

// Warm formats rows ahead of display, used for the overscan rows of a
// virtualized window.
func (t *UsersTable) Warm(rows []table.Row) {
	for i := range rows {
		t.cells(&rows[i].Record)
	}
}

// CacheLen reports how many formatted rows are cached.
func (t *UsersTable) CacheLen() int {
	return t.cache.Len()
}

func (t *UsersTable) cells(rec *record.Record) rowCells {
	if c, ok := t.cache.Get(rec.ID); ok {
		return c
	}
	status := "Inactive"
	if rec.Active {
		status = "Active"
	}
	c := rowCells{
		name:       rec.Name,
		email:      rec.Email,
		balance:    format.Currency(rec.Balance),
		registered: format.DateShort(rec.RegisteredAt),
		status:     status,
		active:     rec.Active,
	}
	t.cache.Add(rec.ID, c)
	return c
}

// Checkbox renders the select-all state.
func Checkbox(status selection.Status) string {
	switch status {
	case selection.All:
		return "[x]"
	case selection.Some:
		return "[-]"
	default:
		return "[ ]"
	}
}

func rowCheckbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

// Header renders the column titles with sort arrows and key hints.
func (t *UsersTable) Header(view *table.View) string {
	parts := []string{Checkbox(view.Selection)}
	for _, col := range t.columns {
		title := col.Title
		if col.Key != "" {
			title = fmt.Sprintf("%s %s", col.Title, col.Hint)
			if arrow := sorting.Indicator(view.Sort, col.Key); arrow != "" {
				title = fmt.Sprintf("%s %s", col.Title, arrow)
			}
		}
		parts = append(parts, align(title, col.Width, col.Align))
	}
	return t.theme.Header.Render(strings.Join(parts, " "))
}

// Row renders one row; cursor highlights it.
func (t *UsersTable) Row(row *table.Row, cursor bool) string {
	c := t.cells(&row.Record)
	values := []string{c.name, c.email, c.balance, c.registered, c.status}
	parts := []string{rowCheckbox(row.Selected)}
	for i, col := range t.columns {
		parts = append(parts, align(values[i], col.Width, col.Align))
	}
	line := strings.Join(parts, " ")
	switch {
	case cursor:
		return t.theme.Cursor.Render(line)
	case row.Selected:
		return t.theme.Selected.Render(line)
	case !c.active:
		return t.theme.Muted.Render(line)
	default:
		return t.theme.Cell.Render(line)
	}
}

// Body renders the rows that should be on screen. In virtualized mode only
// the rows intersecting the viewport are drawn; overscan rows are warmed.
func (t *UsersTable) Body(view *table.View, cursor int) []string {
	lines := make([]string, 0, len(view.Rows))
	for i := range view.Rows {
		row := &view.Rows[i]
		if view.Window != nil && (row.Index < view.Window.First || row.Index > view.Window.Last) {
			t.cells(&row.Record)
			continue
		}
		lines = append(lines, t.Row(row, row.Index == cursor))
	}
	return lines
}

// Render joins the header and body.
func (t *UsersTable) Render(view *table.View, cursor int) string {
	lines := append([]string{t.Header(view)}, t.Body(view, cursor)...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func align(s string, width int, pos lipgloss.Position) string {
	s = cliutils.Truncate(s, width)
	if pos == lipgloss.Right {
		return strings.Repeat(" ", max(0, width-lipgloss.Width(s))) + s
	}
	return cliutils.PadRight(s, width)
}

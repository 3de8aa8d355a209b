package components

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/compozy/usertable/cli/tui/styles"
	"github.com/compozy/usertable/engine/record"
	"github.com/compozy/usertable/engine/table"
	"github.com/compozy/usertable/engine/table/selection"
	"github.com/compozy/usertable/engine/table/sorting"
	"github.com/compozy/usertable/engine/table/virtual"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func users(n int) []record.Record {
	out := make([]record.Record, n)
	for i := range out {
		out[i] = record.Record{
			ID:           fmt.Sprintf("user-%d", i+1),
			Name:         fmt.Sprintf("User %d", i+1),
			Email:        fmt.Sprintf("user.%d@mail.com", i+1),
			Balance:      decimal.NewFromInt(int64(1000 + i)),
			RegisteredAt: time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
			Active:       i%2 == 0,
		}
	}
	return out
}

func controller(t *testing.T, opts table.Options, n int) *table.Controller {
	t.Helper()
	c := table.New(context.Background(), opts)
	require.NoError(t, c.Complete(users(n), nil))
	return c
}

func TestCheckbox(t *testing.T) {
	t.Run("Should render the tri-state header box", func(t *testing.T) {
		assert.Equal(t, "[x]", Checkbox(selection.All))
		assert.Equal(t, "[-]", Checkbox(selection.Some))
		assert.Equal(t, "[ ]", Checkbox(selection.None))
	})
}

func TestUsersTable_Header(t *testing.T) {
	t.Run("Should show key hints and the active sort arrow", func(t *testing.T) {
		c := controller(t, table.DefaultOptions(), 3)
		require.NoError(t, c.RequestSort(sorting.KeyName))
		view := c.View()
		header := NewUsersTable(styles.For(false), 120).Header(&view)
		assert.Contains(t, header, "Name ↑")
		assert.Contains(t, header, "Balance 2")
		assert.Contains(t, header, "Status")
	})
}

func TestUsersTable_Row(t *testing.T) {
	t.Run("Should format currency, date and selection", func(t *testing.T) {
		c := controller(t, table.DefaultOptions(), 3)
		require.NoError(t, c.ToggleRow("user-1"))
		view := c.View()
		grid := NewUsersTable(styles.For(true), 120)
		line := grid.Row(&view.Rows[0], false)
		assert.True(t, strings.HasPrefix(line, "[x]"))
		assert.Contains(t, line, "$1,000.00")
		assert.Contains(t, line, "Jan 15, 2023")
		assert.Contains(t, line, "Active")
		assert.Equal(t, 1, grid.CacheLen())
	})
	t.Run("Should truncate long cells on narrow terminals", func(t *testing.T) {
		c := controller(t, table.DefaultOptions(), 1)
		view := c.View()
		grid := NewUsersTable(styles.For(false), 40)
		line := grid.Row(&view.Rows[0], false)
		assert.Contains(t, line, "user.1@…")
	})
}

func TestUsersTable_Body(t *testing.T) {
	t.Run("Should draw one line per row on a page", func(t *testing.T) {
		c := controller(t, table.DefaultOptions(), 25)
		view := c.View()
		lines := NewUsersTable(styles.For(false), 120).Body(&view, 0)
		assert.Len(t, lines, 10)
	})
	t.Run("Should skip overscan rows but warm their cache", func(t *testing.T) {
		opts := table.DefaultOptions()
		opts.ViewMode = table.ViewVirtualized
		opts.Viewport = virtual.Viewport{RowHeight: 1, Height: 5, Overscan: 2}
		c := controller(t, opts, 50)
		require.NoError(t, c.Scroll(10))
		view := c.View()
		grid := NewUsersTable(styles.For(false), 120)
		lines := grid.Body(&view, 12)
		assert.Len(t, lines, 5)
		assert.Equal(t, 9, grid.CacheLen())
		grid.Reset()
		assert.Equal(t, 0, grid.CacheLen())
	})
}

func TestRenderPagination(t *testing.T) {
	t.Run("Should render pages, ellipsis and summary", func(t *testing.T) {
		c := controller(t, table.DefaultOptions(), 106)
		require.NoError(t, c.SetPage(6))
		view := c.View()
		theme := styles.For(false)
		out := RenderPagination(&theme, view.Page)
		assert.Contains(t, out, "‹ Prev")
		assert.Contains(t, out, "…")
		assert.Contains(t, out, "11")
		assert.Contains(t, out, "Showing 51–60 of 106 users · 10 per page")
	})
	t.Run("Should render nothing without a page", func(t *testing.T) {
		theme := styles.For(false)
		assert.Empty(t, RenderPagination(&theme, nil))
	})
}

func TestRenderScrollStatus(t *testing.T) {
	t.Run("Should describe the visible rows", func(t *testing.T) {
		opts := table.DefaultOptions()
		opts.ViewMode = table.ViewVirtualized
		opts.Viewport = virtual.Viewport{RowHeight: 1, Height: 10, Overscan: 2}
		view := controller(t, opts, 1200).View()
		theme := styles.For(false)
		assert.Contains(t, RenderScrollStatus(&theme, &view), "Rows 1–10 of 1,200 users · rendering 12")
	})
}

package components

import (
	"fmt"
	"strings"

	"github.com/compozy/usertable/cli/tui/styles"
	"github.com/compozy/usertable/engine/table"
	"github.com/compozy/usertable/engine/table/paging"
	"github.com/compozy/usertable/pkg/format"
)

// RenderPagination draws the page selector, the summary and the page size.
func RenderPagination(theme *styles.Theme, page *table.PageView) string {
	if page == nil {
		return ""
	}
	parts := make([]string, 0, len(page.Items)+2)
	parts = append(parts, control(theme, "‹ Prev", page.Controls.HasPrev))
	for _, item := range page.Items {
		switch {
		case item.Ellipsis:
			parts = append(parts, theme.Muted.Render(" … "))
		case item.Page == page.Current:
			parts = append(parts, theme.PageActive.Render(item.String()))
		default:
			parts = append(parts, theme.Page.Render(item.String()))
		}
	}
	parts = append(parts, control(theme, "Next ›", page.Controls.HasNext))
	summary := theme.Muted.Render(fmt.Sprintf("%s · %d per page", page.Summary, page.Size))
	return strings.Join(parts, "") + "  " + summary
}

func control(theme *styles.Theme, label string, enabled bool) string {
	if enabled {
		return theme.Page.Render(label)
	}
	return theme.Disabled.Render(label)
}

// RenderScrollStatus summarizes the virtualized viewport.
func RenderScrollStatus(theme *styles.Theme, view *table.View) string {
	w := view.Window
	if w == nil {
		return ""
	}
	if w.Count == 0 {
		return theme.Muted.Render(paging.Range{}.String())
	}
	return theme.Muted.Render(fmt.Sprintf(
		"Rows %s–%s of %s users · rendering %d",
		format.Count(w.First+1), format.Count(w.Last+1), format.Count(view.Filtered), w.Count,
	))
}

package paging

import (
	"fmt"
	"slices"
)

// VisiblePages is the width of the page-button window.
const VisiblePages = 5

// DefaultSizes are the rows-per-page options offered to the user.
var DefaultSizes = []int{10, 25, 50, 100}

// PageCount returns max(1, ceil(total/size)). Sizes below 1 count as 1.
func PageCount(total, size int) int {
	if size < 1 {
		size = 1
	}
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Clamp moves page into [1, PageCount(total, size)].
func Clamp(page, total, size int) int {
	return min(max(page, 1), PageCount(total, size))
}

// Paginate returns the records of the clamped page. The result aliases the
// input; callers must not modify it.
func Paginate[T any](items []T, size, page int) []T {
	if size < 1 {
		size = 1
	}
	page = Clamp(page, len(items), size)
	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))
	return items[start:end:end]
}

// Item is one entry of the page selector: a page number or an ellipsis.
type Item struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func (i Item) String() string {
	if i.Ellipsis {
		return "..."
	}
	return fmt.Sprintf("%d", i.Page)
}

// Numbers builds the page selector for current out of pages: every page when
// there are at most VisiblePages, otherwise a window centered on current,
// flanked by the first/last page and ellipses where pages are skipped.
func Numbers(current, pages int) []Item {
	if pages < 1 {
		pages = 1
	}
	current = min(max(current, 1), pages)
	if pages <= VisiblePages {
		items := make([]Item, 0, pages)
		for p := 1; p <= pages; p++ {
			items = append(items, Item{Page: p})
		}
		return items
	}
	start := max(1, current-VisiblePages/2)
	end := min(pages, start+VisiblePages-1)
	if end-start+1 < VisiblePages {
		start = max(1, end-VisiblePages+1)
	}
	items := make([]Item, 0, VisiblePages+4)
	if start > 1 {
		items = append(items, Item{Page: 1})
	}
	if start > 2 {
		items = append(items, Item{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		items = append(items, Item{Page: p})
	}
	if end < pages-1 {
		items = append(items, Item{Ellipsis: true})
	}
	if end < pages {
		items = append(items, Item{Page: pages})
	}
	return items
}

// Select returns the page an item navigates to. Ellipses keep current.
func Select(item Item, current int) int {
	if item.Ellipsis || item.Page < 1 {
		return current
	}
	return item.Page
}

// Controls reports which of the previous/next buttons are enabled.
type Controls struct {
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// ControlsFor enables previous past page one and next before the last page.
func ControlsFor(current, pages int) Controls {
	return Controls{HasPrev: current > 1, HasNext: current < pages}
}

// Range is the 1-based span of rows shown out of Total.
type Range struct {
	First int `json:"first"`
	Last  int `json:"last"`
	Total int `json:"total"`
}

// Summary computes the visible span for the clamped page.
func Summary(page, size, total int) Range {
	if total <= 0 {
		return Range{}
	}
	if size < 1 {
		size = 1
	}
	page = Clamp(page, total, size)
	return Range{
		First: (page-1)*size + 1,
		Last:  min(page*size, total),
		Total: total,
	}
}

func (r Range) String() string {
	return fmt.Sprintf("Showing %d–%d of %d users", r.First, r.Last, r.Total)
}

// NextSize returns the option after current in sizes, wrapping around. An
// unknown current restarts at the first option.
func NextSize(sizes []int, current int) int {
	if len(sizes) == 0 {
		return current
	}
	i := slices.Index(sizes, current)
	return sizes[(i+1)%len(sizes)]
}

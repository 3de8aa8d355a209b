package table

import (
	"github.com/compozy/usertable/engine/record"
	"github.com/compozy/usertable/engine/table/filter"
	"github.com/compozy/usertable/engine/table/paging"
	"github.com/compozy/usertable/engine/table/selection"
	"github.com/compozy/usertable/engine/table/sorting"
	"github.com/compozy/usertable/engine/table/virtual"
)

// Row is one materialized row. Index is its position in the filtered list.
type Row struct {
	Index    int           `json:"index"`
	Record   record.Record `json:"record"`
	Selected bool          `json:"selected"`
}

// PageView carries the pagination controls. It is nil in virtualized mode.
type PageView struct {
	Current  int             `json:"current"`
	Count    int             `json:"count"`
	Size     int             `json:"size"`
	Sizes    []int           `json:"sizes"`
	Items    []paging.Item   `json:"items"`
	Controls paging.Controls `json:"controls"`
	Range    paging.Range    `json:"range"`
	Summary  string          `json:"summary"`
}

// View is an immutable snapshot of everything a renderer needs. A new View
// is built after every intent; earlier views are never modified.
type View struct {
	Phase     Phase            `json:"phase"`
	Message   string           `json:"message,omitempty"`
	Mode      ViewMode         `json:"mode"`
	Dark      bool             `json:"dark"`
	Sort      sorting.State    `json:"sort"`
	Filter    string           `json:"filter"`
	Total     int              `json:"total"`
	Filtered  int              `json:"filtered"`
	Rows      []Row            `json:"rows"`
	Page      *PageView        `json:"page,omitempty"`
	Window    *virtual.Window  `json:"window,omitempty"`
	Selection selection.Status `json:"selection"`
	Selected  int              `json:"selected"`
}

func (v View) Ready() bool {
	return v.Phase == PhaseReady
}

// Empty reports a ready view whose filter matched nothing.
func (v View) Empty() bool {
	return v.Phase == PhaseReady && v.Filtered == 0
}

// recompute runs sort, filter and page/virtualize from the pristine
// collection and stores the resulting view.
func (c *Controller) recompute() {
	v := View{
		Phase:    c.phase,
		Message:  c.message,
		Mode:     c.mode,
		Dark:     c.dark,
		Sort:     c.sort,
		Filter:   c.filter,
		Rows:     []Row{},
		Selected: c.selection.Len(),
	}
	if c.phase != PhaseReady {
		c.filtered = nil
		c.view = v
		return
	}

	var opts []sorting.Option
	if c.foldCase {
		opts = append(opts, sorting.WithFoldCase())
	}
	c.filtered = filter.Apply(sorting.Order(c.records, c.sort, opts...), c.filter)
	v.Total = len(c.records)
	v.Filtered = len(c.filtered)

	var scope []record.Record
	switch c.mode {
	case ViewVirtualized:
		c.viewport = c.viewport.Clamp(len(c.filtered))
		w := c.viewport.Window(len(c.filtered))
		v.Window = &w
		scope = c.filtered
		for i, rec := range virtual.Slice(w, c.filtered) {
			v.Rows = append(v.Rows, c.row(w.Start+i, rec))
		}
	default:
		c.page = paging.Clamp(c.page, len(c.filtered), c.pageSize)
		pages := paging.PageCount(len(c.filtered), c.pageSize)
		rng := paging.Summary(c.page, c.pageSize, len(c.filtered))
		v.Page = &PageView{
			Current:  c.page,
			Count:    pages,
			Size:     c.pageSize,
			Sizes:    append([]int(nil), c.pageSizes...),
			Items:    paging.Numbers(c.page, pages),
			Controls: paging.ControlsFor(c.page, pages),
			Range:    rng,
			Summary:  rng.String(),
		}
		scope = paging.Paginate(c.filtered, c.pageSize, c.page)
		base := (c.page - 1) * c.pageSize
		for i, rec := range scope {
			v.Rows = append(v.Rows, c.row(base+i, rec))
		}
	}
	v.Selection = c.selection.Status(record.IDs(scope))
	c.view = v
}

func (c *Controller) row(index int, rec record.Record) Row {
	return Row{Index: index, Record: rec, Selected: c.selection.IsSelected(rec.ID)}
}

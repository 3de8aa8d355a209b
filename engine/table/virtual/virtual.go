package virtual

// DefaultOverscan matches the usual fixed-size list default.
const DefaultOverscan = 2

// Viewport describes a fixed-row-height scroll container. Units are
// arbitrary but must be shared by RowHeight, Height and Offset.
type Viewport struct {
	RowHeight int `json:"row_height"`
	Height    int `json:"height"`
	Offset    int `json:"offset"`
	Overscan  int `json:"overscan"`
}

// Window is the materialized range for n rows. First/Last bound the rows
// intersecting the viewport; Start/End extend them by the overscan. All
// bounds are inclusive. An empty window has Count == 0 and Last < First.
type Window struct {
	First       int `json:"first"`
	Last        int `json:"last"`
	Start       int `json:"start"`
	End         int `json:"end"`
	Offset      int `json:"offset"`
	RowHeight   int `json:"row_height"`
	TotalHeight int `json:"total_height"`
	Rows        int `json:"rows"`
	Count       int `json:"count"`
}

func (v Viewport) rowHeight() int {
	return max(v.RowHeight, 1)
}

// MaxOffset is the largest offset that still fills the viewport.
func (v Viewport) MaxOffset(n int) int {
	return max(0, n*v.rowHeight()-v.Height)
}

// Clamp returns v with Offset inside [0, MaxOffset(n)].
func (v Viewport) Clamp(n int) Viewport {
	v.Offset = min(max(v.Offset, 0), v.MaxOffset(n))
	return v
}

// Window computes the range of rows to materialize for n rows.
func (v Viewport) Window(n int) Window {
	v = v.Clamp(n)
	h := v.rowHeight()
	w := Window{
		Offset:      v.Offset,
		RowHeight:   h,
		TotalHeight: max(n, 0) * h,
		Rows:        max(n, 0),
		Last:        -1,
		End:         -1,
	}
	if n <= 0 || v.Height <= 0 {
		return w
	}
	overscan := max(v.Overscan, 0)
	w.First = v.Offset / h
	w.Last = min(n-1, (v.Offset+v.Height+h-1)/h-1)
	w.Start = max(0, w.First-overscan)
	w.End = min(n-1, w.Last+overscan)
	w.Count = w.End - w.Start + 1
	return w
}

// Visible is the number of rows intersecting the viewport, before overscan.
func (w Window) Visible() int {
	if w.Last < w.First {
		return 0
	}
	return w.Last - w.First + 1
}

// Contains reports whether row i is materialized.
func (w Window) Contains(i int) bool {
	return w.Count > 0 && i >= w.Start && i <= w.End
}

// RowOffset is the absolute top of row i inside the scroll space.
func (w Window) RowOffset(i int) int {
	return i * w.RowHeight
}

// Slice returns the materialized rows of items. The result aliases items.
func Slice[T any](w Window, items []T) []T {
	if w.Count == 0 || w.Start >= len(items) {
		return items[:0:0]
	}
	end := min(w.End+1, len(items))
	return items[w.Start:end:end]
}

// ScrollTo returns v positioned at offset, clamped for n rows.
func (v Viewport) ScrollTo(offset, n int) Viewport {
	v.Offset = offset
	return v.Clamp(n)
}

// ScrollBy moves the offset by delta, clamped for n rows.
func (v Viewport) ScrollBy(delta, n int) Viewport {
	return v.ScrollTo(v.Offset+delta, n)
}

// ScrollToRow scrolls the least amount needed for row i to be fully
// visible. Rows already fully visible leave the offset unchanged.
func (v Viewport) ScrollToRow(i, n int) Viewport {
	if n <= 0 {
		return v.ScrollTo(0, n)
	}
	i = min(max(i, 0), n-1)
	h := v.rowHeight()
	top := i * h
	bottom := top + h
	switch {
	case top < v.Offset:
		v.Offset = top
	case bottom > v.Offset+v.Height:
		v.Offset = bottom - v.Height
	}
	return v.Clamp(n)
}

// Resize changes the viewport height, keeping the offset valid for n rows.
func (v Viewport) Resize(height, n int) Viewport {
	v.Height = max(height, 0)
	return v.Clamp(n)
}

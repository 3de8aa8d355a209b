package virtual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestViewport_Window(t *testing.T) {
	t.Run("Should show rows 0 through 9 for a 600 high viewport of 60 high rows", func(t *testing.T) {
		w := Viewport{RowHeight: 60, Height: 600}.Window(106)

		assert.Equal(t, 0, w.First)
		assert.Equal(t, 9, w.Last)
		assert.Equal(t, 10, w.Visible())
		assert.Equal(t, 106*60, w.TotalHeight)
	})

	t.Run("Should extend the materialized range by the overscan", func(t *testing.T) {
		w := Viewport{RowHeight: 60, Height: 600, Overscan: DefaultOverscan}.Window(106)

		assert.Equal(t, 0, w.Start)
		assert.Equal(t, 11, w.End)
		assert.Equal(t, 12, w.Count)
	})

	t.Run("Should include partially visible rows", func(t *testing.T) {
		w := Viewport{RowHeight: 60, Height: 600, Offset: 30, Overscan: 2}.Window(106)

		assert.Equal(t, 0, w.First)
		assert.Equal(t, 10, w.Last)
		assert.Equal(t, 0, w.Start)
		assert.Equal(t, 12, w.End)
	})

	t.Run("Should clamp the offset at the end of the scroll space", func(t *testing.T) {
		w := Viewport{RowHeight: 60, Height: 600, Offset: 10_000, Overscan: 2}.Window(106)

		assert.Equal(t, 5760, w.Offset)
		assert.Equal(t, 96, w.First)
		assert.Equal(t, 105, w.Last)
		assert.Equal(t, 94, w.Start)
		assert.Equal(t, 105, w.End)
	})

	t.Run("Should clamp negative offsets to the top", func(t *testing.T) {
		w := Viewport{RowHeight: 1, Height: 10, Offset: -5}.Window(50)
		assert.Equal(t, 0, w.Offset)
		assert.Equal(t, 0, w.First)
	})

	t.Run("Should cover every row when they fit in the viewport", func(t *testing.T) {
		w := Viewport{RowHeight: 60, Height: 600, Offset: 200, Overscan: 2}.Window(5)

		assert.Equal(t, 0, w.Offset)
		assert.Equal(t, 0, w.Start)
		assert.Equal(t, 4, w.End)
		assert.Equal(t, rows(5), Slice(w, rows(5)))
	})

	t.Run("Should be empty without rows or height", func(t *testing.T) {
		for _, w := range []Window{
			Viewport{RowHeight: 60, Height: 600}.Window(0),
			Viewport{RowHeight: 60, Height: 0}.Window(10),
		} {
			assert.Equal(t, 0, w.Count)
			assert.Equal(t, 0, w.Visible())
			assert.Empty(t, Slice(w, rows(10)))
			assert.False(t, w.Contains(0))
		}
	})

	t.Run("Should produce identical rows when computed twice", func(t *testing.T) {
		v := Viewport{RowHeight: 3, Height: 20, Offset: 41, Overscan: 2}
		items := rows(100)

		first := Slice(v.Window(len(items)), items)
		second := Slice(v.Window(len(items)), items)

		require.NotEmpty(t, first)
		assert.Equal(t, first, second)
	})

	t.Run("Should treat non-positive row heights as one", func(t *testing.T) {
		w := Viewport{RowHeight: 0, Height: 4}.Window(10)
		assert.Equal(t, 3, w.Last)
		assert.Equal(t, 2, w.RowOffset(2))
	})
}

func TestViewport_Scroll(t *testing.T) {
	t.Run("Should scroll down just enough to reveal a row", func(t *testing.T) {
		v := Viewport{RowHeight: 60, Height: 600}.ScrollToRow(20, 106)

		assert.Equal(t, 660, v.Offset)
		w := v.Window(106)
		assert.Equal(t, 20, w.Last)
	})

	t.Run("Should scroll up to reveal a row above the viewport", func(t *testing.T) {
		v := Viewport{RowHeight: 60, Height: 600, Offset: 660}.ScrollToRow(5, 106)
		assert.Equal(t, 300, v.Offset)
	})

	t.Run("Should leave the offset alone for visible rows", func(t *testing.T) {
		v := Viewport{RowHeight: 60, Height: 600, Offset: 120}.ScrollToRow(4, 106)
		assert.Equal(t, 120, v.Offset)
	})

	t.Run("Should clamp relative scrolling", func(t *testing.T) {
		v := Viewport{RowHeight: 1, Height: 10}
		assert.Equal(t, 5, v.ScrollBy(5, 30).Offset)
		assert.Equal(t, 20, v.ScrollBy(500, 30).Offset)
		assert.Equal(t, 0, v.ScrollBy(-5, 30).Offset)
	})

	t.Run("Should keep the offset valid after a resize", func(t *testing.T) {
		v := Viewport{RowHeight: 1, Height: 10, Offset: 20}.Resize(25, 30)
		assert.Equal(t, 25, v.Height)
		assert.Equal(t, 5, v.Offset)
	})
}

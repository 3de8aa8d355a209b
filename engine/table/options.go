package table

import (
	"fmt"

	"github.com/compozy/usertable/engine/table/paging"
	"github.com/compozy/usertable/engine/table/sorting"
	"github.com/compozy/usertable/engine/table/virtual"
)

type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

type ViewMode string

const (
	ViewPaginated   ViewMode = "paginated"
	ViewVirtualized ViewMode = "virtualized"
)

func ParseViewMode(s string) (ViewMode, error) {
	mode := ViewMode(s)
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
	return mode, nil
}

func (m ViewMode) Valid() bool {
	return m == ViewPaginated || m == ViewVirtualized
}

func (m ViewMode) Toggle() ViewMode {
	if m == ViewVirtualized {
		return ViewPaginated
	}
	return ViewVirtualized
}

const (
	DefaultPageSize       = 10
	DefaultRowHeight      = 60
	DefaultViewportHeight = 600
)

// Options seeds a controller. Zero values fall back to the defaults.
type Options struct {
	PageSize  int
	PageSizes []int
	ViewMode  ViewMode
	Viewport  virtual.Viewport
	Sort      sorting.State
	Filter    string
	FoldCase  bool
	Dark      bool
}

func DefaultOptions() Options {
	return Options{
		PageSize:  DefaultPageSize,
		PageSizes: paging.DefaultSizes,
		ViewMode:  ViewPaginated,
		Viewport: virtual.Viewport{
			RowHeight: DefaultRowHeight,
			Height:    DefaultViewportHeight,
			Overscan:  virtual.DefaultOverscan,
		},
	}
}

func (o Options) normalize() Options {
	def := DefaultOptions()
	if o.PageSize < 1 {
		o.PageSize = def.PageSize
	}
	if len(o.PageSizes) == 0 {
		o.PageSizes = def.PageSizes
	}
	if !o.ViewMode.Valid() {
		o.ViewMode = def.ViewMode
	}
	if o.Viewport.RowHeight < 1 {
		o.Viewport.RowHeight = def.Viewport.RowHeight
	}
	if o.Viewport.Height < 0 {
		o.Viewport.Height = 0
	}
	if o.Viewport.Overscan < 0 {
		o.Viewport.Overscan = 0
	}
	if o.Sort.Key == "" || o.Sort.Direction == sorting.None {
		o.Sort = sorting.State{}
	}
	return o
}

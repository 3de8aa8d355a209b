package table

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/compozy/usertable/engine/record"
	"github.com/compozy/usertable/engine/table/paging"
	"github.com/compozy/usertable/engine/table/selection"
	"github.com/compozy/usertable/engine/table/sorting"
	"github.com/compozy/usertable/engine/table/virtual"
	"github.com/compozy/usertable/pkg/logger"
)

// FetchFailureMessage is shown instead of the table when the fetch fails.
const FetchFailureMessage = "Failed to fetch users. Please try again later."

var (
	ErrNotReady        = errors.New("users are not loaded")
	ErrNotLoading      = errors.New("no fetch is in progress")
	ErrInvalidPageSize = errors.New("page size must be positive")
	ErrInvalidViewMode = errors.New("invalid view mode")
	ErrInvalidSortKey  = errors.New("invalid sort key")
)

// Controller owns the table state and rebuilds an immutable View after each
// intent. It is not safe for concurrent use; callers serialize intents.
type Controller struct {
	log       logger.Logger
	phase     Phase
	message   string
	records   []record.Record
	filtered  []record.Record
	sort      sorting.State
	filter    string
	page      int
	pageSize  int
	pageSizes []int
	mode      ViewMode
	viewport  virtual.Viewport
	foldCase  bool
	dark      bool
	selection *selection.Tracker
	view      View
}

// New returns a controller in the loading phase.
func New(ctx context.Context, opts Options) *Controller {
	opts = opts.normalize()
	c := &Controller{
		log:       logger.FromContext(ctx).With("component", "table"),
		phase:     PhaseLoading,
		sort:      opts.Sort,
		filter:    opts.Filter,
		page:      1,
		pageSize:  opts.PageSize,
		pageSizes: opts.PageSizes,
		mode:      opts.ViewMode,
		viewport:  opts.Viewport,
		foldCase:  opts.FoldCase,
		dark:      opts.Dark,
		selection: selection.NewTracker(),
	}
	c.recompute()
	return c
}

func (c *Controller) Phase() Phase {
	return c.phase
}

// View returns the latest derived view.
func (c *Controller) View() View {
	return c.view
}

// Load runs a fetch against src and completes it.
func (c *Controller) Load(ctx context.Context, src record.Source) error {
	if c.phase != PhaseLoading {
		return ErrNotLoading
	}
	records, err := src.Fetch(ctx)
	if cerr := c.Complete(records, err); cerr != nil {
		return cerr
	}
	return err
}

// Complete resolves the pending fetch: records replace the collection
// wholesale on success, err moves the controller to the error phase.
func (c *Controller) Complete(records []record.Record, err error) error {
	if c.phase != PhaseLoading {
		return ErrNotLoading
	}
	if err != nil {
		c.log.Error("failed to fetch users", "error", err)
		c.phase = PhaseError
		c.message = FetchFailureMessage
		c.records = nil
		c.recompute()
		return nil
	}
	c.phase = PhaseReady
	c.message = ""
	c.records = slices.Clone(records)
	c.log.Debug("users loaded", "count", len(records), "selected", c.selection.Len())
	c.recompute()
	return nil
}

// Refetch is the explicit retry intent: it returns to loading, keeping
// sort, filter, view mode and selection.
func (c *Controller) Refetch() error {
	if c.phase == PhaseLoading {
		return ErrNotLoading
	}
	c.phase = PhaseLoading
	c.message = ""
	c.recompute()
	return nil
}

func (c *Controller) ready() error {
	if c.phase != PhaseReady {
		return fmt.Errorf("%w: phase is %s", ErrNotReady, c.phase)
	}
	return nil
}

func (c *Controller) RequestSort(key sorting.Key) error {
	if err := c.ready(); err != nil {
		return err
	}
	if !slices.Contains(sorting.Keys, key) {
		return fmt.Errorf("%w: %q", ErrInvalidSortKey, key)
	}
	c.sort = c.sort.Next(key)
	c.log.Debug("sort requested", "sort", c.sort.String())
	c.recompute()
	return nil
}

// SetFilter replaces the filter text and returns to the first page and the
// top of the scroll space.
func (c *Controller) SetFilter(text string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if text == c.filter {
		return nil
	}
	c.filter = text
	c.page = 1
	c.viewport.Offset = 0
	c.recompute()
	return nil
}

func (c *Controller) SetPage(page int) error {
	if err := c.ready(); err != nil {
		return err
	}
	c.page = page
	c.recompute()
	return nil
}

func (c *Controller) NextPage() error {
	return c.SetPage(c.page + 1)
}

func (c *Controller) PrevPage() error {
	return c.SetPage(c.page - 1)
}

func (c *Controller) LastPage() error {
	return c.SetPage(paging.PageCount(len(c.filtered), c.pageSize))
}

// SetPageSize changes rows per page and returns to the first page.
func (c *Controller) SetPageSize(size int) error {
	if err := c.ready(); err != nil {
		return err
	}
	if size < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	c.pageSize = size
	c.page = 1
	c.recompute()
	return nil
}

// CyclePageSize advances to the next configured page size.
func (c *Controller) CyclePageSize() error {
	return c.SetPageSize(paging.NextSize(c.pageSizes, c.pageSize))
}

func (c *Controller) SetViewMode(mode ViewMode) error {
	if err := c.ready(); err != nil {
		return err
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidViewMode, mode)
	}
	c.mode = mode
	c.recompute()
	return nil
}

func (c *Controller) ToggleViewMode() error {
	return c.SetViewMode(c.mode.Toggle())
}

// ToggleRow flips the selection of id. Ids outside the visible scope are
// ignored.
func (c *Controller) ToggleRow(id string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if !slices.Contains(c.scopeIDs(), id) {
		return nil
	}
	c.selection.Toggle(id)
	c.recompute()
	return nil
}

// ToggleAll applies select-all to the visible scope: the current page when
// paginated, the whole filtered list when virtualized.
func (c *Controller) ToggleAll() error {
	if err := c.ready(); err != nil {
		return err
	}
	c.selection.SelectAll(c.scopeIDs())
	c.recompute()
	return nil
}

func (c *Controller) Scroll(offset int) error {
	if err := c.ready(); err != nil {
		return err
	}
	c.viewport = c.viewport.ScrollTo(offset, len(c.filtered))
	c.recompute()
	return nil
}

func (c *Controller) ScrollBy(delta int) error {
	if err := c.ready(); err != nil {
		return err
	}
	c.viewport = c.viewport.ScrollBy(delta, len(c.filtered))
	c.recompute()
	return nil
}

// ScrollToRow reveals the row at index in the filtered list.
func (c *Controller) ScrollToRow(index int) error {
	if err := c.ready(); err != nil {
		return err
	}
	c.viewport = c.viewport.ScrollToRow(index, len(c.filtered))
	c.recompute()
	return nil
}

// Resize records the viewport height reported by the sizing collaborator.
func (c *Controller) Resize(height int) error {
	if err := c.ready(); err != nil {
		return err
	}
	c.viewport = c.viewport.Resize(height, len(c.filtered))
	c.recompute()
	return nil
}

// ToggleTheme flips the dark-mode flag carried by the view and returns the
// new value. Persisting it is the caller's job.
func (c *Controller) ToggleTheme() (bool, error) {
	if err := c.ready(); err != nil {
		return c.dark, err
	}
	c.dark = !c.dark
	c.recompute()
	return c.dark, nil
}

// Selected returns the selected records that still exist, in fetch order.
func (c *Controller) Selected() []record.Record {
	out := make([]record.Record, 0, c.selection.Len())
	for i := range c.records {
		if c.selection.IsSelected(c.records[i].ID) {
			out = append(out, c.records[i])
		}
	}
	return out
}

// SelectedIDs returns every selected id, including stale ones.
func (c *Controller) SelectedIDs() []string {
	return c.selection.IDs()
}

func (c *Controller) scopeIDs() []string {
	if c.mode == ViewVirtualized {
		return record.IDs(c.filtered)
	}
	return record.IDs(paging.Paginate(c.filtered, c.pageSize, c.page))
}

package selection

import (
	"slices"
)

// Status is the aggregate selection over a scope of rows.
type Status string

const (
	None Status = "none"
	Some Status = "some"
	All  Status = "all"
)

// Tracker holds the selected record ids for a session. Ids of records that
// disappear are kept but never rendered, since only visible ids are queried.
type Tracker struct {
	ids map[string]struct{}
}

func NewTracker(ids ...string) *Tracker {
	t := &Tracker{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		t.ids[id] = struct{}{}
	}
	return t
}

// Toggle flips the membership of id.
func (t *Tracker) Toggle(id string) {
	if _, ok := t.ids[id]; ok {
		delete(t.ids, id)
		return
	}
	t.ids[id] = struct{}{}
}

// SelectAll clears visible when every one of them is selected, otherwise
// adds all of them. Ids outside visible are never touched.
func (t *Tracker) SelectAll(visible []string) {
	if len(visible) == 0 {
		return
	}
	if t.Status(visible) == All {
		for _, id := range visible {
			delete(t.ids, id)
		}
		return
	}
	for _, id := range visible {
		t.ids[id] = struct{}{}
	}
}

// Status computes none/some/all for the given scope. An empty scope is None.
func (t *Tracker) Status(visible []string) Status {
	if len(visible) == 0 {
		return None
	}
	selected := 0
	for _, id := range visible {
		if _, ok := t.ids[id]; ok {
			selected++
		}
	}
	switch selected {
	case 0:
		return None
	case len(visible):
		return All
	default:
		return Some
	}
}

func (t *Tracker) IsSelected(id string) bool {
	_, ok := t.ids[id]
	return ok
}

func (t *Tracker) Len() int {
	return len(t.ids)
}

// IDs returns every selected id, sorted.
func (t *Tracker) IDs() []string {
	ids := make([]string, 0, len(t.ids))
	for id := range t.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

package sorting

import (
	"fmt"
	"slices"
	"strings"

	"github.com/compozy/usertable/engine/record"
	"golang.org/x/text/cases"
)

// Key identifies a sortable record field.
type Key string

const (
	KeyName       Key = "name"
	KeyEmail      Key = "email"
	KeyBalance    Key = "balance"
	KeyRegistered Key = "registered"
)

// Keys lists the sortable columns in display order.
var Keys = []Key{KeyName, KeyBalance, KeyEmail, KeyRegistered}

// ParseKey reads a column name case-insensitively.
func ParseKey(s string) (Key, error) {
	k := Key(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Keys, k) {
		return k, nil
	}
	return "", fmt.Errorf("invalid sort key %q (must be one of: name, balance, email, registered)", s)
}

// Direction is the ordering applied to a Key. None means fetch order.
type Direction string

const (
	None       Direction = ""
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts asc, desc and their long forms; empty or none
// means fetch order.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return None, fmt.Errorf("invalid sort direction %q", s)
	}
}

// State is the single live sort. The zero value is unsorted.
type State struct {
	Key       Key       `json:"key,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

func (s State) Active() bool {
	return s.Key != "" && s.Direction != None
}

// Next returns the state after a sort request on key: the same key cycles
// asc -> desc -> none, a different key starts at asc.
func (s State) Next(key Key) State {
	if !s.Active() || s.Key != key {
		return State{Key: key, Direction: Ascending}
	}
	if s.Direction == Ascending {
		return State{Key: key, Direction: Descending}
	}
	return State{}
}

func (s State) String() string {
	if !s.Active() {
		return "none"
	}
	return string(s.Key) + " " + string(s.Direction)
}

// Indicator returns the header arrow for key under s.
func Indicator(s State, key Key) string {
	if !s.Active() || s.Key != key {
		return ""
	}
	if s.Direction == Ascending {
		return "↑"
	}
	return "↓"
}

type options struct {
	foldCase bool
}

type Option func(*options)

// WithFoldCase compares string keys case-insensitively.
func WithFoldCase() Option {
	return func(o *options) {
		o.foldCase = true
	}
}

// Order returns a new slice ordered by s. The sort is stable in both
// directions; an inactive state returns a copy of the input order.
func Order(records []record.Record, s State, opts ...Option) []record.Record {
	out := slices.Clone(records)
	if out == nil {
		out = []record.Record{}
	}
	if !s.Active() {
		return out
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	compare := comparator(s.Key, o)
	if s.Direction == Descending {
		asc := compare
		compare = func(a, b *record.Record) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, func(a, b record.Record) int {
		return compare(&a, &b)
	})
	return out
}

func comparator(key Key, o options) func(a, b *record.Record) int {
	str := strings.Compare
	if o.foldCase {
		folder := cases.Fold()
		str = func(a, b string) int {
			return strings.Compare(folder.String(a), folder.String(b))
		}
	}
	switch key {
	case KeyName:
		return func(a, b *record.Record) int { return str(a.Name, b.Name) }
	case KeyEmail:
		return func(a, b *record.Record) int { return str(a.Email, b.Email) }
	case KeyBalance:
		return func(a, b *record.Record) int { return a.Balance.Cmp(b.Balance) }
	case KeyRegistered:
		return func(a, b *record.Record) int { return a.RegisteredAt.Compare(b.RegisteredAt) }
	default:
		return func(_, _ *record.Record) int { return 0 }
	}
}

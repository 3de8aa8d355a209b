package components

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings of the users browser. It implements
// help.KeyMap.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	ToggleAll   key.Binding
	SortName    key.Binding
	SortBalance key.Binding
	SortEmail   key.Binding
	SortDate    key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	First       key.Binding
	Last        key.Binding
	PageSize    key.Binding
	ViewMode    key.Binding
	Theme       key.Binding
	Copy        key.Binding
	Refetch     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          newBinding([]string{"up", "k"}, "up", "↑/k"),
		Down:        newBinding([]string{"down", "j"}, "down", "↓/j"),
		Toggle:      newBinding([]string{" ", "space"}, "select row", "space"),
		ToggleAll:   newBinding([]string{"a"}, "select all", "a"),
		SortName:    newBinding([]string{"1"}, "sort by name", "1"),
		SortBalance: newBinding([]string{"2"}, "sort by balance", "2"),
		SortEmail:   newBinding([]string{"3"}, "sort by email", "3"),
		SortDate:    newBinding([]string{"4"}, "sort by registration", "4"),
		Filter:      newBinding([]string{"/"}, "filter", "/"),
		ClearFilter: newBinding([]string{"esc"}, "done filtering", "esc"),
		NextPage:    newBinding([]string{"n", "right"}, "next page", "n/→"),
		PrevPage:    newBinding([]string{"p", "left"}, "prev page", "p/←"),
		First:       newBinding([]string{"home", "g"}, "first", "home"),
		Last:        newBinding([]string{"end", "G"}, "last", "end"),
		PageSize:    newBinding([]string{"s"}, "page size", "s"),
		ViewMode:    newBinding([]string{"v"}, "paginated/virtualized", "v"),
		Theme:       newBinding([]string{"t"}, "light/dark", "t"),
		Copy:        newBinding([]string{"y"}, "copy emails", "y"),
		Refetch:     newBinding([]string{"r"}, "refetch", "r"),
		Help:        newBinding([]string{"?"}, "help", "?"),
		Quit:        newBinding([]string{"q", "ctrl+c"}, "quit", "q"),
	}
}

func newBinding(keys []string, help, display string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(display, help),
	)
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Filter, k.NextPage, k.PrevPage, k.ViewMode, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last, k.NextPage, k.PrevPage},
		{k.SortName, k.SortBalance, k.SortEmail, k.SortDate, k.Filter, k.ClearFilter},
		{k.Toggle, k.ToggleAll, k.Copy, k.PageSize, k.ViewMode},
		{k.Theme, k.Refetch, k.Help, k.Quit},
	}
}

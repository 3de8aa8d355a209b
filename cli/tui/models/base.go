package models

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the output mode for CLI commands
type Mode string

const (
	// ModeTUI represents interactive TUI mode
	ModeTUI Mode = "tui"
	// ModeJSON represents non-interactive JSON output mode
	ModeJSON Mode = "json"
)

// BaseModel carries the state every full-screen model needs.
type BaseModel struct {
	ctx      context.Context
	width    int
	height   int
	ready    bool
	quitting bool
	err      error
}

func NewBaseModel(ctx context.Context) BaseModel {
	return BaseModel{ctx: ctx}
}

func (m BaseModel) Context() context.Context {
	return m.ctx
}

// Size returns the terminal size
func (m BaseModel) Size() (width, height int) {
	return m.width, m.height
}

// IsReady reports whether a window size has been received.
func (m BaseModel) IsReady() bool {
	return m.ready
}

func (m BaseModel) IsQuitting() bool {
	return m.quitting
}

func (m BaseModel) Error() error {
	return m.err
}

func (m *BaseModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true
}

func (m *BaseModel) SetError(err error) {
	m.err = err
}

func (m *BaseModel) Quit() {
	m.quitting = true
}

// Update handles window sizing and ctrl+c for every model.
func (m *BaseModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Quit()
			return tea.Quit
		}
	}
	return nil
}

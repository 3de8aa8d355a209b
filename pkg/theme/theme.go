// Package theme persists the dark-mode preference between sessions.
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/gofrs/flock"
)

const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Store reads and writes the dark-mode preference.
type Store interface {
	Dark() (bool, error)
	SetDark(dark bool) error
}

// Detector reports the system default when no preference is stored.
type Detector func() bool

// Preference is the on-disk document.
type Preference struct {
	Dark      *bool     `yaml:"dark,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// FileStore keeps the preference in a YAML file guarded by an advisory lock
// next to it, so concurrent sessions never read a torn write.
type FileStore struct {
	path     string
	fallback string
	detect   Detector
	now      func() time.Time
}

type Option func(*FileStore)

func WithDetector(d Detector) Option {
	return func(s *FileStore) {
		s.detect = d
	}
}

// WithDefault sets the mode used when nothing is stored: auto asks the
// detector, dark and light are fixed.
func WithDefault(mode string) Option {
	return func(s *FileStore) {
		s.fallback = mode
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		s.now = now
	}
}

func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:     path,
		fallback: ModeAuto,
		detect:   lipgloss.HasDarkBackground,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath is the preference file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "usertable", "theme.yaml"), nil
}

// Open returns a file store at path, or at DefaultPath when path is empty.
func Open(path, mode string) (*FileStore, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	return NewFileStore(path, WithDefault(mode)), nil
}

func (s *FileStore) Path() string {
	return s.path
}

// Dark returns the stored preference, or the default when none is stored.
func (s *FileStore) Dark() (bool, error) {
	lock := flock.New(s.lockPath())
	if err := s.ensureDir(); err != nil {
		return s.defaultDark(), err
	}
	if err := lock.RLock(); err != nil {
		return s.defaultDark(), fmt.Errorf("failed to lock theme file: %w", err)
	}
	defer lock.Unlock()
	pref, err := s.read()
	if err != nil {
		return s.defaultDark(), err
	}
	if pref.Dark == nil {
		return s.defaultDark(), nil
	}
	return *pref.Dark, nil
}

func (s *FileStore) SetDark(dark bool) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	lock := flock.New(s.lockPath())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock theme file: %w", err)
	}
	defer lock.Unlock()
	return s.write(dark)
}

// Toggle flips the effective preference under one exclusive lock and
// returns the new value.
func (s *FileStore) Toggle() (bool, error) {
	if err := s.ensureDir(); err != nil {
		return false, err
	}
	lock := flock.New(s.lockPath())
	if err := lock.Lock(); err != nil {
		return false, fmt.Errorf("failed to lock theme file: %w", err)
	}
	defer lock.Unlock()
	pref, err := s.read()
	if err != nil {
		return false, err
	}
	dark := s.defaultDark()
	if pref.Dark != nil {
		dark = *pref.Dark
	}
	dark = !dark
	return dark, s.write(dark)
}

func (s *FileStore) defaultDark() bool {
	switch s.fallback {
	case ModeDark:
		return true
	case ModeLight:
		return false
	default:
		if s.detect == nil {
			return false
		}
		return s.detect()
	}
}

func (s *FileStore) lockPath() string {
	return s.path + ".lock"
}

func (s *FileStore) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create theme directory: %w", err)
	}
	return nil
}

func (s *FileStore) read() (Preference, error) {
	var pref Preference
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return pref, nil
	}
	if err != nil {
		return pref, fmt.Errorf("failed to read theme file: %w", err)
	}
	if err := yaml.Unmarshal(data, &pref); err != nil {
		return pref, fmt.Errorf("failed to parse theme file %s: %w", s.path, err)
	}
	return pref, nil
}

func (s *FileStore) write(dark bool) error {
	data, err := yaml.Marshal(Preference{Dark: &dark, UpdatedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode theme preference: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write theme file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace theme file: %w", err)
	}
	return nil
}

// MemoryStore is a Store without persistence.
type MemoryStore struct {
	dark bool
}

func NewMemoryStore(dark bool) *MemoryStore {
	return &MemoryStore{dark: dark}
}

func (m *MemoryStore) Dark() (bool, error) {
	return m.dark, nil
}

func (m *MemoryStore) SetDark(dark bool) error {
	m.dark = dark
	return nil
}

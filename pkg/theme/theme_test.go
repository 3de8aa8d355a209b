package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "theme.yaml")
}

func TestFileStore_Dark(t *testing.T) {
	t.Run("Should use the detector when nothing is stored", func(t *testing.T) {
		s := NewFileStore(storePath(t), WithDetector(func() bool { return true }))
		dark, err := s.Dark()
		require.NoError(t, err)
		assert.True(t, dark)
	})
	t.Run("Should use a fixed default over the detector", func(t *testing.T) {
		s := NewFileStore(storePath(t), WithDefault(ModeLight), WithDetector(func() bool { return true }))
		dark, err := s.Dark()
		require.NoError(t, err)
		assert.False(t, dark)
	})
	t.Run("Should fall back to the default on a corrupt file", func(t *testing.T) {
		path := storePath(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("dark: [oops"), 0o600))
		s := NewFileStore(path, WithDefault(ModeDark))
		dark, err := s.Dark()
		assert.Error(t, err)
		assert.True(t, dark)
	})
}

func TestFileStore_SetDark(t *testing.T) {
	t.Run("Should persist across store instances", func(t *testing.T) {
		path := storePath(t)
		fixed := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, NewFileStore(path, WithClock(func() time.Time { return fixed })).SetDark(true))

		dark, err := NewFileStore(path, WithDefault(ModeLight)).Dark()
		require.NoError(t, err)
		assert.True(t, dark)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "dark: true")
		assert.NoFileExists(t, path+".tmp")
	})
	t.Run("Should store an explicit light preference", func(t *testing.T) {
		path := storePath(t)
		s := NewFileStore(path, WithDetector(func() bool { return true }))
		require.NoError(t, s.SetDark(false))
		dark, err := s.Dark()
		require.NoError(t, err)
		assert.False(t, dark)
	})
}

func TestFileStore_Toggle(t *testing.T) {
	t.Run("Should flip the effective preference", func(t *testing.T) {
		s := NewFileStore(storePath(t), WithDefault(ModeDark))
		dark, err := s.Toggle()
		require.NoError(t, err)
		assert.False(t, dark)
		dark, err = s.Toggle()
		require.NoError(t, err)
		assert.True(t, dark)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Run("Should hold the value in memory", func(t *testing.T) {
		var s Store = NewMemoryStore(false)
		require.NoError(t, s.SetDark(true))
		dark, err := s.Dark()
		require.NoError(t, err)
		assert.True(t, dark)
	})
}

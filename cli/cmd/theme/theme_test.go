package theme

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/compozy/usertable/cli/helpers"
	"github.com/compozy/usertable/pkg/config"
	"github.com/compozy/usertable/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func runTheme(t *testing.T, path string, args ...string) ([]byte, error) {
	t.Helper()
	cfg := config.Default()
	cfg.CLI.Format = string(helpers.OutputFormatJSON)
	cfg.Theme.Path = path
	cfg.Theme.Default = "light"
	ctx := logger.ContextWithLogger(context.Background(), logger.NewLogger(logger.TestConfig()))
	ctx = config.ContextWithConfig(ctx, cfg)
	var out bytes.Buffer
	command := Cmd()
	command.SetOut(&out)
	command.SetErr(&bytes.Buffer{})
	command.SilenceUsage = true
	command.SilenceErrors = true
	command.SetArgs(args)
	err := command.ExecuteContext(ctx)
	return out.Bytes(), err
}

func TestThemeCommand(t *testing.T) {
	t.Run("Should show the configured default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "theme.yaml")
		out, err := runTheme(t, path, "show")
		require.NoError(t, err)
		assert.Equal(t, "light", gjson.GetBytes(out, "mode").String())
		assert.Equal(t, path, gjson.GetBytes(out, "path").String())
	})
	t.Run("Should persist set and toggle", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "theme.yaml")
		out, err := runTheme(t, path, "set", "dark")
		require.NoError(t, err)
		assert.True(t, gjson.GetBytes(out, "dark").Bool())

		out, err = runTheme(t, path, "show")
		require.NoError(t, err)
		assert.Equal(t, "dark", gjson.GetBytes(out, "mode").String())

		out, err = runTheme(t, path, "toggle")
		require.NoError(t, err)
		assert.Equal(t, "light", gjson.GetBytes(out, "mode").String())
	})
	t.Run("Should reject an unknown theme", func(t *testing.T) {
		_, err := runTheme(t, filepath.Join(t.TempDir(), "theme.yaml"), "set", "blue")
		var cliErr *helpers.CliError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, helpers.CodeInvalidFlag, cliErr.Code)
	})
}

package browse

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/compozy/usertable/cli/helpers"
	"github.com/compozy/usertable/engine/record"
	"github.com/compozy/usertable/engine/table"
	"github.com/compozy/usertable/engine/table/sorting"
	"github.com/compozy/usertable/pkg/config"
	"github.com/compozy/usertable/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func jsonConfig() *config.Config {
	cfg := config.Default()
	cfg.CLI.Format = string(helpers.OutputFormatJSON)
	return cfg
}

func runJSON(t *testing.T, cfg *config.Config, args ...string) ([]byte, error) {
	t.Helper()
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

func TestParseSort(t *testing.T) {
	t.Run("Should default to ascending", func(t *testing.T) {
		state, err := ParseSort("name")
		require.NoError(t, err)
		assert.Equal(t, sorting.State{Key: sorting.KeyName, Direction: sorting.Ascending}, state)
	})
	t.Run("Should parse an explicit direction", func(t *testing.T) {
		state, err := ParseSort("Balance:DESC")
		require.NoError(t, err)
		assert.Equal(t, sorting.State{Key: sorting.KeyBalance, Direction: sorting.Descending}, state)
	})
	t.Run("Should treat empty and none as unsorted", func(t *testing.T) {
		for _, raw := range []string{"", "  ", "email:none"} {
			state, err := ParseSort(raw)
			require.NoError(t, err)
			assert.False(t, state.Active(), raw)
		}
	})
	t.Run("Should reject unknown keys and directions", func(t *testing.T) {
		_, err := ParseSort("age")
		assert.Error(t, err)
		_, err = ParseSort("name:sideways")
		assert.Error(t, err)
	})
}

func TestNewOptions(t *testing.T) {
	t.Run("Should map the table configuration", func(t *testing.T) {
		cfg := config.Default().Table
		cfg.ViewMode = "virtualized"
		cfg.RowHeight = 2
		cfg.ViewportHeight = 15
		opts, err := NewOptions(&cfg, true)
		require.NoError(t, err)
		assert.Equal(t, table.ViewVirtualized, opts.ViewMode)
		assert.Equal(t, 30, opts.Viewport.Height)
		assert.Equal(t, 2, opts.Viewport.RowHeight)
		assert.Equal(t, cfg.PageSizes, opts.PageSizes)
		assert.True(t, opts.Dark)
	})
	t.Run("Should reject an unknown view mode", func(t *testing.T) {
		cfg := config.Default().Table
		cfg.ViewMode = "grid"
		_, err := NewOptions(&cfg, false)
		assert.ErrorIs(t, err, table.ErrInvalidViewMode)
	})
}

func TestBrowseJSON(t *testing.T) {
	t.Run("Should render the first page", func(t *testing.T) {
		out, err := runJSON(t, jsonConfig())
		require.NoError(t, err)
		assert.Equal(t, "ready", gjson.GetBytes(out, "view.phase").String())
		assert.Equal(t, int64(106), gjson.GetBytes(out, "view.total").Int())
		assert.Equal(t, "Showing 1–10 of 106 users", gjson.GetBytes(out, "view.page.summary").String())
		assert.Len(t, gjson.GetBytes(out, "view.rows").Array(), 10)
	})
	t.Run("Should clamp the requested page", func(t *testing.T) {
		out, err := runJSON(t, jsonConfig(), "--page", "99")
		require.NoError(t, err)
		assert.Equal(t, int64(11), gjson.GetBytes(out, "view.page.current").Int())
		assert.Equal(t, "Showing 101–106 of 106 users", gjson.GetBytes(out, "view.page.summary").String())
	})
	t.Run("Should sort descending by balance", func(t *testing.T) {
		out, err := runJSON(t, jsonConfig(), "--sort", "balance:desc")
		require.NoError(t, err)
		balances := gjson.GetBytes(out, "view.rows.#.record.balance").Array()
		require.Len(t, balances, 10)
		for i := 1; i < len(balances); i++ {
			assert.GreaterOrEqual(t, balances[i-1].Float(), balances[i].Float())
		}
	})
	t.Run("Should select only rendered rows", func(t *testing.T) {
		out, err := runJSON(t, jsonConfig(), "--select", "user-1,user-2,user-99")
		require.NoError(t, err)
		assert.Equal(t, int64(2), gjson.GetBytes(out, "view.selected").Int())
		assert.Equal(t, "some", gjson.GetBytes(out, "view.selection").String())
		ids := gjson.GetBytes(out, "selected_users.#.id").Array()
		require.Len(t, ids, 2)
		assert.Equal(t, "user-1", ids[0].String())
	})
	t.Run("Should render a virtualized window", func(t *testing.T) {
		cfg := jsonConfig()
		cfg.Table.ViewMode = "virtualized"
		cfg.Table.ViewportHeight = 10
		out, err := runJSON(t, cfg, "--offset", "40")
		require.NoError(t, err)
		assert.False(t, gjson.GetBytes(out, "view.page").Exists())
		assert.Equal(t, int64(40), gjson.GetBytes(out, "view.window.first").Int())
		assert.Equal(t, int64(38), gjson.GetBytes(out, "view.window.start").Int())
		assert.Equal(t, int64(40), gjson.GetBytes(out, "view.rows.2.index").Int())
	})
	t.Run("Should reject a negative offset", func(t *testing.T) {
		_, err := runJSON(t, jsonConfig(), "--offset", "-1")
		var cliErr *helpers.CliError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, helpers.CodeInvalidFlag, cliErr.Code)
	})
	t.Run("Should report a failed fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()
		cfg := jsonConfig()
		cfg.Source.Kind = "http"
		cfg.Source.BaseURL = server.URL
		out, err := runJSON(t, cfg)
		var cliErr *helpers.CliError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, helpers.CodeFetchFailed, cliErr.Code)
		assert.Equal(t, table.FetchFailureMessage, cliErr.Message)
		assert.Empty(t, out)
	})
	t.Run("Should report an unreachable source as a network error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()
		cfg := jsonConfig()
		cfg.Source.Kind = "http"
		cfg.Source.BaseURL = url
		_, err := runJSON(t, cfg)
		var cliErr *helpers.CliError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, helpers.CodeNetworkError, cliErr.Code)
		assert.Equal(t, table.FetchFailureMessage, cliErr.Message)
		assert.ErrorIs(t, err, record.ErrNetwork)
	})
}

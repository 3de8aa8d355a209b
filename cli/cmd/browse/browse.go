package browse

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/compozy/usertable/cli/cmd"
	"github.com/compozy/usertable/cli/helpers"
	"github.com/compozy/usertable/engine/record"
	"github.com/compozy/usertable/engine/table"
	"github.com/compozy/usertable/engine/table/sorting"
	"github.com/compozy/usertable/engine/table/virtual"
	"github.com/compozy/usertable/pkg/config"
	"github.com/compozy/usertable/pkg/logger"
	"github.com/compozy/usertable/pkg/theme"
	"github.com/spf13/cobra"
)

// Cmd creates the browse command
func Cmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "browse",
		Short: "Browse users",
		Long: `Browse the user list with sorting, filtering, pagination and selection.

In an interactive terminal this opens the table browser. Otherwise, or with
--format json, the requested view is rendered once as JSON.`,
		Example: `  usertable browse
  usertable browse --format json --filter andrew --sort balance:desc
  usertable browse --format json --view virtualized --offset 40 --viewport 10`,
		RunE: run,
	}

	// Config-backed flags, picked up by the CLI config source when changed
	command.Flags().String("source", "mock", "Record source (mock, http, sqlite)")
	command.Flags().String("base-url", "", "Base URL of the users API for the http source")
	command.Flags().String("db", "", "SQLite database file for the sqlite source")
	command.Flags().String("db-table", "users", "SQLite table holding the users")
	command.Flags().Int("mock-count", record.DefaultMockCount, "Number of generated users for the mock source")
	command.Flags().Uint64("mock-seed", 1, "Seed of the mock source")
	command.Flags().Duration("timeout", 0, "Fetch timeout")
	command.Flags().Int("page-size", table.DefaultPageSize, "Rows per page")
	command.Flags().String("view", string(table.ViewPaginated), "View mode (paginated, virtualized)")
	command.Flags().Int("viewport", 0, "Viewport height in rows for the virtualized view")

	// View intents applied after loading
	command.Flags().String("filter", "", "Show only users whose name or email contains the text")
	command.Flags().String("sort", "", "Sort column as key[:asc|desc] (name, balance, email, registered)")
	command.Flags().Int("page", 1, "Page to render in the paginated view")
	command.Flags().Int("offset", 0, "Scroll offset in rows for the virtualized view")
	command.Flags().StringSlice("select", nil, "Ids of rendered users to select")
	return command
}

func run(cobraCmd *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(cobraCmd, cmd.ExecutorOptions{
		RequireSource: true,
	}, cmd.ModeHandlers{
		JSON: jsonHandler,
		TUI:  tuiHandler,
	}, args)
}

// intents are the one-shot view requests given on the command line.
type intents struct {
	filter string
	sort   sorting.State
	page   int
	offset int
	ids    []string
}

func parseIntents(cobraCmd *cobra.Command) (intents, error) {
	var in intents
	var err error
	flags := cobraCmd.Flags()
	if in.filter, err = flags.GetString("filter"); err != nil {
		return in, fmt.Errorf("failed to get filter flag: %w", err)
	}
	raw, err := flags.GetString("sort")
	if err != nil {
		return in, fmt.Errorf("failed to get sort flag: %w", err)
	}
	if in.sort, err = ParseSort(raw); err != nil {
		return in, helpers.WrapCliError(helpers.CodeInvalidFlag, "Invalid --sort value", err)
	}
	if in.page, err = flags.GetInt("page"); err != nil {
		return in, fmt.Errorf("failed to get page flag: %w", err)
	}
	if in.offset, err = flags.GetInt("offset"); err != nil {
		return in, fmt.Errorf("failed to get offset flag: %w", err)
	}
	if in.offset < 0 {
		return in, helpers.NewCliError(helpers.CodeInvalidFlag, "Invalid --offset value",
			fmt.Sprintf("offset must be non-negative, got: %d", in.offset))
	}
	if in.ids, err = flags.GetStringSlice("select"); err != nil {
		return in, fmt.Errorf("failed to get select flag: %w", err)
	}
	return in, nil
}

// ParseSort parses key[:direction]. An empty value leaves the list unsorted.
func ParseSort(raw string) (sorting.State, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return sorting.State{}, nil
	}
	name, dir, _ := strings.Cut(raw, ":")
	key, err := sorting.ParseKey(name)
	if err != nil {
		return sorting.State{}, err
	}
	direction := sorting.Ascending
	if dir != "" {
		if direction, err = sorting.ParseDirection(dir); err != nil {
			return sorting.State{}, err
		}
	}
	if direction == sorting.None {
		return sorting.State{}, nil
	}
	return sorting.State{Key: key, Direction: direction}, nil
}

// NewOptions seeds controller options from the table configuration.
func NewOptions(cfg *config.TableConfig, dark bool) (table.Options, error) {
	mode, err := table.ParseViewMode(cfg.ViewMode)
	if err != nil {
		return table.Options{}, err
	}
	return table.Options{
		PageSize:  cfg.PageSize,
		PageSizes: cfg.PageSizes,
		ViewMode:  mode,
		Viewport: virtual.Viewport{
			RowHeight: cfg.RowHeight,
			Height:    cfg.ViewportHeight * cfg.RowHeight,
			Overscan:  cfg.Overscan,
		},
		FoldCase: cfg.FoldCaseSort,
		Dark:     dark,
	}, nil
}

// Output is the JSON document written by browse.
type Output struct {
	View          table.View      `json:"view"`
	SelectedUsers []record.Record `json:"selected_users"`
}

func jsonHandler(ctx context.Context, cobraCmd *cobra.Command, executor *cmd.CommandExecutor, _ []string) error {
	log := logger.FromContext(ctx)
	cfg := executor.GetConfig()
	in, err := parseIntents(cobraCmd)
	if err != nil {
		return err
	}
	opts, err := NewOptions(&cfg.Table, cfg.Theme.Default == theme.ModeDark)
	if err != nil {
		return helpers.WrapCliError(helpers.CodeInvalidFlag, "Invalid table options", err)
	}
	opts.Sort = in.sort
	ctrl := table.New(ctx, opts)

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.Source.Timeout)
	defer cancel()
	if err := ctrl.Load(fetchCtx, executor.GetSource()); err != nil {
		return cmd.FetchFailure(table.FetchFailureMessage, err)
	}
	if err := apply(ctrl, &in, cfg.Table.RowHeight); err != nil {
		return err
	}
	view := ctrl.View()
	log.Debug("users rendered", "mode", view.Mode, "rows", len(view.Rows), "filtered", view.Filtered)
	return helpers.NewOutputWriter(cobraCmd.OutOrStdout(), helpers.OutputFormatJSON).WriteData(Output{
		View:          view,
		SelectedUsers: ctrl.Selected(),
	})
}

// apply replays the command line intents on a loaded controller. Selection
// comes last so only ids of rendered rows are toggled.
func apply(ctrl *table.Controller, in *intents, rowHeight int) error {
	if err := ctrl.SetFilter(in.filter); err != nil {
		return err
	}
	if ctrl.View().Mode == table.ViewVirtualized {
		if err := ctrl.Scroll(in.offset * max(rowHeight, 1)); err != nil {
			return err
		}
	} else if err := ctrl.SetPage(in.page); err != nil {
		return err
	}
	for _, id := range in.ids {
		if err := ctrl.ToggleRow(strings.TrimSpace(id)); err != nil {
			return err
		}
	}
	return nil
}

func tuiHandler(ctx context.Context, _ *cobra.Command, executor *cmd.CommandExecutor, _ []string) error {
	log := logger.FromContext(ctx)
	cfg := executor.GetConfig()
	store, err := theme.Open(cfg.Theme.Path, cfg.Theme.Default)
	if err != nil {
		return err
	}
	dark, err := store.Dark()
	if err != nil {
		log.Warn("failed to read theme preference", "error", err)
	}
	opts, err := NewOptions(&cfg.Table, dark)
	if err != nil {
		return helpers.WrapCliError(helpers.CodeInvalidFlag, "Invalid table options", err)
	}
	model := NewModel(ctx, Params{
		Source:    executor.GetSource(),
		Options:   opts,
		Timeout:   cfg.Source.Timeout,
		Store:     store,
		RowHeight: cfg.Table.RowHeight,
	})
	log.Debug("starting users browser", "source", cfg.Source.Kind, "mode", opts.ViewMode)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}
	return nil
}

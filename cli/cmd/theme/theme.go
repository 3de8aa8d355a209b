package theme

import (
	"context"
	"fmt"

	"github.com/compozy/usertable/cli/cmd"
	"github.com/compozy/usertable/cli/helpers"
	"github.com/compozy/usertable/cli/tui/styles"
	"github.com/compozy/usertable/pkg/logger"
	"github.com/compozy/usertable/pkg/theme"
	"github.com/spf13/cobra"
)

// Result describes the stored preference after a theme command.
type Result struct {
	Mode string `json:"mode"`
	Dark bool   `json:"dark"`
	Path string `json:"path"`
}

// Cmd creates the theme command group
func Cmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the color theme",
		Long:  "Show or change the light/dark preference shared by every browser session.",
	}
	command.AddCommand(showCmd(), setCmd(), toggleCmd())
	return command
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return execute(cobraCmd, args, func(store *theme.FileStore, _ []string) (bool, error) {
				return store.Dark()
			})
		},
	}
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <dark|light>",
		Short:     "Set the theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{theme.ModeDark, theme.ModeLight},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			if err := helpers.ValidateEnum(args[0], []string{theme.ModeDark, theme.ModeLight}, "theme"); err != nil {
				return cmd.HandleCommonErrors(
					helpers.WrapCliError(helpers.CodeInvalidFlag, "Invalid theme", err),
					helpers.DetectMode(cobraCmd),
				)
			}
			return execute(cobraCmd, args, func(store *theme.FileStore, args []string) (bool, error) {
				dark := args[0] == theme.ModeDark
				return dark, store.SetDark(dark)
			})
		},
	}
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return execute(cobraCmd, args, func(store *theme.FileStore, _ []string) (bool, error) {
				return store.Toggle()
			})
		},
	}
}

type action func(store *theme.FileStore, args []string) (bool, error)

// execute opens the configured store, runs fn and reports the result in the
// detected output mode.
func execute(cobraCmd *cobra.Command, args []string, fn action) error {
	run := func(ctx context.Context, c *cobra.Command, executor *cmd.CommandExecutor, args []string, tui bool) error {
		cfg := executor.GetConfig()
		store, err := theme.Open(cfg.Theme.Path, cfg.Theme.Default)
		if err != nil {
			return err
		}
		dark, err := fn(store, args)
		if err != nil {
			return fmt.Errorf("failed to update theme preference: %w", err)
		}
		res := Result{Mode: modeName(dark), Dark: dark, Path: store.Path()}
		logger.FromContext(ctx).Debug("theme preference", "mode", res.Mode, "path", res.Path)
		if tui {
			st := styles.For(dark)
			_, err := fmt.Fprintf(c.OutOrStdout(), "%s %s\n",
				st.Title.Render("Theme:"), st.Info.Render(res.Mode)+st.Muted.Render(" ("+res.Path+")"))
			return err
		}
		return helpers.NewOutputWriter(c.OutOrStdout(), helpers.OutputFormatJSON).WriteData(res)
	}
	return cmd.ExecuteCommand(cobraCmd, cmd.ExecutorOptions{}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
			return run(ctx, c, e, args, false)
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
			return run(ctx, c, e, args, true)
		},
	}, args)
}

func modeName(dark bool) string {
	if dark {
		return theme.ModeDark
	}
	return theme.ModeLight
}

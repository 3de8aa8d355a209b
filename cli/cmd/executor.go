package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/usertable/cli/helpers"
	"github.com/compozy/usertable/cli/tui/models"
	"github.com/compozy/usertable/engine/record"
	"github.com/compozy/usertable/pkg/config"
	"github.com/compozy/usertable/pkg/logger"
	"github.com/spf13/cobra"
)

// CommandExecutor handles common setup and execution patterns for CLI
// commands: mode detection, source construction and error reporting.
type CommandExecutor struct {
	mode   models.Mode
	config *config.Config
	source record.Source
}

// HandlerFunc defines the signature for command handlers.
type HandlerFunc func(ctx context.Context, cmd *cobra.Command, executor *CommandExecutor, args []string) error

// ModeHandlers contains handlers for different execution modes.
type ModeHandlers struct {
	JSON HandlerFunc
	TUI  HandlerFunc
}

// ExecutorOptions allows customization of the command executor
type ExecutorOptions struct {
	RequireSource bool
}

// NewCommandExecutor creates a new command executor with all necessary setup.
func NewCommandExecutor(cmd *cobra.Command, opts ExecutorOptions) (*CommandExecutor, error) {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)
	mode := helpers.DetectMode(cmd)
	log.Debug("detected execution mode", "mode", mode)
	cfg := config.FromContext(ctx)
	executor := &CommandExecutor{mode: mode, config: cfg}
	if opts.RequireSource {
		source, err := record.NewSource(&cfg.Source)
		if err != nil {
			return nil, helpers.WrapCliError(helpers.CodeInvalidFlag, "Invalid record source", err)
		}
		log.Debug("record source ready", "kind", cfg.Source.Kind)
		executor.source = source
	}
	return executor, nil
}

// Execute runs the appropriate handler based on the detected mode.
func (e *CommandExecutor) Execute(ctx context.Context, cmd *cobra.Command, handlers ModeHandlers, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	switch e.mode {
	case models.ModeJSON:
		if handlers.JSON == nil {
			return fmt.Errorf("JSON mode handler not implemented")
		}
		return handlers.JSON(ctx, cmd, e, args)
	case models.ModeTUI:
		if handlers.TUI == nil {
			return fmt.Errorf("TUI mode handler not implemented")
		}
		return handlers.TUI(ctx, cmd, e, args)
	default:
		return fmt.Errorf("unsupported mode: %s", e.mode)
	}
}

func (e *CommandExecutor) GetMode() models.Mode {
	return e.mode
}

func (e *CommandExecutor) GetConfig() *config.Config {
	return e.config
}

// GetSource returns the record source, nil unless RequireSource was set.
func (e *CommandExecutor) GetSource() record.Source {
	return e.source
}

// ExecuteCommand is a convenience function that combines executor creation and execution.
func ExecuteCommand(cmd *cobra.Command, opts ExecutorOptions, handlers ModeHandlers, args []string) error {
	executor, err := NewCommandExecutor(cmd, opts)
	if err != nil {
		return HandleCommonErrors(err, helpers.DetectMode(cmd))
	}
	return HandleCommonErrors(executor.Execute(cmd.Context(), cmd, handlers, args), executor.GetMode())
}

// HandleCommonErrors provides consistent error handling across all commands.
func HandleCommonErrors(err error, mode models.Mode) error {
	if err == nil {
		return nil
	}
	if cliErr := categorizeError(err); cliErr != nil {
		helpers.OutputError(cliErr, mode)
		return cliErr
	}
	helpers.OutputError(err, mode)
	return err
}

// categorizeError converts errors to structured CLI errors
func categorizeError(err error) *helpers.CliError {
	var cliErr *helpers.CliError
	switch {
	case errors.As(err, &cliErr):
		return cliErr
	case errors.Is(err, context.Canceled):
		return helpers.NewCliError(helpers.CodeOperationCancel, "Operation was canceled by user")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, record.ErrTimeout):
		return helpers.WrapCliError(helpers.CodeOperationTimeout, "Operation timed out", err)
	case helpers.IsNetworkError(err):
		return helpers.WrapCliError(helpers.CodeNetworkError, "Network connection failed", err)
	case errors.Is(err, record.ErrFetch):
		return helpers.WrapCliError(helpers.CodeFetchFailed, "Failed to fetch users", err)
	default:
		return nil
	}
}

// FetchFailure reports a failed user fetch under message, coded by what
// went wrong in transport.
func FetchFailure(message string, err error) *helpers.CliError {
	code := helpers.CodeFetchFailed
	switch {
	case errors.Is(err, record.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		code = helpers.CodeOperationTimeout
	case errors.Is(err, record.ErrNetwork):
		code = helpers.CodeNetworkError
	}
	return helpers.WrapCliError(code, message, err)
}

package helpers

import (
	"os"

	"github.com/compozy/usertable/cli/tui/models"
	"github.com/compozy/usertable/pkg/config"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var ciVars = []string{
	"CI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"BUILDKITE",
	"JENKINS_URL",
	"TF_BUILD",
	"CONTINUOUS_INTEGRATION",
}

func isRunningInCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// explicitMode reports the mode forced by cli.format, if any.
func explicitMode(cfg *config.Config) (models.Mode, bool) {
	switch OutputFormat(cfg.CLI.Format) {
	case OutputFormatJSON:
		return models.ModeJSON, true
	case OutputFormatTUI:
		return models.ModeTUI, true
	default:
		return models.ModeJSON, false
	}
}

func isInteractiveEnvironment() bool {
	if isRunningInCI() {
		return false
	}
	stdin := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	stdout := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !stdin || !stdout {
		return false
	}
	term := os.Getenv("TERM")
	return term != "dumb" && term != ""
}

// DetectMode picks TUI or JSON output: an explicit --format wins, otherwise
// TUI only on an interactive terminal.
func DetectMode(cmd *cobra.Command) models.Mode {
	cfg := config.FromContext(cmd.Context())
	if mode, ok := explicitMode(cfg); ok {
		return mode
	}
	if isInteractiveEnvironment() {
		return models.ModeTUI
	}
	return models.ModeJSON
}

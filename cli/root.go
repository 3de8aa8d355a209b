package cli

import (
	"fmt"

	"github.com/compozy/usertable/cli/cmd/browse"
	configcmd "github.com/compozy/usertable/cli/cmd/config"
	themecmd "github.com/compozy/usertable/cli/cmd/theme"
	"github.com/compozy/usertable/pkg/config"
	"github.com/compozy/usertable/pkg/logger"
	"github.com/compozy/usertable/pkg/version"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "usertable.yaml"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "usertable",
		Short: "Browse user records in the terminal",
		Long: `usertable loads user records from a mock generator, an HTTP API or a SQLite
database and lets you sort, filter, paginate, virtualize and select them.`,
		Version:           version.Get().String(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupGlobalConfig,
	}

	root.PersistentFlags().String("config", defaultConfigFile, "Path to configuration file")
	root.PersistentFlags().String("env-file", ".env", "Path to environment file")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	root.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	root.PersistentFlags().Bool("log-source", false, "Include source code location in logs")
	root.PersistentFlags().String("format", "auto", "Output format (auto, tui, json)")

	root.AddCommand(
		browse.Cmd(),
		themecmd.Cmd(),
		configcmd.NewConfigCommand(),
	)

	return root
}

// setupGlobalConfig loads the env file and configuration, sets up the logger
// and attaches both to the command context.
func setupGlobalConfig(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}
	loadedEnv, err := config.LoadEnvFile(envFile)
	if err != nil {
		return err
	}
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	flags := make(map[string]any)
	extractCLIFlags(cmd, flags)
	service := config.NewService()
	cfg, err := service.Load(ctx, config.NewYAMLProvider(configFile), config.NewCLIProvider(flags))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.SetupLogger(cfg.Runtime.LogLevel, cfg.Runtime.LogJSON, cfg.Runtime.LogSource)
	log.Debug("configuration loaded", "config_file", configFile, "env_file", loadedEnv, "cli_flags", len(flags))

	ctx = logger.ContextWithLogger(ctx, log)
	ctx = config.ContextWithConfig(ctx, cfg)
	ctx = config.ContextWithService(ctx, service)
	cmd.SetContext(ctx)
	return nil
}

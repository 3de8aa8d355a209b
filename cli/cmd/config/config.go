package config

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"text/tabwriter"

	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/compozy/usertable/cli/cmd"
	"github.com/compozy/usertable/cli/helpers"
	"github.com/compozy/usertable/pkg/config"
	"github.com/compozy/usertable/pkg/logger"
)

// Pre-compiled regex for URL token redaction
var tokenRegex = regexp.MustCompile(`token=[^&\s]+`)

// NewConfigCommand creates the config command using the unified command pattern
func NewConfigCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "config",
		Short: "Configuration management and diagnostics",
		Long:  `Show and validate the effective configuration of the users browser.`,
	}
	command.AddCommand(
		NewConfigShowCommand(),
		NewConfigValidateCommand(),
	)
	return command
}

// NewConfigShowCommand creates the config show subcommand
func NewConfigShowCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration values",
		Long: `Display the effective configuration values.
Supports JSON, YAML, and table output. With --sources each key also shows
the layer it came from (default, yaml, env or cli).`,
		RunE: executeConfigShowCommand,
	}
	command.Flags().StringP("output", "o", "table", "Output format (json, yaml, table)")
	command.Flags().Bool("sources", false, "Show the source of each value")
	return command
}

func executeConfigShowCommand(cobraCmd *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(cobraCmd, cmd.ExecutorOptions{}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, _ *cmd.CommandExecutor, _ []string) error {
			return showConfig(ctx, c, "json")
		},
		TUI: func(ctx context.Context, c *cobra.Command, _ *cmd.CommandExecutor, _ []string) error {
			output, err := c.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("failed to get output flag: %w", err)
			}
			return showConfig(ctx, c, output)
		},
	}, args)
}

func showConfig(ctx context.Context, cobraCmd *cobra.Command, output string) error {
	log := logger.FromContext(ctx)
	log.Debug("executing config show command", "output", output)
	if err := helpers.ValidateEnum(output, []string{"json", "yaml", "table"}, "output"); err != nil {
		return helpers.WrapCliError(helpers.CodeInvalidFlag, "Invalid --output value", err)
	}
	showSources, err := cobraCmd.Flags().GetBool("sources")
	if err != nil {
		return fmt.Errorf("failed to get sources flag: %w", err)
	}
	cfg := config.FromContext(ctx)
	flat, err := flattenConfig(cfg)
	if err != nil {
		return err
	}
	var sources map[string]config.SourceType
	if showSources {
		svc := config.ServiceFromContext(ctx)
		sources = make(map[string]config.SourceType, len(flat))
		for key := range flat {
			sources[key] = svc.GetSource(key)
		}
	}
	return formatConfigOutput(cobraCmd.OutOrStdout(), flat, sources, output)
}

// NewConfigValidateCommand creates the config validate subcommand
func NewConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long:  `Validate the merged configuration for invalid values and missing fields.`,
		RunE:  executeConfigValidateCommand,
	}
}

// ValidationResult is the JSON document written by config validate.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

func executeConfigValidateCommand(cobraCmd *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(cobraCmd, cmd.ExecutorOptions{}, cmd.ModeHandlers{
		JSON: handleConfigValidateJSON,
		TUI:  handleConfigValidateTUI,
	}, args)
}

func handleConfigValidateJSON(ctx context.Context, cobraCmd *cobra.Command, _ *cmd.CommandExecutor, _ []string) error {
	log := logger.FromContext(ctx)
	log.Debug("executing config validate command in JSON mode")
	result := ValidationResult{Valid: true, Message: "Configuration is valid"}
	if err := config.ServiceFromContext(ctx).Validate(config.FromContext(ctx)); err != nil {
		result = ValidationResult{Valid: false, Message: err.Error()}
	}
	return helpers.NewOutputWriter(cobraCmd.OutOrStdout(), helpers.OutputFormatJSON).WriteData(result)
}

func handleConfigValidateTUI(ctx context.Context, cobraCmd *cobra.Command, _ *cmd.CommandExecutor, _ []string) error {
	log := logger.FromContext(ctx)
	log.Debug("executing config validate command in TUI mode")
	if err := config.ServiceFromContext(ctx).Validate(config.FromContext(ctx)); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	_, err := fmt.Fprintln(cobraCmd.OutOrStdout(), "✅ Configuration is valid")
	return err
}

// formatConfigOutput writes the flattened configuration in the requested format
func formatConfigOutput(w io.Writer, flat map[string]string, sources map[string]config.SourceType, format string) error {
	switch format {
	case "json":
		return helpers.NewOutputWriter(w, helpers.OutputFormatJSON).WriteData(document(flat, sources))
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(document(flat, sources)); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	case "table":
		return outputTable(w, flat, sources)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func document(flat map[string]string, sources map[string]config.SourceType) map[string]any {
	output := map[string]any{"config": flat}
	if len(sources) > 0 {
		output["sources"] = sources
	}
	return output
}

// outputTable outputs configuration as a table
func outputTable(out io.Writer, flat map[string]string, sources map[string]config.SourceType) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if sources != nil {
		fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
		fmt.Fprintln(w, "---\t-----\t------")
	} else {
		fmt.Fprintln(w, "KEY\tVALUE")
		fmt.Fprintln(w, "---\t-----")
	}
	for _, key := range keys {
		if sources != nil {
			fmt.Fprintf(w, "%s\t%s\t%s\n", key, flat[key], sources[key])
		} else {
			fmt.Fprintf(w, "%s\t%s\n", key, flat[key])
		}
	}
	return w.Flush()
}

// flattenConfig converts the nested config to dot-notation keys with
// printable, redacted values.
func flattenConfig(cfg *config.Config) (map[string]string, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to flatten configuration: %w", err)
	}
	result := make(map[string]string, len(k.Keys()))
	for key, value := range k.All() {
		result[key] = fmt.Sprint(value)
	}
	result["source.base_url"] = redactURL(cfg.Source.BaseURL)
	result["source.timeout"] = cfg.Source.Timeout.String()
	return result, nil
}

// redactURL hides token query parameters
func redactURL(raw string) string {
	return tokenRegex.ReplaceAllString(raw, "token=[REDACTED]")
}

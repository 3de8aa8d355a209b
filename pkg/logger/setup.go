package logger

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// SetupLogger initializes the default logger from CLI-level settings and
// returns it. Logs go to stderr so they never interleave with JSON output.
func SetupLogger(logLevel string, logJSON, logSource bool) Logger {
	Init(&Config{
		Level:      LogLevel(logLevel),
		Output:     os.Stderr,
		JSON:       logJSON,
		AddSource:  logSource,
		TimeFormat: "15:04:05",
	})
	return defaultLogger
}

func GetLoggerConfig(cmd *cobra.Command) (string, bool, bool, error) {
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-level flag: %w", err)
	}

	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-json flag: %w", err)
	}

	logSource, err := cmd.Flags().GetBool("log-source")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-source flag: %w", err)
	}

	return logLevel, logJSON, logSource, nil
}

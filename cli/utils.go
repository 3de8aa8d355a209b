package cli

import (
	"github.com/compozy/usertable/pkg/config/definition"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// extractCLIFlags extracts command line flags from a cobra command into a map.
// It processes only flags that have been explicitly changed by the user and
// that the config registry maps to a configuration path.
func extractCLIFlags(cmd *cobra.Command, flags map[string]any) {
	mapped := definition.CreateRegistry().GetCLIFlagMapping()
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if _, ok := mapped[f.Name]; !ok {
			return
		}
		if value, err := flagValue(cmd.Flags(), f); err == nil {
			flags[f.Name] = value
		}
	})
}

// flagValue returns the typed value of f, falling back to its string form.
func flagValue(set *pflag.FlagSet, f *pflag.Flag) (any, error) {
	switch f.Value.Type() {
	case "string":
		return set.GetString(f.Name)
	case "int":
		return set.GetInt(f.Name)
	case "uint64":
		return set.GetUint64(f.Name)
	case "bool":
		return set.GetBool(f.Name)
	case "duration":
		return set.GetDuration(f.Name)
	case "intSlice":
		return set.GetIntSlice(f.Name)
	default:
		return f.Value.String(), nil
	}
}

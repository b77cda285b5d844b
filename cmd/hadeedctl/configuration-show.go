package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show Hadeed configuration attributes and their sources",
	Long: `Show Hadeed configuration attributes and their sources.

The values displayed by this command reflect the current state of the
configuration sources: environment variables, the .env file and the config
file. These may not reflect the values used by a running server. Keys are
masked and database passwords redacted.

Config file location: /etc/hadeed/hadeed.yml (or HADEED_CONFIG_PATH)

Example:
  hadeedctl configuration show
  hadeedctl configuration show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := showConfiguration(cmd.OutOrStdout(), output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func showConfiguration(out io.Writer, output string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	switch output {
	case "json":
		jsonOutput, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, jsonOutput)
	case "text", "":
		fmt.Fprint(out, cfg.FormatText())
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", output)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "\nWarning: %v\n", err)
	}
	return nil
}

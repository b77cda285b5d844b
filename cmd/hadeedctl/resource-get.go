package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
)

// resourceGetCmd represents the resource get command
var resourceGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single resource",
	Long: `Show a single resource.

Example:
  hadeedctl resource get 5f0c6d1e-8a5b-4b5e-9c4f-6c1f1f0e2a11`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		err := withBackend(func(b *backend) error {
			r, err := b.Resources.GetResourceByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeResource(cmd.OutOrStdout(), output, *r)
		})
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Resource %s not found\n", args[0])
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get resource: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	resourceCmd.AddCommand(resourceGetCmd)
	resourceGetCmd.Flags().StringP("output", "o", "text", "Output format (text, json or yaml)")
}

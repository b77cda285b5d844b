package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
)

// resourceListCmd represents the resource list command
var resourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shared resources, newest first",
	Long: `List shared resources, newest first.

Example:
  hadeedctl resource list
  hadeedctl resource list --type reflection --limit 10 -o json`,
	Run: func(cmd *cobra.Command, args []string) {
		rawType, _ := cmd.Flags().GetString("type")
		limit, _ := cmd.Flags().GetInt("limit")
		output, _ := cmd.Flags().GetString("output")

		opts := store.ListOptions{Limit: limit}
		if rawType != "" {
			t, err := model.ParseResourceType(rawType)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			opts.Type = t
		}

		err := withBackend(func(b *backend) error {
			resources, err := b.Resources.GetResources(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return writeResources(cmd.OutOrStdout(), output, resources)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list resources: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	resourceCmd.AddCommand(resourceListCmd)
	resourceListCmd.Flags().StringP("type", "t", "", "only list resources of this type")
	resourceListCmd.Flags().IntP("limit", "n", store.DefaultListLimit, "maximum number of resources")
	resourceListCmd.Flags().StringP("output", "o", "text", "Output format (text, json or yaml)")
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/card"
)

// resourceCmd represents the resource command
var resourceCmd = &cobra.Command{
	Use:   "resource",
	Short: "Manage shared resources",
	Long:  `Add, list, inspect and bulk import shared resources.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'resource' requires a subcommand (add, list, get, import)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(resourceCmd)
}

// withBackend loads the configuration, opens the store and runs fn
func withBackend(fn func(b *backend) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	newLogger(cfg)

	b, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()
	return fn(b)
}

func writeResources(out io.Writer, format string, resources []model.Resource) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resources)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer func() { _ = enc.Close() }()
		return enc.Encode(resources)
	case "text", "":
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tTITLE\tAUTHOR\tCREATED")
		for _, r := range resources {
			title, _ := card.Truncate(r.Title, 40)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.ResourceType, title, authorName(r.Author), r.CreatedAt.UTC().Format(time.RFC3339))
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format %q (use text, json or yaml)", format)
	}
}

func writeResource(out io.Writer, format string, r model.Resource) error {
	if format != "text" && format != "" {
		return writeResources(out, format, []model.Resource{r})
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", r.ID)
	fmt.Fprintf(w, "Title:\t%s\n", r.Title)
	fmt.Fprintf(w, "Type:\t%s\n", r.ResourceType.Label())
	fmt.Fprintf(w, "Author:\t%s\n", authorName(r.Author))
	fmt.Fprintf(w, "Created:\t%s\n", r.CreatedAt.UTC().Format(time.RFC3339))
	if r.URL != "" {
		fmt.Fprintf(w, "URL:\t%s\n", r.URL)
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(w, "Tags:\t%s\n", strings.Join(r.Tags, ", "))
	}
	if r.Body != "" {
		fmt.Fprintf(w, "Body:\t%s\n", r.Body)
	}
	return w.Flush()
}

func authorName(author string) string {
	if author == "" {
		return model.DefaultAuthor
	}
	return author
}

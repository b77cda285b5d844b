package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/form"
)

// resourceAddCmd represents the resource add command
var resourceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Share a new resource",
	Long: `Share a new resource.

The same rules as the web form apply: a title is always required, a
reflection needs a body and videos and links need a URL. For links the
body is stored as the description as well.

Example:
  hadeedctl resource add --type reflection --title Patience --body "Sabr is light." --tags "sabr, character"
  hadeedctl resource add --type link --title Lecture --url https://example.com/lecture`,
	Run: func(cmd *cobra.Command, args []string) {
		rawType, _ := cmd.Flags().GetString("type")
		fields := form.Fields{}
		fields.Title, _ = cmd.Flags().GetString("title")
		fields.Body, _ = cmd.Flags().GetString("body")
		fields.URL, _ = cmd.Flags().GetString("url")
		fields.Tags, _ = cmd.Flags().GetString("tags")
		fields.Author, _ = cmd.Flags().GetString("author")

		err := withBackend(func(b *backend) error {
			return addResource(cmd.Context(), b.Resources, rawType, fields, cmd.OutOrStdout())
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add resource: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	resourceCmd.AddCommand(resourceAddCmd)
	resourceAddCmd.Flags().StringP("type", "t", string(model.ResourceTypeReflection), "resource type (reflection, video, pdf, link, picture)")
	resourceAddCmd.Flags().String("title", "", "title")
	resourceAddCmd.Flags().String("body", "", "reflection text, link description or picture caption")
	resourceAddCmd.Flags().String("url", "", "URL of the video, PDF, link or picture")
	resourceAddCmd.Flags().String("tags", "", "comma separated tags")
	resourceAddCmd.Flags().String("author", "", "author name (default Anonymous)")
}

func addResource(ctx context.Context, s store.ResourcesStore, rawType string, fields form.Fields, out io.Writer) error {
	t, err := model.ParseResourceType(rawType)
	if err != nil {
		return err
	}
	if errs := form.Validate(t, fields); errs != nil {
		return &form.ValidationError{Fields: errs}
	}

	ack, err := s.AddResource(ctx, fields.Submission(t).Input())
	if err != nil {
		return err
	}

	if ack != nil && ack.ID != "" {
		fmt.Fprintf(out, "Resource shared: %s\n", ack.ID)
		return nil
	}
	fmt.Fprintln(out, "Resource shared")
	return nil
}

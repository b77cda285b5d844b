package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/form"
)

// resourceImportCmd represents the resource import command
var resourceImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Share resources listed in a YAML file",
	Long: `Share resources listed in a YAML file.

Every entry is validated before anything is stored. Tags may be given as a
comma separated string or as a list.

Example file:
  resources:
    - title: Patience
      type: reflection
      body: Sabr is light.
      tags: sabr, character
    - title: Lecture
      type: link
      url: https://example.com/lecture
      tags: [adab]

Example:
  hadeedctl resource import seed.yml
  hadeedctl resource import seed.yml --dry-run`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		file, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", args[0], err)
			os.Exit(1)
		}
		defer func() { _ = file.Close() }()

		inputs, err := parseImport(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid import file: %v\n", err)
			os.Exit(1)
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "%d resource(s) are valid\n", len(inputs))
			return
		}

		err = withBackend(func(b *backend) error {
			return importResources(cmd.Context(), b.Resources, inputs, cmd.OutOrStdout())
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	resourceCmd.AddCommand(resourceImportCmd)
	resourceImportCmd.Flags().Bool("dry-run", false, "validate the file without storing anything")
}

type importFile struct {
	Resources []importEntry `yaml:"resources"`
}

type importEntry struct {
	Title  string     `yaml:"title"`
	Type   string     `yaml:"type"`
	Body   string     `yaml:"body"`
	URL    string     `yaml:"url"`
	Author string     `yaml:"author"`
	Tags   importTags `yaml:"tags"`
}

type importTags struct {
	model.TagInput
}

func (t *importTags) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		t.TagInput = model.TagsFromString(node.Value)
		return nil
	case yaml.SequenceNode:
		var tags []string
		if err := node.Decode(&tags); err != nil {
			return err
		}
		t.TagInput = model.TagsFromList(tags)
		return nil
	default:
		return fmt.Errorf("line %d: tags must be a string or a list", node.Line)
	}
}

// parseImport decodes and validates every entry
func parseImport(r io.Reader) ([]model.ResourceInput, error) {
	var f importFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("file is empty")
		}
		return nil, err
	}
	if len(f.Resources) == 0 {
		return nil, fmt.Errorf("no resources listed")
	}

	inputs := make([]model.ResourceInput, 0, len(f.Resources))
	for i, e := range f.Resources {
		t, err := model.ParseResourceType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("resource %d: %w", i+1, err)
		}
		fields := form.Fields{Title: e.Title, Body: e.Body, URL: e.URL, Author: e.Author}
		if errs := form.Validate(t, fields); errs != nil {
			return nil, fmt.Errorf("resource %d (%q): %w", i+1, e.Title, &form.ValidationError{Fields: errs})
		}

		in := fields.Submission(t).Input()
		in.Tags = e.Tags.TagInput
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// importResources stores the inputs in order and stops at the first failure
func importResources(ctx context.Context, s store.ResourcesStore, inputs []model.ResourceInput, out io.Writer) error {
	for i, in := range inputs {
		if _, err := s.AddResource(ctx, in); err != nil {
			return fmt.Errorf("resource %d (%q): %w; %d of %d stored", i+1, in.Title, err, i, len(inputs))
		}
	}
	fmt.Fprintf(out, "Imported %d resource(s)\n", len(inputs))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sketchdoc/sketchdoc/pkg/drawio"
	"github.com/sketchdoc/sketchdoc/pkg/editor"
)

// newOpts holds the flags for the new command.
type newOpts struct {
	name  string
	pages int
	force bool
}

func newNewCmd() *cobra.Command {
	opts := newOpts{pages: 1}

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create an empty diagram document",
		Long:  `Create a new diagram document with empty pages and write it to the given file. The diagram name defaults to the file name without extension.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.pages < 1 {
				return fmt.Errorf("invalid page count: %d (must be at least 1)", opts.pages)
			}
			return runNew(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "diagram name (default: file name without extension)")
	cmd.Flags().IntVar(&opts.pages, "pages", 1, "number of pages to create")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing file")

	return cmd
}

func runNew(ctx context.Context, path string, opts *newOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	if !opts.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	name := opts.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), drawio.Ext)
	}

	ed := editor.New(editor.WithHistoryLimit(cfg.Editor.MaxHistory))
	ed.NewDocument(name)
	for i := 1; i < opts.pages; i++ {
		if _, err := ed.AddPage(fmt.Sprintf("Page %d", i+1)); err != nil {
			return fmt.Errorf("add page: %w", err)
		}
	}
	for _, page := range ed.Diagram().Pages() {
		page.SetGridEnabled(cfg.Editor.GridEnabled)
		page.SetGridSize(cfg.Editor.GridSize)
	}

	logger.Debugf("writing %d page(s) to %s", opts.pages, path)
	if err := ed.SaveAs(path); err != nil {
		return err
	}

	printSuccess("Created %s", StyleValue.Render(path))
	printDetail("diagram %q with %d page(s)", name, opts.pages)
	printNextStep("Inspect it", fmt.Sprintf("%s info %s", appName, path))
	return nil
}

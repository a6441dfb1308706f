package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sketchdoc/sketchdoc/pkg/drawio"
	"github.com/sketchdoc/sketchdoc/pkg/model"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "info [file]",
		Short:   "Show document structure and statistics",
		Example: "  sketchdoc info examples/quickstart.drawio",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runInfo(ctx context.Context, path string) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("reading %s", path)

	diagram, err := drawio.Import(path)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(diagram.Name()))
	printKeyValue("File", path)
	printKeyValue("Pages", fmt.Sprintf("%d", diagram.PageCount()))
	if modified, ok := diagram.MetadataValue("modified"); ok {
		printKeyValue("Modified", modified)
	}
	if agent, ok := diagram.MetadataValue("agent"); ok {
		printKeyValue("Agent", agent)
	}
	printNewline()

	for i, page := range diagram.Pages() {
		grid := "off"
		if page.GridEnabled() {
			grid = fmt.Sprintf("%dpx", page.GridSize())
		}
		fmt.Printf("%s %s %s\n",
			StyleHighlight.Render(fmt.Sprintf("Page %d", i+1)),
			StyleValue.Render(page.Name()),
			StyleDim.Render("grid "+grid))
		shapes, connectors, groups := pageStats(page)
		printStats(shapes, connectors, groups)
	}

	return nil
}

// pageStats counts the elements on a page by kind.
func pageStats(page *model.Page) (shapes, connectors, groups int) {
	for _, el := range page.Elements() {
		switch el.(type) {
		case *model.Shape:
			shapes++
		case *model.Connector:
			connectors++
		case *model.Group:
			groups++
		}
	}
	return shapes, connectors, groups
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sketchdoc/sketchdoc/pkg/drawio"
	"github.com/sketchdoc/sketchdoc/pkg/model"
	"github.com/sketchdoc/sketchdoc/pkg/render"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output     string   // output file path (or base path for multiple outputs)
	formats    []string // output formats: "svg", "png", "dot", "connectivity"
	page       int      // 1-based page number
	all        bool     // export every page
	scale      float64  // PNG pixels per canvas unit
	padding    float64  // canvas units around the content bounds
	background string   // SVG background color, "none" to omit
	detailed   bool     // include geometry details in DOT output
}

// newExportCmd creates the export command for rendering document pages.
// It supports multiple output formats (SVG, PNG, DOT, connectivity) and
// exports a single page or, with --all, every page of the document.
func newExportCmd() *cobra.Command {
	var formatsStr string
	opts := exportOpts{page: 1, padding: render.DefaultPadding}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Render document pages as SVG, PNG, or graph files",
		Example: `  # Render the first page as SVG next to the input
  sketchdoc export examples/quickstart.drawio

  # Render every page as PNG at double resolution
  sketchdoc export examples/quickstart.drawio -f png --all --scale 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			if formatsStr == "" {
				formatsStr = cfg.Export.Format
			}
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if opts.scale <= 0 {
				opts.scale = cfg.Export.Scale
			}
			if !cmd.Flags().Changed("background") {
				opts.background = cfg.Export.Background
			}
			return runExport(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single page and format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, connectivity (comma-separated)")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "page number to export")
	cmd.Flags().BoolVar(&opts.all, "all", false, "export every page")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG pixels per canvas unit")
	cmd.Flags().Float64Var(&opts.padding, "padding", render.DefaultPadding, "padding around the drawing in canvas units")
	cmd.Flags().StringVar(&opts.background, "background", "#ffffff", `SVG background color ("none" to omit)`)
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include position and size details in DOT output")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "png": true, "dot": true, "connectivity": true}

// validateFormats checks that all requested formats are valid.
// It returns an error if any format is not in validFormats.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'png', 'dot', or 'connectivity')", f)
		}
	}
	return nil
}

// formatExt returns the file extension for a format. The connectivity
// format renders through Graphviz to SVG, so its extension reflects that.
func formatExt(format string) string {
	if format == "connectivity" {
		return "connectivity.svg"
	}
	return format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .dot), it strips that extension.
// This is used when generating multiple files (e.g., flow_page1.svg, flow_page2.svg).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	// Strip known format extensions from output path
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// exportPath builds the output path for one page/format combination.
// Page suffixes appear only when more than one page is exported.
func exportPath(base string, pageNum, pageCount int, format string) string {
	if pageCount > 1 {
		return fmt.Sprintf("%s_page%d.%s", base, pageNum, formatExt(format))
	}
	return fmt.Sprintf("%s.%s", base, formatExt(format))
}

// runExport loads the document from input and renders the selected pages
// to the requested formats, one file per page/format combination.
func runExport(ctx context.Context, input string, opts *exportOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Exporting %s", input)

	diagram, err := drawio.Import(input)
	if err != nil {
		return err
	}

	pages, err := selectPages(diagram, opts)
	if err != nil {
		return err
	}

	// Honor an explicit output path exactly when it names a single file.
	if opts.output != "" && len(pages) == 1 && len(opts.formats) == 1 {
		data, err := exportPage(pages[0], opts.formats[0], opts)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return err
		}
		logger.Infof("Generated %s", opts.output)
		printFile(opts.output)
		return nil
	}

	base := basePath(opts.output, input)
	p := newProgress(logger)
	written := 0
	for _, page := range pages {
		pageNum := diagram.PageIndex(page) + 1
		for _, format := range opts.formats {
			data, err := exportPage(page, format, opts)
			if err != nil {
				return fmt.Errorf("page %d/%s: %w", pageNum, format, err)
			}
			logger.Debugf("Generated %s: %d bytes", format, len(data))

			path := exportPath(base, pageNum, len(pages), format)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			printFile(path)
			written++
		}
	}
	p.done(fmt.Sprintf("Exported %d file(s)", written))
	return nil
}

// selectPages returns the pages requested by the flags, in document order.
func selectPages(diagram *model.Diagram, opts *exportOpts) ([]*model.Page, error) {
	if opts.all {
		return diagram.Pages(), nil
	}
	if opts.page < 1 || opts.page > diagram.PageCount() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", opts.page, diagram.PageCount())
	}
	return []*model.Page{diagram.PageAt(opts.page - 1)}, nil
}

// exportPage renders a single page in the given format.
func exportPage(page *model.Page, format string, opts *exportOpts) ([]byte, error) {
	switch format {
	case "svg":
		background := opts.background
		if strings.EqualFold(background, "none") {
			background = ""
		}
		return render.SVG(page, render.WithPadding(opts.padding), render.WithBackground(background)), nil
	case "png":
		return render.PNG(page, opts.scale)
	case "dot":
		return []byte(render.ToDOT(page, render.DOTOptions{Detailed: opts.detailed})), nil
	case "connectivity":
		return render.ConnectivitySVG(page, render.DOTOptions{Detailed: opts.detailed})
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

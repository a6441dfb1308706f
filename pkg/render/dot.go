package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/sketchdoc/sketchdoc/pkg/model"
	"github.com/sketchdoc/sketchdoc/pkg/observability"
)

// DOTOptions configures connectivity rendering.
type DOTOptions struct {
	// Detailed includes shape kind and geometry in node labels.
	// When false, only the element label (or id) is shown.
	Detailed bool
}

// ToDOT reduces a page to its connectivity and emits it in Graphviz DOT
// format. Shapes and groups become nodes and connectors become edges,
// letting Graphviz lay out the wiring without the stored positions.
// Connectors with an endpoint that does not resolve to a shape or group on
// the page are left out. The result can be rendered with [ConnectivitySVG].
func ToDOT(page *model.Page, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, el := range page.Elements() {
		switch v := el.(type) {
		case *model.Shape:
			fmt.Fprintf(&buf, "  %q [label=%q];\n", v.ID(), shapeNodeLabel(v, opts.Detailed))
		case *model.Group:
			fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n",
				v.ID(), groupNodeLabel(v, opts.Detailed))
		}
	}

	buf.WriteString("\n")
	for _, el := range page.Elements() {
		conn, ok := el.(*model.Connector)
		if !ok {
			continue
		}
		if !isNode(page, conn.SourceID()) || !isNode(page, conn.TargetID()) {
			continue
		}
		if conn.Value() != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", conn.SourceID(), conn.TargetID(), conn.Value())
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", conn.SourceID(), conn.TargetID())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func shapeNodeLabel(s *model.Shape, detailed bool) string {
	label := s.Value()
	if label == "" {
		label = s.ID()
	}
	if !detailed {
		return label
	}
	p := s.Position()
	w, h := s.Size()
	parts := []string{
		fmt.Sprintf("kind: %s", s.Kind()),
		fmt.Sprintf("at: %g,%g", p.X, p.Y),
		fmt.Sprintf("size: %gx%g", w, h),
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func groupNodeLabel(g *model.Group, detailed bool) string {
	label := g.Value()
	if label == "" {
		label = g.ID()
	}
	if !detailed {
		return label
	}
	return label + fmt.Sprintf("\nchildren: %d", len(g.ChildIDs()))
}

func isNode(page *model.Page, id string) bool {
	if id == "" {
		return false
	}
	el, ok := page.ElementByID(id)
	if !ok {
		return false
	}
	switch el.(type) {
	case *model.Shape, *model.Group:
		return true
	}
	return false
}

// ConnectivitySVG renders the page's connectivity graph as an SVG document
// laid out by Graphviz.
func ConnectivitySVG(page *model.Page, opts DOTOptions) ([]byte, error) {
	start := time.Now()
	out, err := dotToSVG(ToDOT(page, opts))
	observability.Render().OnRender("connectivity", page.Name(), time.Since(start), err)
	return out, err
}

func dotToSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz SVG header to a zero-origin
// viewBox with pixel dimensions, which embeds cleanly in HTML.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

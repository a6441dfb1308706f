package render

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/sketchdoc/sketchdoc/pkg/model"
	"github.com/sketchdoc/sketchdoc/pkg/observability"
)

// DefaultPadding is the margin, in page units, added around the content
// bounds of SVG and PNG output.
const DefaultPadding = 20.0

const labelFontSize = 12.0

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	padding    float64
	background string
}

// WithPadding overrides the margin around the content bounds.
func WithPadding(padding float64) SVGOption {
	return func(r *svgRenderer) { r.padding = padding }
}

// WithBackground overrides the background color. Pass "" to omit the
// background rect entirely, leaving the page transparent.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// SVG renders a page as a standalone SVG document. Shapes and connectors
// keep their stored geometry and styles; the frame is sized to the shape
// bounds plus padding. Groups have no visual form of their own and are
// left out.
func SVG(page *model.Page, opts ...SVGOption) []byte {
	start := time.Now()
	r := newSVGRenderer(opts...)

	shapes, connectors := splitElements(page)
	minX, minY, width, height := frame(page, r.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g" width="%g" height="%g">`+"\n",
		minX, minY, width, height, width, height)

	renderMarkerDefs(&buf, connectors)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>`+"\n",
			minX, minY, width, height, esc(r.background))
	}

	for _, s := range shapes {
		renderShape(&buf, s)
	}
	for _, c := range connectors {
		renderConnector(&buf, c, page)
	}
	for _, s := range shapes {
		renderShapeLabel(&buf, s)
	}
	for _, c := range connectors {
		renderConnectorLabel(&buf, c, page)
	}

	buf.WriteString("</svg>\n")

	observability.Render().OnRender("svg", page.Name(), time.Since(start), nil)
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{padding: DefaultPadding, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// splitElements partitions a page's elements into shapes and connectors,
// preserving page order. Groups are dropped.
func splitElements(page *model.Page) ([]*model.Shape, []*model.Connector) {
	var shapes []*model.Shape
	var connectors []*model.Connector
	for _, el := range page.Elements() {
		switch v := el.(type) {
		case *model.Shape:
			shapes = append(shapes, v)
		case *model.Connector:
			connectors = append(connectors, v)
		}
	}
	return shapes, connectors
}

// contentBounds returns the bounding box of all shapes on the page.
// Connectors and groups do not contribute. An empty page gets a default
// 800x600 frame anchored at the origin.
func contentBounds(page *model.Page) (minX, minY, maxX, maxY float64) {
	found := false
	for _, el := range page.Elements() {
		s, ok := el.(*model.Shape)
		if !ok {
			continue
		}
		p := s.Position()
		w, h := s.Size()
		if !found {
			minX, minY = p.X, p.Y
			maxX, maxY = p.X+w, p.Y+h
			found = true
			continue
		}
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X+w)
		maxY = math.Max(maxY, p.Y+h)
	}
	if !found {
		return 0, 0, 800, 600
	}
	return minX, minY, maxX, maxY
}

func frame(page *model.Page, padding float64) (minX, minY, width, height float64) {
	minX, minY, maxX, maxY := contentBounds(page)
	minX -= padding
	minY -= padding
	return minX, minY, maxX - minX + padding, maxY - minY + padding
}

// renderMarkerDefs emits one arrowhead marker per connector that draws an
// end arrow, so each path can reference a marker in its own stroke color.
func renderMarkerDefs(buf *bytes.Buffer, connectors []*model.Connector) {
	var arrowed []*model.Connector
	for _, c := range connectors {
		if styleOr(c, "endArrow", "classic") != "none" {
			arrowed = append(arrowed, c)
		}
	}
	if len(arrowed) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, c := range arrowed {
		stroke := styleOr(c, "strokeColor", "#000000")
		fmt.Fprintf(buf, `    <marker id="arrow_%s" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="6" markerHeight="6" orient="auto">`, esc(c.ID()))
		fmt.Fprintf(buf, `<path d="M 0,0 L 10,5 L 0,10 z" fill="%s"/></marker>`+"\n", esc(stroke))
	}
	buf.WriteString("  </defs>\n")
}

func renderShape(buf *bytes.Buffer, s *model.Shape) {
	p := s.Position()
	w, h := s.Size()

	fmt.Fprintf(buf, `  <g id="%s"`, esc(s.ID()))
	if deg := s.Rotation(); deg != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%g %g %g)"`, deg, p.X+w/2, p.Y+h/2)
	}
	buf.WriteString(">\n")

	paint := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%s"`,
		esc(styleOr(s, "fillColor", "#ffffff")),
		esc(styleOr(s, "strokeColor", "#000000")),
		esc(styleOr(s, "strokeWidth", "1")))

	switch s.Kind() {
	case model.ShapeKindEllipse:
		fmt.Fprintf(buf, `    <ellipse cx="%g" cy="%g" rx="%g" ry="%g" %s/>`+"\n",
			p.X+w/2, p.Y+h/2, w/2, h/2, paint)
	case model.ShapeKindTriangle:
		fmt.Fprintf(buf, `    <polygon points="%g,%g %g,%g %g,%g" %s/>`+"\n",
			p.X+w/2, p.Y, p.X, p.Y+h, p.X+w, p.Y+h, paint)
	case model.ShapeKindDiamond:
		fmt.Fprintf(buf, `    <polygon points="%g,%g %g,%g %g,%g %g,%g" %s/>`+"\n",
			p.X+w/2, p.Y, p.X+w, p.Y+h/2, p.X+w/2, p.Y+h, p.X, p.Y+h/2, paint)
	default:
		// Stencil and custom kinds fall back to their bounding rectangle.
		if styleOr(s, "rounded", "0") == "1" {
			fmt.Fprintf(buf, `    <rect x="%g" y="%g" width="%g" height="%g" rx="5" ry="5" %s/>`+"\n",
				p.X, p.Y, w, h, paint)
		} else {
			fmt.Fprintf(buf, `    <rect x="%g" y="%g" width="%g" height="%g" %s/>`+"\n",
				p.X, p.Y, w, h, paint)
		}
	}

	buf.WriteString("  </g>\n")
}

func renderShapeLabel(buf *bytes.Buffer, s *model.Shape) {
	if s.Value() == "" {
		return
	}
	p := s.Position()
	w, h := s.Size()
	renderLabel(buf, model.Point{X: p.X + w/2, Y: p.Y + h/2}, s.Value(), styleOr(s, "fontColor", "#000000"))
}

func renderConnector(buf *bytes.Buffer, c *model.Connector, page *model.Page) {
	src, dst := connectorEndpoints(c, page)

	var d strings.Builder
	fmt.Fprintf(&d, "M %g,%g", src.X, src.Y)
	for _, wp := range c.Waypoints() {
		fmt.Fprintf(&d, " L %g,%g", wp.X, wp.Y)
	}
	fmt.Fprintf(&d, " L %g,%g", dst.X, dst.Y)

	fmt.Fprintf(buf, `  <path id="%s" d="%s" fill="none" stroke="%s" stroke-width="%s"`,
		esc(c.ID()), d.String(),
		esc(styleOr(c, "strokeColor", "#000000")),
		esc(styleOr(c, "strokeWidth", "1")))
	if styleOr(c, "endArrow", "classic") != "none" {
		fmt.Fprintf(buf, ` marker-end="url(#arrow_%s)"`, esc(c.ID()))
	}
	buf.WriteString("/>\n")
}

func renderConnectorLabel(buf *bytes.Buffer, c *model.Connector, page *model.Page) {
	if c.Value() == "" {
		return
	}
	renderLabel(buf, connectorLabelPoint(c, page), c.Value(), styleOr(c, "fontColor", "#000000"))
}

func renderLabel(buf *bytes.Buffer, at model.Point, text, fill string) {
	fmt.Fprintf(buf, `  <text x="%g" y="%g" text-anchor="middle" dominant-baseline="middle" font-family="Arial" font-size="%g" fill="%s">%s</text>`+"\n",
		at.X, at.Y, labelFontSize, esc(fill), esc(text))
}

// connectorEndpoints resolves a connector's endpoints to the centers of its
// source and target shapes. Endpoints that do not resolve fall back to the
// connector's own position, with the target offset to the right so the
// dangling line stays visible.
func connectorEndpoints(c *model.Connector, page *model.Page) (model.Point, model.Point) {
	pos := c.Position()
	src, ok := shapeCenter(page, c.SourceID())
	if !ok {
		src = pos
	}
	dst, ok := shapeCenter(page, c.TargetID())
	if !ok {
		dst = model.Point{X: pos.X + 100, Y: pos.Y}
	}
	return src, dst
}

func shapeCenter(page *model.Page, id string) (model.Point, bool) {
	if id == "" {
		return model.Point{}, false
	}
	el, ok := page.ElementByID(id)
	if !ok {
		return model.Point{}, false
	}
	s, ok := el.(*model.Shape)
	if !ok {
		return model.Point{}, false
	}
	p := s.Position()
	w, h := s.Size()
	return model.Point{X: p.X + w/2, Y: p.Y + h/2}, true
}

// connectorLabelPoint places a connector label on the middle waypoint, or
// halfway between the endpoints when the connector has none.
func connectorLabelPoint(c *model.Connector, page *model.Page) model.Point {
	wps := c.Waypoints()
	if len(wps) > 0 {
		return wps[len(wps)/2]
	}
	src, dst := connectorEndpoints(c, page)
	return model.Point{X: (src.X + dst.X) / 2, Y: (src.Y + dst.Y) / 2}
}

func esc(s string) string { return html.EscapeString(s) }

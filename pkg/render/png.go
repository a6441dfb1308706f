package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/fogleman/gg"

	"github.com/sketchdoc/sketchdoc/pkg/fonts"
	"github.com/sketchdoc/sketchdoc/pkg/model"
	"github.com/sketchdoc/sketchdoc/pkg/observability"
)

// PNG rasterizes a page. A scale of 1.0 maps one page unit to one pixel;
// 2.0 doubles the resolution for high-DPI displays. Scales of zero or less
// render at 1.0. The frame matches what [SVG] produces: shape bounds plus
// [DefaultPadding] on a white background.
func PNG(page *model.Page, scale float64) ([]byte, error) {
	start := time.Now()
	data, err := renderPNG(page, scale)
	observability.Render().OnRender("png", page.Name(), time.Since(start), err)
	return data, err
}

func renderPNG(page *model.Page, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}

	minX, minY, maxX, maxY := contentBounds(page)
	minX -= DefaultPadding
	minY -= DefaultPadding
	maxX += DefaultPadding
	maxY += DefaultPadding

	width := int(math.Ceil((maxX - minX) * scale))
	height := int(math.Ceil((maxY - minY) * scale))

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	face, err := fonts.Face(labelFontSize * scale)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)

	c := pngCanvas{dc: dc, minX: minX, minY: minY, scale: scale}

	// Connectors go down first so shapes cover the line ends, then labels
	// on top of everything.
	shapes, connectors := splitElements(page)
	for _, conn := range connectors {
		c.drawConnector(conn, page)
	}
	for _, s := range shapes {
		c.drawShape(s)
	}
	for _, s := range shapes {
		c.drawShapeLabel(s)
	}
	for _, conn := range connectors {
		c.drawConnectorLabel(conn, page)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// pngCanvas maps page coordinates onto a drawing context.
type pngCanvas struct {
	dc         *gg.Context
	minX, minY float64
	scale      float64
}

func (c pngCanvas) px(x float64) float64 { return (x - c.minX) * c.scale }
func (c pngCanvas) py(y float64) float64 { return (y - c.minY) * c.scale }

func (c pngCanvas) drawShape(s *model.Shape) {
	p := s.Position()
	w, h := s.Size()
	x, y := c.px(p.X), c.py(p.Y)
	pw, ph := w*c.scale, h*c.scale

	if deg := s.Rotation(); deg != 0 {
		c.dc.Push()
		c.dc.RotateAbout(gg.Radians(deg), x+pw/2, y+ph/2)
		defer c.dc.Pop()
	}

	switch s.Kind() {
	case model.ShapeKindEllipse:
		c.dc.DrawEllipse(x+pw/2, y+ph/2, pw/2, ph/2)
	case model.ShapeKindTriangle:
		c.dc.MoveTo(x+pw/2, y)
		c.dc.LineTo(x, y+ph)
		c.dc.LineTo(x+pw, y+ph)
		c.dc.ClosePath()
	case model.ShapeKindDiamond:
		c.dc.MoveTo(x+pw/2, y)
		c.dc.LineTo(x+pw, y+ph/2)
		c.dc.LineTo(x+pw/2, y+ph)
		c.dc.LineTo(x, y+ph/2)
		c.dc.ClosePath()
	default:
		if styleOr(s, "rounded", "0") == "1" {
			c.dc.DrawRoundedRectangle(x, y, pw, ph, 5*c.scale)
		} else {
			c.dc.DrawRectangle(x, y, pw, ph)
		}
	}

	fill, paintFill := colorOr(s, "fillColor", color.White)
	stroke, paintStroke := colorOr(s, "strokeColor", color.Black)

	if paintFill {
		c.dc.SetColor(fill)
		if paintStroke {
			c.dc.FillPreserve()
		} else {
			c.dc.Fill()
		}
	}
	if paintStroke {
		c.dc.SetColor(stroke)
		c.dc.SetLineWidth(strokeWidthOf(s) * c.scale)
		c.dc.Stroke()
	} else if !paintFill {
		c.dc.ClearPath()
	}
}

func (c pngCanvas) drawShapeLabel(s *model.Shape) {
	if s.Value() == "" {
		return
	}
	col, paint := colorOr(s, "fontColor", color.Black)
	if !paint {
		return
	}
	p := s.Position()
	w, h := s.Size()
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(s.Value(), c.px(p.X+w/2), c.py(p.Y+h/2), 0.5, 0.5)
}

func (c pngCanvas) drawConnector(conn *model.Connector, page *model.Page) {
	src, dst := connectorEndpoints(conn, page)
	points := append([]model.Point{src}, conn.Waypoints()...)
	points = append(points, dst)

	stroke, paint := colorOr(conn, "strokeColor", color.Black)
	if !paint {
		return
	}
	c.dc.SetColor(stroke)
	c.dc.SetLineWidth(strokeWidthOf(conn) * c.scale)
	for i := 0; i < len(points)-1; i++ {
		c.dc.DrawLine(c.px(points[i].X), c.py(points[i].Y), c.px(points[i+1].X), c.py(points[i+1].Y))
		c.dc.Stroke()
	}

	if styleOr(conn, "endArrow", "classic") != "none" {
		c.drawArrowhead(points[len(points)-2], points[len(points)-1])
	}
}

// drawArrowhead fills a triangle at the segment end, pointing along the
// segment direction. The stroke color must already be set.
func (c pngCanvas) drawArrowhead(from, to model.Point) {
	fx, fy := c.px(from.X), c.py(from.Y)
	tx, ty := c.px(to.X), c.py(to.Y)

	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	size := 6.0 * c.scale
	const flare = 0.5

	c.dc.MoveTo(tx, ty)
	c.dc.LineTo(tx-size*dx+size*dy*flare, ty-size*dy-size*dx*flare)
	c.dc.LineTo(tx-size*dx-size*dy*flare, ty-size*dy+size*dx*flare)
	c.dc.ClosePath()
	c.dc.Fill()
}

func (c pngCanvas) drawConnectorLabel(conn *model.Connector, page *model.Page) {
	if conn.Value() == "" {
		return
	}
	col, paint := colorOr(conn, "fontColor", color.Black)
	if !paint {
		return
	}
	at := connectorLabelPoint(conn, page)
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(conn.Value(), c.px(at.X), c.py(at.Y), 0.5, 0.5)
}

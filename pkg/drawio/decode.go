package drawio

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sketchdoc/sketchdoc/pkg/errors"
	"github.com/sketchdoc/sketchdoc/pkg/model"
)

// Read decodes a diagram document from r.
//
// The input must be an XML document with an mxfile root; anything else
// is a fatal format error. Each diagram child becomes one [model.Page],
// in document order. A diagram's payload may be literal graph-model
// XML, or base64 text wrapping a deflate-compressed (raw or zlib)
// graph model; a payload that decodes under none of these returns a
// [errors.PayloadError] and the whole load fails.
//
// Cells with the reserved ids "0" and "1", cells without an id, and
// cells with neither a vertex nor an edge flag are skipped. An edge
// flag produces a [model.Connector]; a vertex cell whose style carries
// group=1 produces a [model.Group], any other vertex a [model.Shape].
// Geometry attributes default to zero when absent, and a shape's size
// is applied only when both width and height are positive. Group
// membership is rebuilt from cell parent attributes after all elements
// exist.
//
// File-level attributes (host, modified, agent, version, etag) are
// captured into the diagram metadata when present.
//
// The returned diagram is independent of r and carries no observers.
// Read does not close r.
func Read(r io.Reader) (*model.Diagram, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read document")
	}

	var file mxFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "not a diagram document")
	}

	diagram := model.NewDiagram("")
	for key, value := range map[string]string{
		"host":     file.Host,
		"modified": file.Modified,
		"agent":    file.Agent,
		"version":  file.Version,
		"etag":     file.Etag,
	} {
		if value != "" {
			diagram.SetMetadata(key, value)
		}
	}
	for idx, de := range file.Diagrams {
		name := de.Name
		if name == "" {
			name = fmt.Sprintf("Page %d", idx+1)
		}
		page := model.NewPage(name)
		diagram.AddPage(page)

		payload := payloadText(de.Payload)
		if payload == "" {
			continue
		}
		gm, err := decodePayload(payload, name)
		if err != nil {
			return nil, err
		}
		if err := buildPage(page, gm); err != nil {
			return nil, fmt.Errorf("page %q: %w", name, err)
		}
	}
	return diagram, nil
}

// Import reads the file at path and returns the decoded diagram. The
// diagram is named after the file, with the format extension stripped.
//
// Import returns the same format errors as [Read] for malformed
// documents or undecodable payloads.
func Import(path string) (*model.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	diagram, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	diagram.SetName(strings.TrimSuffix(filepath.Base(path), Ext))
	return diagram, nil
}

// buildPage populates page from a decoded graph model.
func buildPage(page *model.Page, gm *graphModel) error {
	if gm.Grid != "" {
		page.SetGridEnabled(gm.Grid != "0")
	}
	if gm.GridSize != "" {
		size, err := strconv.Atoi(gm.GridSize)
		if err != nil {
			return fmt.Errorf("grid size %q: %w", gm.GridSize, err)
		}
		page.SetGridSize(size)
	}

	groups := make(map[string]*model.Group)
	for _, cell := range gm.Root.Cells {
		if cell.ID == "" || cell.ID == rootCellID || cell.ID == layerCellID {
			continue
		}

		var (
			el  model.Element
			err error
		)
		switch {
		case cell.Edge == "1":
			el, err = decodeConnector(cell)
		case cell.Vertex == "1":
			style := model.ParseStyleString(cell.Style)
			if v, ok := style.Get("group"); ok && v == "1" {
				el, err = decodeGroup(cell)
			} else {
				el, err = decodeShape(cell, style)
			}
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("cell %s: %w", cell.ID, err)
		}

		if parent := cell.Parent; parent != "" && parent != layerCellID {
			el.SetParentID(parent)
		}
		if err := page.AddElement(el); err != nil {
			return fmt.Errorf("cell %s: %w", cell.ID, err)
		}
		if g, ok := el.(*model.Group); ok {
			groups[g.ID()] = g
		}
	}

	// Group membership is not stored in the file; rebuild it from the
	// parent attributes once every element exists.
	for _, el := range page.Elements() {
		if g, ok := groups[el.ParentID()]; ok {
			g.AddChild(el.ID())
		}
	}
	return nil
}

func decodeShape(cell mxCell, style *model.Style) (*model.Shape, error) {
	shape := model.NewShape(cell.ID, shapeKind(style))
	if cell.Value != nil {
		shape.SetValue(*cell.Value)
	}
	shape.ApplyStyleString(cell.Style)

	if g := cell.Geometry; g != nil {
		pos, err := decodePoint(g.X, g.Y)
		if err != nil {
			return nil, err
		}
		shape.SetPosition(pos)

		width, err := attrFloat(g.Width)
		if err != nil {
			return nil, fmt.Errorf("width %q: %w", g.Width, err)
		}
		height, err := attrFloat(g.Height)
		if err != nil {
			return nil, fmt.Errorf("height %q: %w", g.Height, err)
		}
		if width > 0 && height > 0 {
			shape.SetSize(width, height)
		}
	}

	// Keep the rotation field in step with a rotation style carried by
	// the file. A non-numeric value stays style-only.
	if r, ok := style.Get("rotation"); ok {
		if deg, err := strconv.ParseFloat(r, 64); err == nil {
			shape.SetRotation(deg)
		}
	}
	return shape, nil
}

func decodeConnector(cell mxCell) (*model.Connector, error) {
	conn := model.NewConnector(cell.ID, cell.Source, cell.Target)
	if cell.Value != nil {
		conn.SetValue(*cell.Value)
	}
	conn.ApplyStyleString(cell.Style)

	if g := cell.Geometry; g != nil {
		pos, err := decodePoint(g.X, g.Y)
		if err != nil {
			return nil, err
		}
		conn.SetPosition(pos)

		for _, pt := range g.Points {
			wp, err := decodePoint(pt.X, pt.Y)
			if err != nil {
				return nil, fmt.Errorf("waypoint: %w", err)
			}
			conn.AddWaypoint(wp)
		}
	}
	return conn, nil
}

func decodeGroup(cell mxCell) (*model.Group, error) {
	group := model.NewGroup(cell.ID)
	if cell.Value != nil {
		group.SetValue(*cell.Value)
	}
	group.ApplyStyleString(cell.Style)
	if cell.Collapsed == "1" {
		group.SetCollapsed(true)
	}

	if g := cell.Geometry; g != nil {
		pos, err := decodePoint(g.X, g.Y)
		if err != nil {
			return nil, err
		}
		group.SetPosition(pos)
	}
	return group, nil
}

// shapeKind resolves the shape kind from the style. The shape key is
// authoritative; bare kind tokens written by the foreign editor are
// recognized as a fallback, and rhombus maps to the diamond kind.
func shapeKind(style *model.Style) model.ShapeKind {
	if v, ok := style.Get("shape"); ok && v != "" {
		return model.ShapeKind(v)
	}
	switch {
	case style.Has("ellipse"):
		return model.ShapeKindEllipse
	case style.Has("triangle"):
		return model.ShapeKindTriangle
	case style.Has("rhombus"):
		return model.ShapeKindDiamond
	}
	return model.ShapeKindRectangle
}

func decodePoint(x, y string) (model.Point, error) {
	px, err := attrFloat(x)
	if err != nil {
		return model.Point{}, fmt.Errorf("x %q: %w", x, err)
	}
	py, err := attrFloat(y)
	if err != nil {
		return model.Point{}, fmt.Errorf("y %q: %w", y, err)
	}
	return model.Point{X: px, Y: py}, nil
}

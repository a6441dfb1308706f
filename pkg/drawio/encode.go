package drawio

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sketchdoc/sketchdoc/pkg/buildinfo"
	"github.com/sketchdoc/sketchdoc/pkg/model"
)

// Option configures Write and Export.
type Option func(*options)

type options struct {
	raw bool
}

// WithRawPayload embeds each page's graph model as literal XML instead
// of a compressed base64 payload. The output is larger but diffable.
func WithRawPayload() Option {
	return func(o *options) {
		o.raw = true
	}
}

// Write encodes diagram as an XML document and writes it to w.
//
// Each page becomes a diagram element with a generated id. The page's
// graph model lists the two reserved infrastructure cells first, then
// one cell per element in page order: shapes and groups as vertex
// cells with a geometry child (groups with a fixed default size),
// connectors as edge cells with optional source/target attributes and
// one point child per waypoint. Payloads are deflate-compressed and
// base64-encoded unless [WithRawPayload] is given.
//
// The output can be re-read with [Read] for round-trip processing and
// opens in editors that speak the foreign dialect.
func Write(diagram *model.Diagram, w io.Writer, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	file := mxFile{
		Host:     fileHost,
		Modified: time.Now().UTC().Format(timestampLayout),
		Agent:    buildinfo.Agent(),
		Version:  dialectVersion,
		Etag:     uuid.NewString(),
		Type:     fileType,
	}
	for _, page := range diagram.Pages() {
		gm := encodePage(page)
		payload, err := xml.Marshal(gm)
		if err != nil {
			return fmt.Errorf("encode page %q: %w", page.Name(), err)
		}
		if !o.raw {
			payload, err = encodePayload(payload)
			if err != nil {
				return fmt.Errorf("compress page %q: %w", page.Name(), err)
			}
		}
		file.Diagrams = append(file.Diagrams, diagramElem{
			ID:      uuid.NewString(),
			Name:    page.Name(),
			Payload: payload,
		})
	}

	out, err := xml.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Export writes diagram to a file at path. The document is written to
// a temporary file in the same directory and renamed into place, so a
// failed export never truncates an existing file.
func Export(diagram *model.Diagram, path string, opts ...Option) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".sketchdoc-*"+Ext)
	if err != nil {
		return fmt.Errorf("create temp in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(diagram, tmp, opts...); err != nil {
		tmp.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

func encodePage(page *model.Page) graphModel {
	gm := graphModel{
		DX:         "1326",
		DY:         "798",
		Grid:       boolAttr(page.GridEnabled()),
		GridSize:   strconv.Itoa(page.GridSize()),
		Guides:     "1",
		Tooltips:   "1",
		Connect:    "1",
		Arrows:     "1",
		Fold:       "1",
		Page:       "1",
		PageScale:  "1",
		PageWidth:  "850",
		PageHeight: "1100",
		Math:       "0",
		Shadow:     "0",
	}
	elements := page.Elements()
	gm.Root.Cells = make([]mxCell, 0, len(elements)+2)
	gm.Root.Cells = append(gm.Root.Cells,
		mxCell{ID: rootCellID},
		mxCell{ID: layerCellID, Parent: rootCellID},
	)
	for _, el := range elements {
		gm.Root.Cells = append(gm.Root.Cells, encodeCell(el))
	}
	return gm
}

func encodeCell(el model.Element) mxCell {
	value := el.Value()
	cell := mxCell{
		ID:     el.ID(),
		Value:  &value,
		Style:  el.StyleString(),
		Parent: parentAttr(el.ParentID()),
	}

	switch v := el.(type) {
	case *model.Shape:
		cell.Vertex = "1"
		pos := v.Position()
		cell.Geometry = &mxGeometry{
			X:      formatCoord(pos.X),
			Y:      formatCoord(pos.Y),
			Width:  formatCoord(v.Width()),
			Height: formatCoord(v.Height()),
			As:     "geometry",
		}
	case *model.Group:
		cell.Vertex = "1"
		if v.Collapsed() {
			cell.Collapsed = "1"
		}
		pos := v.Position()
		cell.Geometry = &mxGeometry{
			X:      formatCoord(pos.X),
			Y:      formatCoord(pos.Y),
			Width:  formatCoord(groupCellWidth),
			Height: formatCoord(groupCellHeight),
			As:     "geometry",
		}
	case *model.Connector:
		cell.Edge = "1"
		cell.Source = v.SourceID()
		cell.Target = v.TargetID()
		geo := &mxGeometry{Relative: "1", As: "geometry"}
		if pos := v.Position(); pos.X != 0 || pos.Y != 0 {
			geo.X = formatCoord(pos.X)
			geo.Y = formatCoord(pos.Y)
		}
		for _, wp := range v.Waypoints() {
			geo.Points = append(geo.Points, mxPoint{
				X: formatCoord(wp.X),
				Y: formatCoord(wp.Y),
			})
		}
		cell.Geometry = geo
	}
	return cell
}

func parentAttr(parentID string) string {
	if parentID == "" {
		return layerCellID
	}
	return parentID
}

func boolAttr(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

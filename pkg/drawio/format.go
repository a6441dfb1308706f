package drawio

import "encoding/xml"

// Ext is the canonical file extension for documents in this format.
const Ext = ".drawio"

// Reserved cell ids present in every graph-model document. Cell "0" is
// the root of the cell tree and cell "1" is the default layer; elements
// without an explicit parent attach to the layer.
const (
	rootCellID  = "0"
	layerCellID = "1"
)

// Wrapper metadata written on export. The version pins the foreign
// dialect revision the cell attributes conform to, not this module's
// release.
const (
	fileHost        = "SketchDoc"
	fileType        = "device"
	dialectVersion  = "14.6.13"
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// Groups carry no size of their own, so exported group cells get a
// fixed bounding box the foreign editor can render.
const (
	groupCellWidth  = 200.0
	groupCellHeight = 200.0
)

// mxFile is the top-level wrapper element. Anything other than an
// mxfile root is a fatal format error.
type mxFile struct {
	XMLName  xml.Name      `xml:"mxfile"`
	Host     string        `xml:"host,attr"`
	Modified string        `xml:"modified,attr"`
	Agent    string        `xml:"agent,attr"`
	Version  string        `xml:"version,attr"`
	Etag     string        `xml:"etag,attr"`
	Type     string        `xml:"type,attr"`
	Diagrams []diagramElem `xml:"diagram"`
}

// diagramElem holds one page. Payload captures the raw inner bytes:
// either base64 text wrapping a compressed graph model, or a literal
// graph-model XML child.
type diagramElem struct {
	ID      string `xml:"id,attr"`
	Name    string `xml:"name,attr"`
	Payload []byte `xml:",innerxml"`
}

// graphModel is the per-page cell container. The viewport and canvas
// attributes mirror the foreign editor's defaults; grid and gridSize
// reflect the page's own settings and round-trip through load.
type graphModel struct {
	XMLName    xml.Name `xml:"mxGraphModel"`
	DX         string   `xml:"dx,attr"`
	DY         string   `xml:"dy,attr"`
	Grid       string   `xml:"grid,attr"`
	GridSize   string   `xml:"gridSize,attr"`
	Guides     string   `xml:"guides,attr"`
	Tooltips   string   `xml:"tooltips,attr"`
	Connect    string   `xml:"connect,attr"`
	Arrows     string   `xml:"arrows,attr"`
	Fold       string   `xml:"fold,attr"`
	Page       string   `xml:"page,attr"`
	PageScale  string   `xml:"pageScale,attr"`
	PageWidth  string   `xml:"pageWidth,attr"`
	PageHeight string   `xml:"pageHeight,attr"`
	Math       string   `xml:"math,attr"`
	Shadow     string   `xml:"shadow,attr"`
	Root       rootElem `xml:"root"`
}

type rootElem struct {
	Cells []mxCell `xml:"mxCell"`
}

// mxCell is one graph node. A vertex attribute of "1" marks shapes and
// groups, an edge attribute of "1" marks connectors; cells with neither
// flag are ignored. Value uses a pointer so the reserved cells can omit
// the attribute entirely while element cells keep an explicit value=""
// when the label is empty.
type mxCell struct {
	ID        string      `xml:"id,attr"`
	Value     *string     `xml:"value,attr"`
	Style     string      `xml:"style,attr,omitempty"`
	Parent    string      `xml:"parent,attr,omitempty"`
	Vertex    string      `xml:"vertex,attr,omitempty"`
	Edge      string      `xml:"edge,attr,omitempty"`
	Source    string      `xml:"source,attr,omitempty"`
	Target    string      `xml:"target,attr,omitempty"`
	Collapsed string      `xml:"collapsed,attr,omitempty"`
	Geometry  *mxGeometry `xml:"mxGeometry"`
}

// mxGeometry carries position and size for vertex cells, and the
// waypoint list for edge cells. Numeric attributes stay strings so
// absent values are distinguishable from explicit zeros.
type mxGeometry struct {
	X        string    `xml:"x,attr,omitempty"`
	Y        string    `xml:"y,attr,omitempty"`
	Width    string    `xml:"width,attr,omitempty"`
	Height   string    `xml:"height,attr,omitempty"`
	Relative string    `xml:"relative,attr,omitempty"`
	As       string    `xml:"as,attr"`
	Points   []mxPoint `xml:"mxPoint"`
}

type mxPoint struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
}

// Package render turns document pages into visual output.
//
// # Overview
//
// Three renderers share the same page model:
//
//   - [SVG] draws shapes and connectors as vector elements, preserving the
//     positions, sizes, and styles stored on the page.
//   - [PNG] rasterizes the same geometry for contexts that cannot display
//     SVG, at a configurable scale.
//   - [ToDOT] and [ConnectivitySVG] reduce a page to its connectivity and
//     let Graphviz lay it out as a directed graph, which is useful when the
//     wiring matters and the stored positions do not.
//
// # Coordinates
//
// SVG and PNG render in page coordinates. The output frame is the bounding
// box of all shapes plus a padding margin; an empty page renders as a blank
// 800x600 frame. Connectors and groups never grow the frame, so waypoints
// far outside the shape bounds may be clipped.
//
// # Usage
//
//	page := doc.PageAt(0)
//
//	svg := render.SVG(page)
//	png, err := render.PNG(page, 2.0) // 2x resolution
//	overview, err := render.ConnectivitySVG(page, render.DOTOptions{})
//
// Each render reports format, page name, duration, and error through the
// hooks registered with [observability.SetRenderHooks].
//
// [observability.SetRenderHooks]: github.com/sketchdoc/sketchdoc/pkg/observability#SetRenderHooks
package render

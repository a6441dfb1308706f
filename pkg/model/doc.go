// Package model provides the in-memory document tree for diagram editing:
// a [Diagram] that owns ordered [Page] values, which in turn own ordered
// drawable elements ([Shape], [Connector], and [Group]).
//
// # Overview
//
// The model is the single source of truth that editors, codecs, and
// renderers operate on. It is deliberately free of I/O and rendering
// concerns: packages higher in the stack translate it to wire formats or
// pixels, while this package only guards structural consistency and
// reports mutations.
//
// # Basic Usage
//
// Create a diagram with [NewDiagram], add pages, and populate them with
// elements:
//
//	d := model.NewDiagram("Architecture")
//	p := model.NewPage("Page 1")
//	d.AddPage(p)
//
//	box := model.NewShape("node1", model.ShapeKindRectangle)
//	box.SetValue("API Gateway")
//	box.SetPosition(model.Point{X: 40, Y: 40})
//	box.SetSize(160, 80)
//	p.AddElement(box)
//
// # Element Variants
//
// Every drawable entity implements the [Element] interface and is exactly
// one of three variants:
//
//   - [Shape]: a geometric node with a kind tag, size, and rotation
//   - [Connector]: an edge with optional source/target endpoints and waypoints
//   - [Group]: a logical container tracking child element ids
//
// The variant set is closed; code that needs per-variant behavior switches
// on the concrete type. References between elements (parent ids, connector
// endpoints, group children) are plain id strings and are not validated by
// the model, so documents with dangling references remain representable.
//
// # Observers
//
// Diagrams, pages, and elements accept [Observer] registrations. Every
// state mutation notifies the observers of the mutated entity only;
// notifications do not bubble to containers. Setters are idempotent:
// assigning the current value again reports nothing.
//
// # Concurrency
//
// Model values are not safe for concurrent use. Callers must serialize
// access when multiple goroutines touch the same diagram.
package model

// Package pkg provides the core libraries for SketchDoc diagram editing.
//
// # Overview
//
// SketchDoc edits, persists, and renders diagram documents that interchange
// with the mxGraph XML format used by draw.io and diagrams.net. The pkg
// directory is organized into four main areas:
//
//  1. [model] - Domain types (diagrams, pages, shapes, connectors, groups)
//  2. [editor] - Stateful editing sessions (mutations, undo/redo, autosave)
//  3. [drawio] - Wire format (mxGraph XML encoding and decoding)
//  4. [render] - Output formats (SVG, PNG, DOT, connectivity graphs)
//  5. [snapshot] - Document revision storage (file, Redis, MongoDB)
//
// # Architecture
//
// The typical data flow through SketchDoc:
//
//	.drawio file
//	         ↓
//	    [drawio] package (decode mxGraph XML)
//	         ↓
//	    [model] package (diagram structure + observers)
//	         ↓
//	    [editor] package (mutations recorded in [history])
//	         ↓
//	    [render] package (visual output) / [drawio] (save)
//
// # Quick Start
//
// Build a document and render it:
//
//	import (
//	    "os"
//	    "github.com/sketchdoc/sketchdoc/pkg/editor"
//	    "github.com/sketchdoc/sketchdoc/pkg/model"
//	    "github.com/sketchdoc/sketchdoc/pkg/render"
//	)
//
//	// 1. Start an editing session
//	ed := editor.New()
//	ed.NewDocument("Architecture")
//
//	// 2. Add content
//	api, _ := ed.AddShape(model.ShapeKindRectangle, 40, 40, 120, 60, "API")
//	db, _ := ed.AddShape(model.ShapeKindEllipse, 240, 40, 120, 60, "DB")
//	ed.AddConnector(api.ID(), db.ID(), nil, "queries")
//
//	// 3. Save as a .drawio file
//	ed.SaveAs("architecture.drawio")
//
//	// 4. Render to SVG
//	svg := render.SVG(ed.CurrentPage())
//	os.WriteFile("architecture.svg", svg, 0o644)
//
// # Main Packages
//
// ## Domain Model
//
// [model] - Diagrams, pages, and the three element kinds (shapes, connectors,
// groups). Elements carry draw.io-compatible style maps and geometry. Pages
// notify registered observers on every mutation.
//
// [history] - Undo/redo command stack. Every editor mutation is a reversible
// command; the manager caps retained depth and notifies listeners on apply,
// undo, and redo.
//
// [editor] - Ties model and history into an editing session: element and page
// mutations, selection, document lifecycle (New/Open/Save), and snapshot
// autosave driven by history events.
//
// ## Interchange
//
// [drawio] - mxGraph XML codec. Reads and writes .drawio files with either
// deflate-compressed or raw page payloads, preserving unknown attributes
// where the format allows.
//
// ## Visualization
//
// [render] - Page rendering to SVG and rasterized PNG, DOT text for Graphviz
// tooling, and a Graphviz-laid-out connectivity view of a page's topology.
//
// [fonts] - Bundled typeface shared by raster output.
//
// ## Storage
//
// [snapshot] - Named document revisions behind a single Store interface.
// FileStore for CLI use (filesystem), RedisStore and MongoStore for shared
// deployments, MemoryStore for testing. Prune retains the newest N.
//
// ## Supporting Packages
//
// [errors] - Sentinel errors and wrap helpers shared across packages.
//
// [observability] - Pluggable hooks for document, render, and snapshot
// events. The CLI bridges these into its logger; libraries stay silent.
//
// [buildinfo] - Version metadata injected at build time via ldflags.
//
// # Common Workflows
//
// Open an existing document and edit it:
//
//	ed := editor.New()
//	if err := ed.Open("flow.drawio"); err != nil {
//	    return err
//	}
//	el, _ := ed.ElementByID("node-3")
//	ed.MoveElement(el, 200, 120)
//	ed.Undo()
//	ed.Save()
//
// Store and restore snapshots:
//
//	store, _ := snapshot.NewFileStore("")
//	defer store.Close()
//	store.Put(ctx, snapshot.New("before-refactor", d.Name(), data))
//	snap, _ := store.Get(ctx, "before-refactor")
//
// Autosave an editing session every 5 mutations:
//
//	auto, _ := editor.NewAutosave(ed, editor.AutosaveConfig{
//	    Store: store,
//	    Every: 5,
//	    Keep:  10,
//	})
//	auto.Start()
//	defer auto.Stop()
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/drawio/...     # Specific package
//	go test -run Example         # Examples only
//
// [model]: https://pkg.go.dev/github.com/sketchdoc/sketchdoc/pkg/model
// [history]: https://pkg.go.dev/github.com/sketchdoc/sketchdoc/pkg/history
// [editor]: https://pkg.go.dev/github.com/sketchdoc/sketchdoc/pkg/editor
// [drawio]: https://pkg.go.dev/github.com/sketchdoc/sketchdoc/pkg/drawio
// [render]: https://pkg.go.dev/github.com/sketchdoc/sketchdoc/pkg/render
// [fonts]: https://pkg.go.dev/github.com/sketchdoc/sketchdoc/pkg/fonts
// [snapshot]: https://pkg.go.dev/github.com/sketchdoc/sketchdoc/pkg/snapshot
// [errors]: https://pkg.go.dev/github.com/sketchdoc/sketchdoc/pkg/errors
// [observability]: https://pkg.go.dev/github.com/sketchdoc/sketchdoc/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/sketchdoc/sketchdoc/pkg/buildinfo
package pkg

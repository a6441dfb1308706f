// Package drawio reads and writes diagram documents in the drawio XML
// interchange format.
//
// # Overview
//
// This package is the bridge between the in-memory document model in
// [github.com/sketchdoc/sketchdoc/pkg/model] and files the drawio
// family of editors can open. It covers:
//
//   - Loading documents authored by foreign editors, including their
//     compressed payload variants
//   - Saving documents that re-open both here and in those editors
//   - Round-trip preservation: save, load, and save again without
//     losing pages, elements, styles, or waypoints
//
// # File Format
//
// A document is an XML file with an mxfile root. Each page is a
// diagram child whose payload holds a graph-model XML document; the
// graph model lists mxCell elements, one per shape, connector, or
// group, plus two reserved infrastructure cells with ids "0" and "1".
// Cell attributes (id, value, style, parent, vertex, edge, source,
// target, and the geometry child's x/y/width/height) follow the
// foreign dialect exactly and are not negotiable.
//
// # Payload Encodings
//
// A diagram payload is stored in one of three ways, tried in order on
// load:
//
//   - Literal graph-model XML
//   - Base64 text wrapping a raw deflate stream
//   - Base64 text wrapping a zlib stream
//
// Exactly one must decode or the load fails with a
// [errors.PayloadError] naming the encodings tried. Saves emit the
// raw-deflate variant unless [WithRawPayload] is given.
//
// # Import
//
// Use [Import] to read a document from a file path, or [Read] to read
// from any io.Reader:
//
//	diagram, err := drawio.Import("plan.drawio")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Imported documents take their name from the file. Group membership
// is rebuilt from cell parent attributes, so a group's child list
// matches the file even though the format never stores it directly.
//
// # Export
//
// Use [Export] to write a document to a file, or [Write] to write to
// any io.Writer:
//
//	err := drawio.Export(diagram, "plan.drawio")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Export writes to a temporary file in the destination directory and
// renames it into place, so an interrupted save never corrupts an
// existing document.
//
// # Concurrency
//
// All functions in this package are safe to call concurrently for
// distinct diagrams. A single diagram must not be modified while it is
// being written.
//
// [errors.PayloadError]: github.com/sketchdoc/sketchdoc/pkg/errors.PayloadError
package drawio

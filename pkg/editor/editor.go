// Package editor provides the high-level editing facade over a diagram
// document: one place that owns the document, its undo/redo history, the
// current page, and the selection, and that routes every edit through the
// command engine so it can be undone.
//
// # Architecture
//
// An [Editor] wraps a [model.Diagram] and a [history.Manager]. Edit
// operations (add shape, move element, rename page, ...) build the matching
// command and execute it through the manager; direct model mutation stays
// possible for callers that need transient, non-undoable changes such as
// drag previews. Selection and the current page are editor state, not
// document state: they are never written to disk and never enter the
// history.
//
// Element and page identifiers are random UUIDs, so ids stay unique across
// any sequence of adds and removes.
//
// # Usage
//
// Create an editor, edit, and save:
//
//	ed := editor.New()
//	shape, err := ed.AddShape(model.ShapeKindRectangle, 10, 20, 100, 60, "Box")
//	if err != nil {
//	    return err
//	}
//	ed.MoveElement(shape, 50, 50)
//	ed.Undo()
//	err = ed.SaveAs("plan.drawio")
//
// Editors are not safe for concurrent use.
package editor

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/sketchdoc/sketchdoc/pkg/drawio"
	"github.com/sketchdoc/sketchdoc/pkg/errors"
	"github.com/sketchdoc/sketchdoc/pkg/history"
	"github.com/sketchdoc/sketchdoc/pkg/model"
	"github.com/sketchdoc/sketchdoc/pkg/observability"
)

// Default dimensions for shapes added without an explicit size.
const (
	DefaultShapeWidth  = 100.0
	DefaultShapeHeight = 60.0
)

// DefaultDiagramName is the document name used when none is given.
const DefaultDiagramName = "Untitled Diagram"

// Option configures an [Editor].
type Option func(*config)

type config struct {
	historyLimit int
}

// WithHistoryLimit bounds the undo history to the given number of commands.
// Non-positive limits fall back to [history.DefaultLimit].
func WithHistoryLimit(limit int) Option {
	return func(c *config) { c.historyLimit = limit }
}

// Editor owns a diagram document and the editing state around it.
type Editor struct {
	diagram     *model.Diagram
	history     *history.Manager
	currentPage *model.Page
	selection   []model.Element
	path        string
}

// New creates an editor holding a fresh document with a single empty page.
func New(opts ...Option) *Editor {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	e := &Editor{history: history.NewManager(cfg.historyLimit)}
	e.NewDocument(DefaultDiagramName)
	return e
}

// Diagram returns the document being edited.
func (e *Editor) Diagram() *model.Diagram { return e.diagram }

// History returns the undo/redo manager, e.g. for subscribing listeners.
func (e *Editor) History() *history.Manager { return e.history }

// Path returns the file path of the document, or an empty string when the
// document has never been saved or opened.
func (e *Editor) Path() string { return e.path }

// CurrentPage returns the page edits apply to, or nil when the document has
// no pages.
func (e *Editor) CurrentPage() *model.Page { return e.currentPage }

// SetCurrentPage switches the page edits apply to and clears the selection.
// The page must belong to the document.
func (e *Editor) SetCurrentPage(page *model.Page) error {
	if e.diagram.PageIndex(page) < 0 {
		return errors.New(errors.ErrCodePageNotFound, "page %q not in document", pageName(page))
	}
	e.currentPage = page
	e.ClearSelection()
	return nil
}

// Selection returns the selected elements in selection order.
func (e *Editor) Selection() []model.Element {
	out := make([]model.Element, len(e.selection))
	copy(out, e.selection)
	return out
}

// SelectElement adds an element to the selection. Selecting an already
// selected element is a no-op.
func (e *Editor) SelectElement(el model.Element) {
	if el == nil || e.isSelected(el) {
		return
	}
	e.selection = append(e.selection, el)
}

// DeselectElement removes an element from the selection. Unknown elements
// are ignored.
func (e *Editor) DeselectElement(el model.Element) {
	for i, sel := range e.selection {
		if sel == el {
			e.selection = append(e.selection[:i], e.selection[i+1:]...)
			return
		}
	}
}

// ClearSelection empties the selection.
func (e *Editor) ClearSelection() {
	e.selection = e.selection[:0]
}

func (e *Editor) isSelected(el model.Element) bool {
	for _, sel := range e.selection {
		if sel == el {
			return true
		}
	}
	return false
}

// ElementByID looks an element up on the current page.
func (e *Editor) ElementByID(id string) (model.Element, bool) {
	if e.currentPage == nil {
		return nil, false
	}
	return e.currentPage.ElementByID(id)
}

func (e *Editor) requireCurrentPage() error {
	if e.currentPage == nil {
		return errors.New(errors.ErrCodePageNotFound, "document has no current page")
	}
	return nil
}

// AddShape adds a shape to the current page. Non-positive width or height
// fall back to [DefaultShapeWidth] and [DefaultShapeHeight]. An empty kind
// defaults to a rectangle.
func (e *Editor) AddShape(kind model.ShapeKind, x, y, width, height float64, value string) (*model.Shape, error) {
	if err := e.requireCurrentPage(); err != nil {
		return nil, err
	}
	if kind != "" {
		if err := errors.ValidateShapeKind(string(kind)); err != nil {
			return nil, err
		}
	}
	if width <= 0 {
		width = DefaultShapeWidth
	}
	if height <= 0 {
		height = DefaultShapeHeight
	}

	shape := model.NewShape(uuid.NewString(), kind)
	shape.SetValue(value)
	shape.SetPosition(model.Point{X: x, Y: y})
	shape.SetSize(width, height)

	if err := e.history.Execute(history.NewAddElementCommand(e.currentPage, shape)); err != nil {
		return nil, err
	}
	return shape, nil
}

// AddConnector adds a connector to the current page. Source and target ids
// may be empty for dangling ends; they are not checked against the page, so
// a connector can be wired before its endpoints exist.
func (e *Editor) AddConnector(sourceID, targetID string, waypoints []model.Point, value string) (*model.Connector, error) {
	if err := e.requireCurrentPage(); err != nil {
		return nil, err
	}

	conn := model.NewConnector(uuid.NewString(), sourceID, targetID)
	conn.SetValue(value)
	for _, p := range waypoints {
		conn.AddWaypoint(p)
	}

	if err := e.history.Execute(history.NewAddElementCommand(e.currentPage, conn)); err != nil {
		return nil, err
	}
	return conn, nil
}

// AddGroup adds an empty group at the given position. Members are added
// afterwards with [Editor.AddToGroup], one undoable step per member.
func (e *Editor) AddGroup(x, y float64, value string) (*model.Group, error) {
	if err := e.requireCurrentPage(); err != nil {
		return nil, err
	}

	group := model.NewGroup(uuid.NewString())
	group.SetValue(value)
	group.SetPosition(model.Point{X: x, Y: y})

	if err := e.history.Execute(history.NewAddElementCommand(e.currentPage, group)); err != nil {
		return nil, err
	}
	return group, nil
}

// RemoveElement removes an element from the current page and drops it from
// the selection.
func (e *Editor) RemoveElement(el model.Element) error {
	if err := e.requireCurrentPage(); err != nil {
		return err
	}
	if err := e.history.Execute(history.NewRemoveElementCommand(e.currentPage, el)); err != nil {
		return err
	}
	e.DeselectElement(el)
	return nil
}

// MoveElement moves an element to a new position.
func (e *Editor) MoveElement(el model.Element, x, y float64) error {
	return e.history.Execute(history.NewMoveElementCommand(el, model.Point{X: x, Y: y}))
}

// ResizeShape resizes a shape. Width and height must be positive.
func (e *Editor) ResizeShape(shape *model.Shape, width, height float64) error {
	if width <= 0 || height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "shape size must be positive, got %gx%g", width, height)
	}
	return e.history.Execute(history.NewResizeShapeCommand(shape, width, height))
}

// RotateShape sets a shape's rotation in degrees.
func (e *Editor) RotateShape(shape *model.Shape, degrees float64) error {
	return e.history.Execute(history.NewRotateShapeCommand(shape, degrees))
}

// RenameElement changes an element's label.
func (e *Editor) RenameElement(el model.Element, value string) error {
	return e.history.Execute(history.NewRenameElementCommand(el, value))
}

// SetStyle sets a style key on an element.
func (e *Editor) SetStyle(el model.Element, key, value string) error {
	return e.history.Execute(history.NewSetStyleCommand(el, key, value))
}

// AddWaypoint inserts a connector routing point at index, or appends when
// index is negative.
func (e *Editor) AddWaypoint(conn *model.Connector, index int, p model.Point) error {
	return e.history.Execute(history.NewAddWaypointCommand(conn, index, p))
}

// RemoveWaypoint removes the connector routing point at index.
func (e *Editor) RemoveWaypoint(conn *model.Connector, index int) error {
	return e.history.Execute(history.NewRemoveWaypointCommand(conn, index))
}

// AddToGroup puts an element into a group.
func (e *Editor) AddToGroup(group *model.Group, child model.Element) error {
	return e.history.Execute(history.NewAddChildCommand(group, child))
}

// RemoveFromGroup takes an element out of a group, reparenting it to the
// page layer.
func (e *Editor) RemoveFromGroup(group *model.Group, child model.Element) error {
	return e.history.Execute(history.NewRemoveChildCommand(group, child))
}

// AddPage appends a page to the document. An empty name is replaced with a
// numbered "Page N" name. The new page becomes current when the document had
// none.
func (e *Editor) AddPage(name string) (*model.Page, error) {
	if name == "" {
		name = fmt.Sprintf("Page %d", e.diagram.PageCount()+1)
	}
	page := model.NewPage(name)
	if err := e.history.Execute(history.NewAddPageCommand(e.diagram, page)); err != nil {
		return nil, err
	}
	if e.currentPage == nil {
		e.currentPage = page
	}
	return page, nil
}

// RemovePage removes a page from the document and clears the selection.
// When the current page is removed, the next page becomes current, or the
// previous one when the last page was removed, or none when the document is
// now empty.
func (e *Editor) RemovePage(page *model.Page) error {
	index := e.diagram.PageIndex(page)
	if index < 0 {
		return errors.New(errors.ErrCodePageNotFound, "page %q not in document", pageName(page))
	}
	if err := e.history.Execute(history.NewRemovePageCommand(e.diagram, page)); err != nil {
		return err
	}
	if e.currentPage == page {
		pages := e.diagram.Pages()
		switch {
		case index < len(pages):
			e.currentPage = pages[index]
		case len(pages) > 0:
			e.currentPage = pages[len(pages)-1]
		default:
			e.currentPage = nil
		}
	}
	e.ClearSelection()
	return nil
}

// RenamePage changes a page name.
func (e *Editor) RenamePage(page *model.Page, name string) error {
	return e.history.Execute(history.NewRenamePageCommand(page, name))
}

// RenameDiagram changes the document name.
func (e *Editor) RenameDiagram(name string) error {
	return e.history.Execute(history.NewRenameDiagramCommand(e.diagram, name))
}

// Undo reverses the most recent command. It reports false when there is
// nothing to undo.
func (e *Editor) Undo() (bool, error) { return e.history.Undo() }

// Redo re-applies the most recently undone command. It reports false when
// there is nothing to redo.
func (e *Editor) Redo() (bool, error) { return e.history.Redo() }

// CanUndo reports whether an undo is available.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether a redo is available.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// UndoDescription returns the label of the command Undo would reverse.
func (e *Editor) UndoDescription() (string, bool) { return e.history.UndoDescription() }

// RedoDescription returns the label of the command Redo would re-apply.
func (e *Editor) RedoDescription() (string, bool) { return e.history.RedoDescription() }

// NewDocument replaces the document with a fresh one holding a single empty
// page. The history, selection, and file path are reset; the replacement is
// not undoable.
func (e *Editor) NewDocument(name string) {
	if name == "" {
		name = DefaultDiagramName
	}
	e.diagram = model.NewDiagram(name)
	e.currentPage = nil
	e.ClearSelection()
	e.history.ClearHistory()
	e.path = ""

	page := model.NewPage("Page 1")
	e.diagram.AddPage(page)
	e.currentPage = page
}

// Open replaces the document with one loaded from path. The history and
// selection are cleared and the first page becomes current.
func (e *Editor) Open(path string) error {
	start := time.Now()
	diagram, err := drawio.Import(path)
	observability.Document().OnOpen(path, diagramPages(diagram), time.Since(start), err)
	if err != nil {
		return err
	}

	e.diagram = diagram
	e.currentPage = nil
	if diagram.PageCount() > 0 {
		e.currentPage = diagram.PageAt(0)
	}
	e.ClearSelection()
	e.history.ClearHistory()
	e.path = path
	return nil
}

// Save writes the document back to the path it was opened from or last
// saved to.
func (e *Editor) Save() error {
	if e.path == "" {
		return errors.New(errors.ErrCodeInvalidPath, "document has no file path, use SaveAs")
	}
	return e.SaveAs(e.path)
}

// SaveAs writes the document to path and remembers it for future saves.
func (e *Editor) SaveAs(path string) error {
	start := time.Now()
	err := drawio.Export(e.diagram, path)
	observability.Document().OnSave(path, e.diagram.PageCount(), time.Since(start), err)
	if err != nil {
		return err
	}
	e.path = path
	return nil
}

// WriteTo serializes the document into w without touching the file path,
// e.g. for autosave snapshots.
func (e *Editor) WriteTo(w io.Writer) error {
	return drawio.Write(e.diagram, w)
}

func pageName(p *model.Page) string {
	if p == nil {
		return ""
	}
	return p.Name()
}

func diagramPages(d *model.Diagram) int {
	if d == nil {
		return 0
	}
	return d.PageCount()
}

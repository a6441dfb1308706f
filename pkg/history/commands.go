package history

import (
	"github.com/sketchdoc/sketchdoc/pkg/errors"
	"github.com/sketchdoc/sketchdoc/pkg/model"
)

// Compile-time checks that every command satisfies Command.
var (
	_ Command = (*AddElementCommand)(nil)
	_ Command = (*RemoveElementCommand)(nil)
	_ Command = (*MoveElementCommand)(nil)
	_ Command = (*ResizeShapeCommand)(nil)
	_ Command = (*RotateShapeCommand)(nil)
	_ Command = (*RenameElementCommand)(nil)
	_ Command = (*SetStyleCommand)(nil)
	_ Command = (*AddWaypointCommand)(nil)
	_ Command = (*RemoveWaypointCommand)(nil)
	_ Command = (*AddChildCommand)(nil)
	_ Command = (*RemoveChildCommand)(nil)
	_ Command = (*AddPageCommand)(nil)
	_ Command = (*RemovePageCommand)(nil)
	_ Command = (*RenamePageCommand)(nil)
	_ Command = (*RenameDiagramCommand)(nil)
)

// elementNoun names an element variant for command descriptions.
func elementNoun(el model.Element) string {
	switch e := el.(type) {
	case *model.Shape:
		return string(e.Kind())
	case *model.Connector:
		return "connector"
	case *model.Group:
		return "group"
	default:
		return "element"
	}
}

// AddElementCommand adds an element to a page.
type AddElementCommand struct {
	page *model.Page
	el   model.Element
	desc string
}

// NewAddElementCommand creates a command that adds el to page.
func NewAddElementCommand(page *model.Page, el model.Element) *AddElementCommand {
	return &AddElementCommand{page: page, el: el, desc: "Add " + elementNoun(el)}
}

func (c *AddElementCommand) Execute() error { return c.page.AddElement(c.el) }

func (c *AddElementCommand) Undo() error {
	if !c.page.RemoveElement(c.el) {
		return errors.New(errors.ErrCodeElementNotFound, "element %q not on page", c.el.ID())
	}
	return nil
}

func (c *AddElementCommand) Description() string { return c.desc }

// RemoveElementCommand removes an element from a page, restoring it at its
// original z-order index on undo.
type RemoveElementCommand struct {
	page  *model.Page
	el    model.Element
	index int
}

// NewRemoveElementCommand creates a command that removes el from page.
func NewRemoveElementCommand(page *model.Page, el model.Element) *RemoveElementCommand {
	return &RemoveElementCommand{page: page, el: el}
}

func (c *RemoveElementCommand) Execute() error {
	c.index = c.page.IndexOf(c.el)
	if c.index < 0 {
		return errors.New(errors.ErrCodeElementNotFound, "element %q not on page", c.el.ID())
	}
	c.page.RemoveElement(c.el)
	return nil
}

func (c *RemoveElementCommand) Undo() error {
	return c.page.InsertElement(c.index, c.el)
}

func (c *RemoveElementCommand) Description() string { return "Remove " + elementNoun(c.el) }

// MoveElementCommand moves an element to a new position. The prior
// position is captured when the command is built.
type MoveElementCommand struct {
	el   model.Element
	to   model.Point
	from model.Point
}

// NewMoveElementCommand creates a command that moves el to the given
// position.
func NewMoveElementCommand(el model.Element, to model.Point) *MoveElementCommand {
	return &MoveElementCommand{el: el, to: to, from: el.Position()}
}

func (c *MoveElementCommand) Execute() error {
	c.el.SetPosition(c.to)
	return nil
}

func (c *MoveElementCommand) Undo() error {
	c.el.SetPosition(c.from)
	return nil
}

func (c *MoveElementCommand) Description() string { return "Move element" }

// ResizeShapeCommand resizes a shape. The prior size is captured when the
// command is built.
type ResizeShapeCommand struct {
	shape *model.Shape
	toW   float64
	toH   float64
	fromW float64
	fromH float64
}

// NewResizeShapeCommand creates a command that resizes shape.
func NewResizeShapeCommand(shape *model.Shape, width, height float64) *ResizeShapeCommand {
	fromW, fromH := shape.Size()
	return &ResizeShapeCommand{shape: shape, toW: width, toH: height, fromW: fromW, fromH: fromH}
}

func (c *ResizeShapeCommand) Execute() error {
	if c.toW <= 0 || c.toH <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "resize: size %gx%g not positive", c.toW, c.toH)
	}
	c.shape.SetSize(c.toW, c.toH)
	return nil
}

func (c *ResizeShapeCommand) Undo() error {
	c.shape.SetSize(c.fromW, c.fromH)
	return nil
}

func (c *ResizeShapeCommand) Description() string { return "Resize shape" }

// RotateShapeCommand rotates a shape. The prior rotation is captured when
// the command is built.
type RotateShapeCommand struct {
	shape *model.Shape
	to    float64
	from  float64
}

// NewRotateShapeCommand creates a command that rotates shape to the given
// angle in degrees.
func NewRotateShapeCommand(shape *model.Shape, degrees float64) *RotateShapeCommand {
	return &RotateShapeCommand{shape: shape, to: degrees, from: shape.Rotation()}
}

func (c *RotateShapeCommand) Execute() error {
	c.shape.SetRotation(c.to)
	return nil
}

func (c *RotateShapeCommand) Undo() error {
	c.shape.SetRotation(c.from)
	return nil
}

func (c *RotateShapeCommand) Description() string { return "Rotate shape" }

// RenameElementCommand changes an element's display text.
type RenameElementCommand struct {
	el   model.Element
	to   string
	from string
}

// NewRenameElementCommand creates a command that sets el's display text.
func NewRenameElementCommand(el model.Element, value string) *RenameElementCommand {
	return &RenameElementCommand{el: el, to: value, from: el.Value()}
}

func (c *RenameElementCommand) Execute() error {
	c.el.SetValue(c.to)
	return nil
}

func (c *RenameElementCommand) Undo() error {
	c.el.SetValue(c.from)
	return nil
}

func (c *RenameElementCommand) Description() string { return "Edit label" }

// SetStyleCommand sets one style key. Undo restores the previous value,
// or removes the key if it did not exist before.
type SetStyleCommand struct {
	el    model.Element
	key   string
	value string
	old   string
	had   bool
}

// NewSetStyleCommand creates a command that sets a style key on el.
func NewSetStyleCommand(el model.Element, key, value string) *SetStyleCommand {
	old, had := el.StyleValue(key)
	return &SetStyleCommand{el: el, key: key, value: value, old: old, had: had}
}

func (c *SetStyleCommand) Execute() error {
	if err := errors.ValidateStyleKey(c.key); err != nil {
		return err
	}
	if err := errors.ValidateStyleValue(c.value); err != nil {
		return err
	}
	c.el.SetStyle(c.key, c.value)
	return nil
}

func (c *SetStyleCommand) Undo() error {
	if c.had {
		c.el.SetStyle(c.key, c.old)
	} else {
		c.el.RemoveStyle(c.key)
	}
	return nil
}

func (c *SetStyleCommand) Description() string { return "Set style " + c.key }

// AddWaypointCommand adds a connector routing point. A negative index
// appends.
type AddWaypointCommand struct {
	conn  *model.Connector
	point model.Point
	index int
	at    int // resolved insertion index, set by Execute
}

// NewAddWaypointCommand creates a command that inserts a waypoint at
// index, or appends when index is negative.
func NewAddWaypointCommand(conn *model.Connector, index int, p model.Point) *AddWaypointCommand {
	return &AddWaypointCommand{conn: conn, point: p, index: index}
}

func (c *AddWaypointCommand) Execute() error {
	n := len(c.conn.Waypoints())
	switch {
	case c.index < 0 || c.index >= n:
		c.at = n
		c.conn.AddWaypoint(c.point)
	default:
		c.at = c.index
		c.conn.InsertWaypoint(c.index, c.point)
	}
	return nil
}

func (c *AddWaypointCommand) Undo() error {
	c.conn.RemoveWaypoint(c.at)
	return nil
}

func (c *AddWaypointCommand) Description() string { return "Add waypoint" }

// RemoveWaypointCommand removes a connector routing point, restoring it at
// the same index on undo.
type RemoveWaypointCommand struct {
	conn    *model.Connector
	index   int
	removed model.Point
}

// NewRemoveWaypointCommand creates a command that removes the waypoint at
// index.
func NewRemoveWaypointCommand(conn *model.Connector, index int) *RemoveWaypointCommand {
	return &RemoveWaypointCommand{conn: conn, index: index}
}

func (c *RemoveWaypointCommand) Execute() error {
	points := c.conn.Waypoints()
	if c.index < 0 || c.index >= len(points) {
		return errors.New(errors.ErrCodeInvalidInput, "waypoint index %d out of range", c.index)
	}
	c.removed = points[c.index]
	c.conn.RemoveWaypoint(c.index)
	return nil
}

func (c *RemoveWaypointCommand) Undo() error {
	c.conn.InsertWaypoint(c.index, c.removed)
	return nil
}

func (c *RemoveWaypointCommand) Description() string { return "Remove waypoint" }

// AddChildCommand puts an element into a group: the group's child list and
// the element's parent id change together, since serialization derives
// membership from the parent id alone.
type AddChildCommand struct {
	group      *model.Group
	child      model.Element
	prevParent string
}

// NewAddChildCommand creates a command that adds child to group.
func NewAddChildCommand(group *model.Group, child model.Element) *AddChildCommand {
	return &AddChildCommand{group: group, child: child, prevParent: child.ParentID()}
}

func (c *AddChildCommand) Execute() error {
	if c.group.HasChild(c.child.ID()) {
		return errors.New(errors.ErrCodeDuplicateID, "element %q already in group %q", c.child.ID(), c.group.ID())
	}
	c.group.AddChild(c.child.ID())
	c.child.SetParentID(c.group.ID())
	return nil
}

func (c *AddChildCommand) Undo() error {
	c.group.RemoveChild(c.child.ID())
	c.child.SetParentID(c.prevParent)
	return nil
}

func (c *AddChildCommand) Description() string { return "Add to group" }

// RemoveChildCommand takes an element out of a group, reparenting it to the
// page layer.
type RemoveChildCommand struct {
	group      *model.Group
	child      model.Element
	prevParent string
}

// NewRemoveChildCommand creates a command that removes child from group.
func NewRemoveChildCommand(group *model.Group, child model.Element) *RemoveChildCommand {
	return &RemoveChildCommand{group: group, child: child, prevParent: child.ParentID()}
}

func (c *RemoveChildCommand) Execute() error {
	if !c.group.HasChild(c.child.ID()) {
		return errors.New(errors.ErrCodeElementNotFound, "element %q not in group %q", c.child.ID(), c.group.ID())
	}
	c.group.RemoveChild(c.child.ID())
	c.child.SetParentID("")
	return nil
}

func (c *RemoveChildCommand) Undo() error {
	c.group.AddChild(c.child.ID())
	c.child.SetParentID(c.prevParent)
	return nil
}

func (c *RemoveChildCommand) Description() string { return "Remove from group" }

// AddPageCommand appends a page to a diagram.
type AddPageCommand struct {
	diagram *model.Diagram
	page    *model.Page
}

// NewAddPageCommand creates a command that appends page to diagram.
func NewAddPageCommand(diagram *model.Diagram, page *model.Page) *AddPageCommand {
	return &AddPageCommand{diagram: diagram, page: page}
}

func (c *AddPageCommand) Execute() error {
	if c.diagram.PageIndex(c.page) >= 0 {
		return errors.New(errors.ErrCodeDuplicateID, "page %q already in diagram", c.page.Name())
	}
	c.diagram.AddPage(c.page)
	return nil
}

func (c *AddPageCommand) Undo() error {
	if !c.diagram.RemovePage(c.page) {
		return errors.New(errors.ErrCodePageNotFound, "page %q not in diagram", c.page.Name())
	}
	return nil
}

func (c *AddPageCommand) Description() string { return "Add page" }

// RemovePageCommand removes a page, restoring it at its original index on
// undo.
type RemovePageCommand struct {
	diagram *model.Diagram
	page    *model.Page
	index   int
}

// NewRemovePageCommand creates a command that removes page from diagram.
func NewRemovePageCommand(diagram *model.Diagram, page *model.Page) *RemovePageCommand {
	return &RemovePageCommand{diagram: diagram, page: page}
}

func (c *RemovePageCommand) Execute() error {
	c.index = c.diagram.PageIndex(c.page)
	if c.index < 0 {
		return errors.New(errors.ErrCodePageNotFound, "page %q not in diagram", c.page.Name())
	}
	c.diagram.RemovePage(c.page)
	return nil
}

func (c *RemovePageCommand) Undo() error {
	c.diagram.InsertPage(c.index, c.page)
	return nil
}

func (c *RemovePageCommand) Description() string { return "Remove page" }

// RenamePageCommand changes a page name.
type RenamePageCommand struct {
	page *model.Page
	to   string
	from string
}

// NewRenamePageCommand creates a command that renames page.
func NewRenamePageCommand(page *model.Page, name string) *RenamePageCommand {
	return &RenamePageCommand{page: page, to: name, from: page.Name()}
}

func (c *RenamePageCommand) Execute() error {
	c.page.SetName(c.to)
	return nil
}

func (c *RenamePageCommand) Undo() error {
	c.page.SetName(c.from)
	return nil
}

func (c *RenamePageCommand) Description() string { return "Rename page" }

// RenameDiagramCommand changes the diagram name.
type RenameDiagramCommand struct {
	diagram *model.Diagram
	to      string
	from    string
}

// NewRenameDiagramCommand creates a command that renames the diagram.
func NewRenameDiagramCommand(diagram *model.Diagram, name string) *RenameDiagramCommand {
	return &RenameDiagramCommand{diagram: diagram, to: name, from: diagram.Name()}
}

func (c *RenameDiagramCommand) Execute() error {
	c.diagram.SetName(c.to)
	return nil
}

func (c *RenameDiagramCommand) Undo() error {
	c.diagram.SetName(c.from)
	return nil
}

func (c *RenameDiagramCommand) Description() string { return "Rename diagram" }

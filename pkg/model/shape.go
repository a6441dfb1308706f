package model

import (
	"math"
	"strconv"
)

// ShapeKind tags the geometric figure a shape renders as. The predefined
// kinds cover the built-in tooling; any other non-empty string is carried
// verbatim so custom drawio shapes survive a round trip.
type ShapeKind string

// Predefined shape kinds.
const (
	ShapeKindRectangle ShapeKind = "rectangle"
	ShapeKindEllipse   ShapeKind = "ellipse"
	ShapeKindTriangle  ShapeKind = "triangle"
	ShapeKindDiamond   ShapeKind = "diamond"
)

// Shape is a geometric node on a page. Its kind and rotation are mirrored
// into the "shape" and "rotation" style keys so the serialized style stays
// consistent with the typed state.
type Shape struct {
	element

	kind     ShapeKind
	width    float64
	height   float64
	rotation float64
}

var _ Element = (*Shape)(nil)

// NewShape creates a shape with the default node style (white fill, black
// stroke, wrapped HTML label) and the default 100x60 size. An empty kind
// defaults to [ShapeKindRectangle].
func NewShape(id string, kind ShapeKind) *Shape {
	if kind == "" {
		kind = ShapeKindRectangle
	}
	s := &Shape{kind: kind, width: 100, height: 60}
	s.init(s, id)
	s.style.Set("shape", string(kind))
	s.style.Set("whiteSpace", "wrap")
	s.style.Set("html", "1")
	s.style.Set("fillColor", "#ffffff")
	s.style.Set("strokeColor", "#000000")
	s.style.Set("strokeWidth", "1")
	return s
}

// Kind returns the shape kind tag.
func (s *Shape) Kind() ShapeKind { return s.kind }

// SetKind updates the kind tag and its "shape" style mirror. Observers see
// a StyleChanged for the mirror followed by a KindChanged.
func (s *Shape) SetKind(kind ShapeKind) {
	if kind == s.kind || kind == "" {
		return
	}
	old := s.kind
	s.kind = kind
	s.SetStyle("shape", string(kind))
	s.notify(s.self, KindChanged, Payload{"old": old, "new": kind})
}

// Width returns the shape width.
func (s *Shape) Width() float64 { return s.width }

// Height returns the shape height.
func (s *Shape) Height() float64 { return s.height }

// Size returns the width and height.
func (s *Shape) Size() (width, height float64) { return s.width, s.height }

// SetWidth updates the width. Non-positive values and the current value
// are ignored.
func (s *Shape) SetWidth(width float64) {
	if width <= 0 || width == s.width {
		return
	}
	old := s.width
	s.width = width
	s.notify(s.self, SizeChanged, Payload{
		"old_width": old, "old_height": s.height,
		"new_width": width, "new_height": s.height,
	})
}

// SetHeight updates the height. Non-positive values and the current value
// are ignored.
func (s *Shape) SetHeight(height float64) {
	if height <= 0 || height == s.height {
		return
	}
	old := s.height
	s.height = height
	s.notify(s.self, SizeChanged, Payload{
		"old_width": s.width, "old_height": old,
		"new_width": s.width, "new_height": height,
	})
}

// SetSize updates both dimensions at once, reporting a single SizeChanged.
// The call is ignored unless both values are positive and at least one
// differs from the current size.
func (s *Shape) SetSize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == s.width && height == s.height {
		return
	}
	oldW, oldH := s.width, s.height
	s.width, s.height = width, height
	s.notify(s.self, SizeChanged, Payload{
		"old_width": oldW, "old_height": oldH,
		"new_width": width, "new_height": height,
	})
}

// Rotation returns the rotation in degrees, normalized to [0, 360).
func (s *Shape) Rotation() float64 { return s.rotation }

// SetRotation updates the rotation, normalizing the value into [0, 360)
// and mirroring it into the "rotation" style key.
func (s *Shape) SetRotation(degrees float64) {
	normalized := math.Mod(degrees, 360)
	if normalized < 0 {
		normalized += 360
	}
	if normalized == s.rotation {
		return
	}
	old := s.rotation
	s.rotation = normalized
	s.SetStyle("rotation", strconv.FormatFloat(normalized, 'f', -1, 64))
	s.notify(s.self, RotationChanged, Payload{"old": old, "new": normalized})
}

// Clone implements [Element].
func (s *Shape) Clone(remap map[string]string) Element {
	c := &Shape{
		kind:     s.kind,
		width:    s.width,
		height:   s.height,
		rotation: s.rotation,
	}
	c.init(c, remapID(s.id, remap))
	s.cloneInto(&c.element, remap)
	return c
}

package model

import (
	"reflect"
	"testing"
)

func TestCloneExactCopy(t *testing.T) {
	s := NewShape("s1", ShapeKindEllipse)
	s.SetValue("DB")
	s.SetPosition(Point{X: 10, Y: 20})
	s.SetSize(120, 60)
	s.SetRotation(45)
	s.SetParentID("g1")
	s.SetStyle("fillColor", "#ff0000")

	clone, ok := s.Clone(nil).(*Shape)
	if !ok {
		t.Fatal("clone is not a *Shape")
	}

	if clone.ID() != "s1" {
		t.Errorf("ID() = %q, want s1", clone.ID())
	}
	if clone.Value() != "DB" || clone.ParentID() != "g1" {
		t.Errorf("value/parent = %q, %q", clone.Value(), clone.ParentID())
	}
	if clone.Position() != (Point{X: 10, Y: 20}) {
		t.Errorf("Position() = %v", clone.Position())
	}
	if w, h := clone.Size(); w != 120 || h != 60 {
		t.Errorf("Size() = %v, %v", w, h)
	}
	if clone.Rotation() != 45 || clone.Kind() != ShapeKindEllipse {
		t.Errorf("rotation/kind = %v, %q", clone.Rotation(), clone.Kind())
	}
	if clone.StyleString() != s.StyleString() {
		t.Errorf("style = %q, want %q", clone.StyleString(), s.StyleString())
	}
}

func TestCloneStyleIsIndependent(t *testing.T) {
	s := NewShape("s1", ShapeKindRectangle)
	clone := s.Clone(nil)

	clone.SetStyle("fillColor", "#000000")

	if v, _ := s.StyleValue("fillColor"); v != "#ffffff" {
		t.Errorf("original fillColor = %q after mutating clone", v)
	}
}

func TestClonePreservesReferences(t *testing.T) {
	c := NewConnector("edge1", "a", "b")
	c.SetParentID("g1")
	c.AddWaypoint(Point{X: 5, Y: 5})

	clone, ok := c.Clone(nil).(*Connector)
	if !ok {
		t.Fatal("clone is not a *Connector")
	}

	if clone.SourceID() != "a" || clone.TargetID() != "b" || clone.ParentID() != "g1" {
		t.Errorf("references = %q, %q, %q, want preserved", clone.SourceID(), clone.TargetID(), clone.ParentID())
	}

	// Waypoints are deep-copied.
	clone.AddWaypoint(Point{X: 7, Y: 7})
	if len(c.Waypoints()) != 1 {
		t.Errorf("original waypoints = %d, want 1", len(c.Waypoints()))
	}
}

func TestCloneRemapsReferences(t *testing.T) {
	remap := map[string]string{
		"edge1": "edge2",
		"a":     "a2",
		"g1":    "g2",
	}

	c := NewConnector("edge1", "a", "b")
	c.SetParentID("g1")

	clone := c.Clone(remap).(*Connector)

	if clone.ID() != "edge2" {
		t.Errorf("ID() = %q, want edge2", clone.ID())
	}
	if clone.SourceID() != "a2" {
		t.Errorf("SourceID() = %q, want a2", clone.SourceID())
	}
	// Ids without a remap entry pass through untouched.
	if clone.TargetID() != "b" {
		t.Errorf("TargetID() = %q, want b", clone.TargetID())
	}
	if clone.ParentID() != "g2" {
		t.Errorf("ParentID() = %q, want g2", clone.ParentID())
	}
}

func TestCloneRemapsGroupChildren(t *testing.T) {
	g := NewGroup("g1")
	g.AddChild("a")
	g.AddChild("b")
	g.SetCollapsed(true)

	clone := g.Clone(map[string]string{"g1": "g2", "a": "a2"}).(*Group)

	if clone.ID() != "g2" {
		t.Errorf("ID() = %q, want g2", clone.ID())
	}
	if want := []string{"a2", "b"}; !reflect.DeepEqual(clone.ChildIDs(), want) {
		t.Errorf("ChildIDs() = %v, want %v", clone.ChildIDs(), want)
	}
	if !clone.Collapsed() {
		t.Error("Collapsed() = false, want true")
	}

	// Child lists are deep-copied.
	clone.AddChild("c")
	if len(g.ChildIDs()) != 2 {
		t.Errorf("original children = %v", g.ChildIDs())
	}
}

func TestCloneDropsObservers(t *testing.T) {
	s := NewShape("s1", ShapeKindRectangle)
	rec := &recorder{}
	s.Subscribe(rec)

	clone := s.Clone(nil)
	clone.SetValue("changed")

	if len(rec.events) != 0 {
		t.Fatalf("original observer saw %d events from clone", len(rec.events))
	}
}

func TestCloneReportsOwnIdentity(t *testing.T) {
	s := NewShape("s1", ShapeKindRectangle)
	clone := s.Clone(map[string]string{"s1": "s2"})

	rec := &recorder{}
	clone.Subscribe(rec)
	clone.SetValue("hi")

	if rec.last(t).entity != clone {
		t.Error("clone notified with a foreign entity")
	}
}

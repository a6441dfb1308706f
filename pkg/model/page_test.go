package model

import (
	"reflect"
	"testing"
)

func TestNewPageDefaults(t *testing.T) {
	p := NewPage("")

	if p.Name() != "Page 1" {
		t.Errorf("Name() = %q, want Page 1", p.Name())
	}
	if !p.GridEnabled() {
		t.Error("GridEnabled() = false, want true")
	}
	if p.GridSize() != 10 {
		t.Errorf("GridSize() = %d, want 10", p.GridSize())
	}
	if len(p.Elements()) != 0 {
		t.Errorf("Elements() = %d, want 0", len(p.Elements()))
	}
}

func TestPageAddElement(t *testing.T) {
	p := NewPage("")
	rec := &recorder{}
	p.Subscribe(rec)

	s := NewShape("s1", ShapeKindRectangle)
	if err := p.AddElement(s); err != nil {
		t.Fatalf("AddElement: %v", err)
	}

	ev := rec.last(t)
	if ev.kind != ElementAdded || ev.data["element"] != Element(s) || ev.data["index"] != 0 {
		t.Errorf("payload = %v", ev.data)
	}

	// Re-adding the same element is a silent no-op.
	if err := p.AddElement(s); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if len(rec.events) != 1 {
		t.Errorf("events = %d, want 1", len(rec.events))
	}

	// A different element with a colliding id is rejected.
	if err := p.AddElement(NewShape("s1", ShapeKindEllipse)); err == nil {
		t.Error("duplicate id accepted")
	}

	if err := p.AddElement(nil); err == nil {
		t.Error("nil element accepted")
	}
}

func TestPageInsertElement(t *testing.T) {
	p := NewPage("")
	a := NewShape("a", ShapeKindRectangle)
	b := NewShape("b", ShapeKindRectangle)
	c := NewShape("c", ShapeKindRectangle)

	if err := p.AddElement(a); err != nil {
		t.Fatal(err)
	}
	if err := p.AddElement(c); err != nil {
		t.Fatal(err)
	}
	if err := p.InsertElement(1, b); err != nil {
		t.Fatal(err)
	}

	want := []string{"a", "b", "c"}
	var got []string
	for _, el := range p.Elements() {
		got = append(got, el.ID())
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestPageInsertElementClampsIndex(t *testing.T) {
	p := NewPage("")
	a := NewShape("a", ShapeKindRectangle)
	b := NewShape("b", ShapeKindRectangle)

	if err := p.InsertElement(-3, a); err != nil {
		t.Fatal(err)
	}
	if err := p.InsertElement(42, b); err != nil {
		t.Fatal(err)
	}

	if p.IndexOf(a) != 0 || p.IndexOf(b) != 1 {
		t.Errorf("indexes = %d, %d", p.IndexOf(a), p.IndexOf(b))
	}
}

func TestPageRemoveElement(t *testing.T) {
	p := NewPage("")
	s := NewShape("s1", ShapeKindRectangle)
	if err := p.AddElement(s); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	p.Subscribe(rec)

	if !p.RemoveElement(s) {
		t.Fatal("RemoveElement = false")
	}
	if p.RemoveElement(s) {
		t.Error("second RemoveElement = true")
	}

	ev := rec.last(t)
	if ev.kind != ElementRemoved || ev.data["index"] != 0 {
		t.Errorf("payload = %v", ev.data)
	}
	if len(p.Elements()) != 0 {
		t.Error("element still on page")
	}
}

func TestPageElementByID(t *testing.T) {
	p := NewPage("")
	s := NewShape("s1", ShapeKindRectangle)
	if err := p.AddElement(s); err != nil {
		t.Fatal(err)
	}

	if got, ok := p.ElementByID("s1"); !ok || got != Element(s) {
		t.Errorf("ElementByID(s1) = %v, %v", got, ok)
	}
	if _, ok := p.ElementByID("missing"); ok {
		t.Error("ElementByID(missing) reported present")
	}
}

func TestPageGrid(t *testing.T) {
	p := NewPage("")
	rec := &recorder{}
	p.Subscribe(rec)

	p.SetGridEnabled(false)
	p.SetGridEnabled(false) // idempotent
	p.SetGridSize(20)
	p.SetGridSize(20) // idempotent
	p.SetGridSize(0)  // rejected
	p.SetGridSize(-4) // rejected

	want := []ChangeKind{GridEnabledChanged, GridSizeChanged}
	if got := rec.kinds(); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if p.GridEnabled() || p.GridSize() != 20 {
		t.Errorf("grid = %v, %d", p.GridEnabled(), p.GridSize())
	}
}

func TestPageSetName(t *testing.T) {
	p := NewPage("Page 1")
	rec := &recorder{}
	p.Subscribe(rec)

	p.SetName("Overview")
	p.SetName("Overview")

	if len(rec.events) != 1 {
		t.Fatalf("events = %d, want 1", len(rec.events))
	}
	ev := rec.events[0]
	if ev.kind != NameChanged || ev.data["old"] != "Page 1" || ev.data["new"] != "Overview" {
		t.Errorf("payload = %v", ev.data)
	}
}

func TestPageProperties(t *testing.T) {
	p := NewPage("")
	rec := &recorder{}
	p.Subscribe(rec)

	p.SetProperty("zoom", "1.5")
	p.SetProperty("zoom", "1.5") // idempotent
	p.SetProperty("zoom", "2.0")

	if len(rec.events) != 2 {
		t.Fatalf("events = %d, want 2", len(rec.events))
	}
	if v, ok := p.PropertyValue("zoom"); !ok || v != "2.0" {
		t.Errorf("zoom = %q, %v", v, ok)
	}

	props := p.Properties()
	props["zoom"] = "changed"
	if v, _ := p.PropertyValue("zoom"); v != "2.0" {
		t.Error("Properties() exposes live map")
	}
}

package model

import "fmt"

// Page is one canvas of a diagram. It owns an ordered element list and a
// grid configuration, plus free-form string properties for tool state that
// does not warrant a typed field.
//
// Element ids are unique within a page. Beyond that the page does not
// interpret elements: parent/child and endpoint references are resolved by
// callers.
type Page struct {
	observable

	name        string
	gridEnabled bool
	gridSize    int
	elements    []Element
	properties  map[string]string
}

// NewPage creates an empty page with the grid enabled at size 10. An empty
// name defaults to "Page 1".
func NewPage(name string) *Page {
	if name == "" {
		name = "Page 1"
	}
	return &Page{
		name:        name,
		gridEnabled: true,
		gridSize:    10,
		properties:  make(map[string]string),
	}
}

// Name returns the page name.
func (p *Page) Name() string { return p.name }

// SetName updates the page name.
func (p *Page) SetName(name string) {
	if name == p.name {
		return
	}
	old := p.name
	p.name = name
	p.notify(p, NameChanged, Payload{"old": old, "new": name})
}

// GridEnabled reports whether the page grid is shown.
func (p *Page) GridEnabled() bool { return p.gridEnabled }

// SetGridEnabled toggles the page grid.
func (p *Page) SetGridEnabled(enabled bool) {
	if enabled == p.gridEnabled {
		return
	}
	old := p.gridEnabled
	p.gridEnabled = enabled
	p.notify(p, GridEnabledChanged, Payload{"old": old, "new": enabled})
}

// GridSize returns the grid spacing.
func (p *Page) GridSize() int { return p.gridSize }

// SetGridSize updates the grid spacing. Non-positive values and the
// current value are ignored.
func (p *Page) SetGridSize(size int) {
	if size <= 0 || size == p.gridSize {
		return
	}
	old := p.gridSize
	p.gridSize = size
	p.notify(p, GridSizeChanged, Payload{"old": old, "new": size})
}

// Elements returns the elements in z-order. The returned slice is a copy;
// the elements themselves are shared.
func (p *Page) Elements() []Element {
	els := make([]Element, len(p.elements))
	copy(els, p.elements)
	return els
}

// ElementByID returns the element with the given id.
func (p *Page) ElementByID(id string) (Element, bool) {
	for _, el := range p.elements {
		if el.ID() == id {
			return el, true
		}
	}
	return nil, false
}

// IndexOf returns the z-order index of el, or -1 when el is not on the
// page. Elements are matched by identity, not id.
func (p *Page) IndexOf(el Element) int {
	for i, existing := range p.elements {
		if existing == el {
			return i
		}
	}
	return -1
}

// AddElement appends an element. Adding an element already on the page is
// a silent no-op; adding a different element whose id collides with an
// existing one is an error.
func (p *Page) AddElement(el Element) error {
	return p.InsertElement(len(p.elements), el)
}

// InsertElement adds an element at the given z-order index, clamping the
// index into [0, len]. The same membership rules as AddElement apply.
func (p *Page) InsertElement(index int, el Element) error {
	if el == nil {
		return fmt.Errorf("insert element: nil element")
	}
	if p.IndexOf(el) >= 0 {
		return nil
	}
	if _, ok := p.ElementByID(el.ID()); ok {
		return fmt.Errorf("insert element: duplicate id %q", el.ID())
	}
	if index < 0 {
		index = 0
	}
	if index > len(p.elements) {
		index = len(p.elements)
	}
	p.elements = append(p.elements, nil)
	copy(p.elements[index+1:], p.elements[index:])
	p.elements[index] = el
	p.notify(p, ElementAdded, Payload{"element": el, "index": index})
	return nil
}

// RemoveElement removes an element matched by identity and reports whether
// it was present.
func (p *Page) RemoveElement(el Element) bool {
	index := p.IndexOf(el)
	if index < 0 {
		return false
	}
	p.elements = append(p.elements[:index], p.elements[index+1:]...)
	p.notify(p, ElementRemoved, Payload{"element": el, "index": index})
	return true
}

// PropertyValue returns a page property and whether the key is set.
func (p *Page) PropertyValue(key string) (string, bool) {
	v, ok := p.properties[key]
	return v, ok
}

// SetProperty stores a page property.
func (p *Page) SetProperty(key, value string) {
	current, exists := p.properties[key]
	if exists && current == value {
		return
	}
	var old any
	if exists {
		old = current
	}
	p.properties[key] = value
	p.notify(p, PropertyChanged, Payload{"key": key, "old": old, "new": value})
}

// Properties returns a copy of all page properties.
func (p *Page) Properties() map[string]string {
	props := make(map[string]string, len(p.properties))
	for k, v := range p.properties {
		props[k] = v
	}
	return props
}

package model

// Point is a position on the page canvas, in diagram coordinate units.
type Point struct {
	X float64
	Y float64
}

// Element is the common surface of the three drawable variants: [Shape],
// [Connector], and [Group]. The variant set is closed; downstream code
// switches on the concrete type for variant-specific state.
//
// Ids are immutable after construction. Parent ids are weak references:
// the model stores them verbatim and never checks that the target exists.
type Element interface {
	// ID returns the immutable element id.
	ID() string

	// Value returns the display text of the element.
	Value() string
	// SetValue updates the display text.
	SetValue(value string)

	// Position returns the element position on the page canvas.
	Position() Point
	// SetPosition moves the element.
	SetPosition(p Point)

	// ParentID returns the id of the containing element, or "" when the
	// element sits directly on the page.
	ParentID() string
	// SetParentID updates the containment reference. Pass "" to detach.
	SetParentID(id string)

	// Style returns a copy of the element style. Mutating the copy does
	// not affect the element; use SetStyle and RemoveStyle for that.
	Style() *Style
	// StyleValue returns a single style value and whether the key is set.
	StyleValue(key string) (string, bool)
	// SetStyle stores one style key/value pair.
	SetStyle(key, value string)
	// RemoveStyle deletes a style key if present.
	RemoveStyle(key string)
	// ApplyStyleString parses a drawio style string and applies each pair
	// via SetStyle.
	ApplyStyleString(style string)
	// StyleString serializes the style in insertion order.
	StyleString() string

	// Subscribe registers an observer for changes to this element.
	Subscribe(obs Observer)
	// Unsubscribe removes a previously registered observer.
	Unsubscribe(obs Observer)

	// Clone returns a deep copy. Ids and id references (the element id,
	// parent id, connector endpoints, group children) are rewritten
	// through remap where an entry exists and preserved verbatim where
	// none does. A nil remap yields an exact copy, including the id.
	// Observers are not carried over.
	Clone(remap map[string]string) Element

	sealed()
}

// element carries the state shared by all variants. Variant constructors
// must call init with the concrete outer value so notifications report the
// variant, not the embedded struct.
type element struct {
	observable

	self     Element
	id       string
	value    string
	position Point
	parentID string
	style    *Style
}

func (e *element) init(self Element, id string) {
	e.self = self
	e.id = id
	e.style = NewStyle()
}

func (e *element) sealed() {}

func (e *element) ID() string { return e.id }

func (e *element) Value() string { return e.value }

func (e *element) SetValue(value string) {
	if value == e.value {
		return
	}
	old := e.value
	e.value = value
	e.notify(e.self, ValueChanged, Payload{"old": old, "new": value})
}

func (e *element) Position() Point { return e.position }

func (e *element) SetPosition(p Point) {
	if p == e.position {
		return
	}
	old := e.position
	e.position = p
	e.notify(e.self, PositionChanged, Payload{"old": old, "new": p})
}

func (e *element) ParentID() string { return e.parentID }

func (e *element) SetParentID(id string) {
	if id == e.parentID {
		return
	}
	old := e.parentID
	e.parentID = id
	e.notify(e.self, ParentChanged, Payload{"old": old, "new": id})
}

func (e *element) Style() *Style { return e.style.Clone() }

func (e *element) StyleValue(key string) (string, bool) {
	return e.style.Get(key)
}

func (e *element) SetStyle(key, value string) {
	current, exists := e.style.Get(key)
	if exists && current == value {
		return
	}
	var old any
	if exists {
		old = current
	}
	e.style.Set(key, value)
	e.notify(e.self, StyleChanged, Payload{"key": key, "old": old, "new": value})
}

func (e *element) RemoveStyle(key string) {
	old, ok := e.style.Get(key)
	if !ok {
		return
	}
	e.style.Delete(key)
	e.notify(e.self, StyleChanged, Payload{"key": key, "old": old, "new": nil})
}

func (e *element) ApplyStyleString(style string) {
	if style == "" {
		return
	}
	parsed := ParseStyleString(style)
	for _, key := range parsed.Keys() {
		value, _ := parsed.Get(key)
		e.SetStyle(key, value)
	}
}

func (e *element) StyleString() string { return e.style.String() }

// cloneInto copies the shared state onto the already initialized clone.
func (e *element) cloneInto(dst *element, remap map[string]string) {
	dst.value = e.value
	dst.position = e.position
	dst.parentID = remapID(e.parentID, remap)
	dst.style = e.style.Clone()
}

// remapID rewrites id through remap when an entry exists. Empty ids stay
// empty so unset references never gain a target.
func remapID(id string, remap map[string]string) string {
	if id == "" {
		return ""
	}
	if mapped, ok := remap[id]; ok {
		return mapped
	}
	return id
}

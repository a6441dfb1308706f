package model

// Group is a logical container. It tracks the ids of its children rather
// than the children themselves; the children stay in the page element list
// with their ParentID pointing at the group. Child ids are weak references
// and may dangle.
type Group struct {
	element

	childIDs  []string
	collapsed bool
}

var _ Element = (*Group)(nil)

// NewGroup creates a group with the default dashed outline style.
func NewGroup(id string) *Group {
	g := &Group{}
	g.init(g, id)
	g.style.Set("group", "1")
	g.style.Set("fillColor", "none")
	g.style.Set("strokeColor", "#666666")
	g.style.Set("dashed", "1")
	return g
}

// ChildIDs returns the child element ids in membership order. The returned
// slice is a copy.
func (g *Group) ChildIDs() []string {
	ids := make([]string, len(g.childIDs))
	copy(ids, g.childIDs)
	return ids
}

// HasChild reports whether id is a member of the group.
func (g *Group) HasChild(id string) bool {
	for _, existing := range g.childIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// AddChild appends a child id. Empty ids and ids already present are
// ignored.
func (g *Group) AddChild(id string) {
	if id == "" || g.HasChild(id) {
		return
	}
	g.childIDs = append(g.childIDs, id)
	g.notify(g.self, ChildAdded, Payload{"child_id": id})
}

// RemoveChild removes a child id. Unknown ids are ignored.
func (g *Group) RemoveChild(id string) {
	for i, existing := range g.childIDs {
		if existing == id {
			g.childIDs = append(g.childIDs[:i], g.childIDs[i+1:]...)
			g.notify(g.self, ChildRemoved, Payload{"child_id": id})
			return
		}
	}
}

// Collapsed reports whether the group is drawn collapsed.
func (g *Group) Collapsed() bool { return g.collapsed }

// SetCollapsed updates the collapsed flag.
func (g *Group) SetCollapsed(collapsed bool) {
	if collapsed == g.collapsed {
		return
	}
	old := g.collapsed
	g.collapsed = collapsed
	g.notify(g.self, CollapsedChanged, Payload{"old": old, "new": collapsed})
}

// Clone implements [Element]. Child ids pass through remap like all other
// id references.
func (g *Group) Clone(remap map[string]string) Element {
	clone := &Group{collapsed: g.collapsed}
	if len(g.childIDs) > 0 {
		clone.childIDs = make([]string, len(g.childIDs))
		for i, id := range g.childIDs {
			clone.childIDs[i] = remapID(id, remap)
		}
	}
	clone.init(clone, remapID(g.id, remap))
	g.cloneInto(&clone.element, remap)
	return clone
}

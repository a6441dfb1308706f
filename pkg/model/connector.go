package model

// Connector is an edge between two elements. Source and target are weak id
// references: either may be "" for a dangling endpoint, and the model never
// checks that a referenced element exists. Waypoints are intermediate
// routing points in page coordinates.
type Connector struct {
	element

	sourceID  string
	targetID  string
	waypoints []Point
}

var _ Element = (*Connector)(nil)

// NewConnector creates a connector with the default orthogonal edge style.
// Pass "" for an unset endpoint.
func NewConnector(id, sourceID, targetID string) *Connector {
	c := &Connector{sourceID: sourceID, targetID: targetID}
	c.init(c, id)
	c.style.Set("edgeStyle", "orthogonalEdgeStyle")
	c.style.Set("rounded", "0")
	c.style.Set("orthogonalLoop", "1")
	c.style.Set("jettySize", "auto")
	c.style.Set("html", "1")
	c.style.Set("strokeColor", "#000000")
	c.style.Set("strokeWidth", "1")
	return c
}

// SourceID returns the source element id, or "" when unset.
func (c *Connector) SourceID() string { return c.sourceID }

// SetSourceID updates the source reference. Pass "" to detach.
func (c *Connector) SetSourceID(id string) {
	if id == c.sourceID {
		return
	}
	old := c.sourceID
	c.sourceID = id
	c.notify(c.self, SourceChanged, Payload{"old": old, "new": id})
}

// TargetID returns the target element id, or "" when unset.
func (c *Connector) TargetID() string { return c.targetID }

// SetTargetID updates the target reference. Pass "" to detach.
func (c *Connector) SetTargetID(id string) {
	if id == c.targetID {
		return
	}
	old := c.targetID
	c.targetID = id
	c.notify(c.self, TargetChanged, Payload{"old": old, "new": id})
}

// Waypoints returns the routing points in order. The returned slice is a
// copy.
func (c *Connector) Waypoints() []Point {
	points := make([]Point, len(c.waypoints))
	copy(points, c.waypoints)
	return points
}

// AddWaypoint appends a routing point.
func (c *Connector) AddWaypoint(p Point) {
	c.waypoints = append(c.waypoints, p)
	c.notify(c.self, WaypointAdded, Payload{"waypoint": p, "index": len(c.waypoints) - 1})
}

// InsertWaypoint inserts a routing point at index, clamping the index into
// [0, len].
func (c *Connector) InsertWaypoint(index int, p Point) {
	if index < 0 {
		index = 0
	}
	if index > len(c.waypoints) {
		index = len(c.waypoints)
	}
	c.waypoints = append(c.waypoints, Point{})
	copy(c.waypoints[index+1:], c.waypoints[index:])
	c.waypoints[index] = p
	c.notify(c.self, WaypointAdded, Payload{"waypoint": p, "index": index})
}

// RemoveWaypoint deletes the routing point at index. Out-of-range indexes
// are ignored.
func (c *Connector) RemoveWaypoint(index int) {
	if index < 0 || index >= len(c.waypoints) {
		return
	}
	p := c.waypoints[index]
	c.waypoints = append(c.waypoints[:index], c.waypoints[index+1:]...)
	c.notify(c.self, WaypointRemoved, Payload{"waypoint": p, "index": index})
}

// ClearWaypoints removes all routing points. Clearing an empty connector
// reports nothing.
func (c *Connector) ClearWaypoints() {
	if len(c.waypoints) == 0 {
		return
	}
	c.waypoints = nil
	c.notify(c.self, WaypointsCleared, nil)
}

// SetEdgeStyle sets the "edgeStyle" style key, such as
// "orthogonalEdgeStyle" or "entityRelationEdgeStyle". Observers see the
// StyleChanged for the key followed by an EdgeStyleChanged.
func (c *Connector) SetEdgeStyle(style string) {
	old, _ := c.style.Get("edgeStyle")
	c.SetStyle("edgeStyle", style)
	c.notify(c.self, EdgeStyleChanged, Payload{"old": old, "new": style})
}

// SetStartArrow sets the "startArrow" style key, such as "none",
// "classic", or "diamond".
func (c *Connector) SetStartArrow(arrow string) {
	old, _ := c.style.Get("startArrow")
	c.SetStyle("startArrow", arrow)
	c.notify(c.self, StartArrowChanged, Payload{"old": old, "new": arrow})
}

// SetEndArrow sets the "endArrow" style key.
func (c *Connector) SetEndArrow(arrow string) {
	old, _ := c.style.Get("endArrow")
	c.SetStyle("endArrow", arrow)
	c.notify(c.self, EndArrowChanged, Payload{"old": old, "new": arrow})
}

// Clone implements [Element]. Source and target ids pass through remap like
// all other id references.
func (c *Connector) Clone(remap map[string]string) Element {
	clone := &Connector{
		sourceID: remapID(c.sourceID, remap),
		targetID: remapID(c.targetID, remap),
	}
	if len(c.waypoints) > 0 {
		clone.waypoints = make([]Point, len(c.waypoints))
		copy(clone.waypoints, c.waypoints)
	}
	clone.init(clone, remapID(c.id, remap))
	c.cloneInto(&clone.element, remap)
	return clone
}

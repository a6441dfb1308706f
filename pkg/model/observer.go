package model

// ChangeKind identifies the kind of mutation reported to observers. Kinds
// are stable snake_case strings so they survive logging and cross-process
// transport without translation tables.
type ChangeKind string

// Change kinds shared by all element variants.
const (
	ValueChanged    ChangeKind = "value_changed"
	PositionChanged ChangeKind = "position_changed"
	ParentChanged   ChangeKind = "parent_changed"
	StyleChanged    ChangeKind = "style_changed"
)

// Change kinds reported by shapes.
const (
	SizeChanged     ChangeKind = "size_changed"
	RotationChanged ChangeKind = "rotation_changed"
	KindChanged     ChangeKind = "kind_changed"
)

// Change kinds reported by connectors.
const (
	SourceChanged     ChangeKind = "source_changed"
	TargetChanged     ChangeKind = "target_changed"
	WaypointAdded     ChangeKind = "waypoint_added"
	WaypointRemoved   ChangeKind = "waypoint_removed"
	WaypointsCleared  ChangeKind = "waypoints_cleared"
	EdgeStyleChanged  ChangeKind = "edge_style_changed"
	StartArrowChanged ChangeKind = "start_arrow_changed"
	EndArrowChanged   ChangeKind = "end_arrow_changed"
)

// Change kinds reported by groups.
const (
	ChildAdded       ChangeKind = "child_added"
	ChildRemoved     ChangeKind = "child_removed"
	CollapsedChanged ChangeKind = "collapsed_changed"
)

// Change kinds reported by pages.
const (
	ElementAdded       ChangeKind = "element_added"
	ElementRemoved     ChangeKind = "element_removed"
	GridEnabledChanged ChangeKind = "grid_enabled_changed"
	GridSizeChanged    ChangeKind = "grid_size_changed"
	PropertyChanged    ChangeKind = "property_changed"
)

// Change kinds reported by diagrams. NameChanged is also reported by pages.
const (
	NameChanged     ChangeKind = "name_changed"
	PageAdded       ChangeKind = "page_added"
	PageRemoved     ChangeKind = "page_removed"
	MetadataChanged ChangeKind = "metadata_changed"
)

// Payload carries the change-specific details of a notification.
//
// Scalar transitions use "old" and "new". Keyed transitions (styles, page
// properties, diagram metadata) add "key". Structural changes identify the
// affected member: "element" and "index" for page membership, "page" and
// "index" for diagram membership, "waypoint" and "index" for connector
// waypoints, and "child_id" for group children.
type Payload map[string]any

// Observer receives change notifications from the model entity it is
// subscribed to. The entity argument is the mutated entity itself
// (*Diagram, *Page, or a concrete element variant), never a container of
// it: notifications do not bubble.
//
// Observers are compared with ==, so implementations must be comparable
// values, typically pointers.
type Observer interface {
	ModelChanged(entity any, kind ChangeKind, data Payload)
}

// observable holds the subscription bookkeeping embedded by Diagram, Page,
// and the element variants.
type observable struct {
	observers []Observer
}

// Subscribe registers an observer. Registering an already subscribed
// observer is a no-op.
func (o *observable) Subscribe(obs Observer) {
	if obs == nil {
		return
	}
	for _, existing := range o.observers {
		if existing == obs {
			return
		}
	}
	o.observers = append(o.observers, obs)
}

// Unsubscribe removes a previously registered observer. Unknown observers
// are ignored.
func (o *observable) Unsubscribe(obs Observer) {
	for i, existing := range o.observers {
		if existing == obs {
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			return
		}
	}
}

// notify fans a change out to the current observers. It iterates over a
// snapshot so observers may subscribe or unsubscribe from within their
// callback.
func (o *observable) notify(entity any, kind ChangeKind, data Payload) {
	if len(o.observers) == 0 {
		return
	}
	snapshot := make([]Observer, len(o.observers))
	copy(snapshot, o.observers)
	for _, obs := range snapshot {
		obs.ModelChanged(entity, kind, data)
	}
}

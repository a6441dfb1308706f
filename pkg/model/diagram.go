package model

// Diagram is the document root: an ordered collection of pages plus
// string metadata (authoring tool, timestamps, schema hints) that travels
// with the file but carries no drawing semantics.
type Diagram struct {
	observable

	name     string
	pages    []*Page
	metadata map[string]string
}

// NewDiagram creates an empty diagram. An empty name defaults to
// "Untitled Diagram".
func NewDiagram(name string) *Diagram {
	if name == "" {
		name = "Untitled Diagram"
	}
	return &Diagram{
		name:     name,
		metadata: make(map[string]string),
	}
}

// Name returns the diagram name.
func (d *Diagram) Name() string { return d.name }

// SetName updates the diagram name.
func (d *Diagram) SetName(name string) {
	if name == d.name {
		return
	}
	old := d.name
	d.name = name
	d.notify(d, NameChanged, Payload{"old": old, "new": name})
}

// Pages returns the pages in order. The returned slice is a copy; the
// pages themselves are shared.
func (d *Diagram) Pages() []*Page {
	pages := make([]*Page, len(d.pages))
	copy(pages, d.pages)
	return pages
}

// PageCount returns the number of pages.
func (d *Diagram) PageCount() int { return len(d.pages) }

// PageAt returns the page at index, or nil when index is out of range.
func (d *Diagram) PageAt(index int) *Page {
	if index < 0 || index >= len(d.pages) {
		return nil
	}
	return d.pages[index]
}

// PageByName returns the first page with the given name.
func (d *Diagram) PageByName(name string) (*Page, bool) {
	for _, p := range d.pages {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// PageIndex returns the index of p, or -1 when p is not part of the
// diagram. Pages are matched by identity.
func (d *Diagram) PageIndex(p *Page) int {
	for i, existing := range d.pages {
		if existing == p {
			return i
		}
	}
	return -1
}

// AddPage appends a page. Nil pages and pages already in the diagram are
// ignored.
func (d *Diagram) AddPage(p *Page) {
	d.InsertPage(len(d.pages), p)
}

// InsertPage adds a page at the given index, clamping the index into
// [0, len]. Nil pages and pages already in the diagram are ignored.
func (d *Diagram) InsertPage(index int, p *Page) {
	if p == nil || d.PageIndex(p) >= 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(d.pages) {
		index = len(d.pages)
	}
	d.pages = append(d.pages, nil)
	copy(d.pages[index+1:], d.pages[index:])
	d.pages[index] = p
	d.notify(d, PageAdded, Payload{"page": p, "index": index})
}

// RemovePage removes a page matched by identity and reports whether it was
// present.
func (d *Diagram) RemovePage(p *Page) bool {
	index := d.PageIndex(p)
	if index < 0 {
		return false
	}
	d.pages = append(d.pages[:index], d.pages[index+1:]...)
	d.notify(d, PageRemoved, Payload{"page": p, "index": index})
	return true
}

// MetadataValue returns a metadata value and whether the key is set.
func (d *Diagram) MetadataValue(key string) (string, bool) {
	v, ok := d.metadata[key]
	return v, ok
}

// SetMetadata stores a metadata key/value pair.
func (d *Diagram) SetMetadata(key, value string) {
	current, exists := d.metadata[key]
	if exists && current == value {
		return
	}
	var old any
	if exists {
		old = current
	}
	d.metadata[key] = value
	d.notify(d, MetadataChanged, Payload{"key": key, "old": old, "new": value})
}

// Metadata returns a copy of all metadata.
func (d *Diagram) Metadata() map[string]string {
	md := make(map[string]string, len(d.metadata))
	for k, v := range d.metadata {
		md[k] = v
	}
	return md
}

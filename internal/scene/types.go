package scene

// Document is the root persisted and editable unit: schema version, opaque
// metadata, the shared asset library, and the node forest.
//
// A Document is owned exclusively by one editor session and replaced
// wholesale on every successful mutation.
type Document struct {
	// Version is the schema version. Stamped to wire.CurrentVersion by the
	// serializer on both marshal and unmarshal.
	Version int `json:"version"`

	// Metadata is an opaque record the model never interprets.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Assets is the shared asset library. Asset ids are unique across the
	// whole sequence.
	Assets []*Asset `json:"assets,omitempty"`

	// Nodes are the forest roots, in document order.
	Nodes []*Node `json:"nodes"`
}

// Asset is a named, externally resolved resource (model, audio, texture)
// referenced by id from nodes.
type Asset struct {
	ID   string         `json:"id"`
	URI  string         `json:"uri"`
	Type string         `json:"type,omitempty"`
	Meta map[string]any `json:"meta,omitempty"`
}

// Node is one element of the document forest. Node ids are unique across
// every node in the entire forest, not just among siblings.
type Node struct {
	ID         string      `json:"id"`
	Name       string      `json:"name,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	Transform  *Transform  `json:"transform,omitempty"`
	Components []Component `json:"components,omitempty"`
	Asset      *AssetRef   `json:"asset,omitempty"`
	Children   []*Node     `json:"children,omitempty"`
}

// Transform holds optional placement for a node. Absent sub-fields are not
// defaulted by the model; identity semantics belong to the renderer.
type Transform struct {
	Position *Vec3 `json:"position,omitempty"`
	Rotation *Quat `json:"rotation,omitempty"`
	Scale    *Vec3 `json:"scale,omitempty"`
}

// Vec3 is a 3-component vector. All fields must be finite.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quat is a rotation quaternion. All fields must be finite.
type Quat struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Component attaches open-ended behavior data to a node. Type is an open
// string tag; the model does not enumerate component kinds and never
// interprets Data.
type Component struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// AssetRef points a node at an entry in the document's asset library.
type AssetRef struct {
	AssetID string         `json:"assetId"`
	Options map[string]any `json:"options,omitempty"`
}

// Clone returns a shallow copy of the document with a freshly allocated
// Nodes slice. Node subtrees are shared; callers replacing a subtree must
// allocate the ancestor chain themselves (the tree package does this).
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	if d.Nodes != nil {
		c.Nodes = make([]*Node, len(d.Nodes))
		copy(c.Nodes, d.Nodes)
	}
	return &c
}

// WithNodes returns a shallow copy of the document with the given forest.
func (d *Document) WithNodes(nodes []*Node) *Document {
	c := *d
	c.Nodes = nodes
	return &c
}

// Clone returns a shallow copy of the node. Children, tags, and components
// slices are shared with the original; callers mutating those must copy
// them first.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}

// AssetByID returns the asset with the given id, or nil.
func (d *Document) AssetByID(id string) *Asset {
	for _, a := range d.Assets {
		if a != nil && a.ID == id {
			return a
		}
	}
	return nil
}

package grove

import "github.com/go-gl/mathgl/mgl64"

// TRS is an optional translate/rotate/scale triple. Nil components default
// to the identity component (zero translation, identity rotation, unit scale).
type TRS struct {
	Position *mgl64.Vec3
	Rotation *mgl64.Quat
	Scale    *mgl64.Vec3
}

// Node is one element of an application's scene graph. A single flat struct
// is used for all kinds; fields a kind doesn't read are ignored.
//
// Nodes are authored by applications and treated as immutable once handed to
// Renderer.ApplyFrame.
type Node struct {
	// ID is unique within the owning Root.
	ID       uint32
	Kind     NodeKind
	Children []uint32

	// Origin path (NodeOrigin).
	Origin string

	// Local transform (NodeTransform). Nil means identity.
	Transform *TRS

	// Model URI (NodeModel).
	ModelURI string

	// Interactive panels register with the intersection registry (NodePanel).
	Interactive bool

	// Volume is required by NodeHandle and NodeGrabber.
	Volume *Volume
}

// NewContainer creates a purely structural node.
func NewContainer(id uint32, children ...uint32) Node {
	return Node{ID: id, Kind: NodeContainer, Children: children}
}

// NewOrigin creates a node that re-targets its subtree to the named origin.
func NewOrigin(id uint32, path string, children ...uint32) Node {
	return Node{ID: id, Kind: NodeOrigin, Origin: path, Children: children}
}

// NewTransform creates a node with a local translate/rotate/scale.
func NewTransform(id uint32, t TRS, children ...uint32) Node {
	return Node{ID: id, Kind: NodeTransform, Transform: &t, Children: children}
}

// NewModel creates a node that renders the model at uri.
func NewModel(id uint32, uri string, children ...uint32) Node {
	return Node{ID: id, Kind: NodeModel, ModelURI: uri, Children: children}
}

// NewPanel creates a panel node showing the owning application's texture.
func NewPanel(id uint32, interactive bool, children ...uint32) Node {
	return Node{ID: id, Kind: NodePanel, Interactive: interactive, Children: children}
}

// NewPoker creates a poker node.
func NewPoker(id uint32, children ...uint32) Node {
	return Node{ID: id, Kind: NodePoker, Children: children}
}

// NewGrabbable creates a grabbable node.
func NewGrabbable(id uint32, children ...uint32) Node {
	return Node{ID: id, Kind: NodeGrabbable, Children: children}
}

// NewHandle creates a handle node with the given volume.
func NewHandle(id uint32, vol Volume, children ...uint32) Node {
	return Node{ID: id, Kind: NodeHandle, Volume: &vol, Children: children}
}

// NewGrabber creates a grabber node with the given volume.
func NewGrabber(id uint32, vol Volume, children ...uint32) Node {
	return Node{ID: id, Kind: NodeGrabber, Volume: &vol, Children: children}
}

// Translation returns a TRS holding only a translation.
func Translation(x, y, z float64) TRS {
	p := mgl64.Vec3{x, y, z}
	return TRS{Position: &p}
}

// Root is one application's scene graph for a frame. Nodes[0] is the root
// node; the rest are reached through child id lists.
type Root struct {
	// Owner is the contributing application's id. It forms the high half of
	// every GlobalID in this root.
	Owner uint32

	// Hook, when set, names the origin that node 0 is parented to.
	Hook string

	Nodes []Node
}

// rootState is a Root plus its local-id index, built once on ingestion.
type rootState struct {
	Root
	index map[uint32]int
}

func newRootState(r Root) *rootState {
	rs := &rootState{Root: r, index: make(map[uint32]int, len(r.Nodes))}
	for i := range r.Nodes {
		rs.index[r.Nodes[i].ID] = i
	}
	return rs
}

// node looks up a node by local id. Dangling ids return false.
func (rs *rootState) node(id uint32) (*Node, bool) {
	i, ok := rs.index[id]
	if !ok || i >= len(rs.Nodes) {
		return nil, false
	}
	return &rs.Nodes[i], true
}

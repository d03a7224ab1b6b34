package grove

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// traversalContext is the state a node passes down to its subtree. It is
// copied into every recursive call, so a subtree can never leak changes back
// to its siblings or ancestors.
type traversalContext struct {
	parent    GlobalID
	hasParent bool

	hand Hand

	grabbable    GlobalID
	hasGrabbable bool

	depth int
}

// link returns the edge from the inherited default parent with the given
// local matrix.
func (c traversalContext) link(parentFromNode mgl64.Mat4) parentLink {
	if c.hasParent {
		return childLink(c.parent, parentFromNode)
	}
	return rootLink(parentFromNode)
}

// traversal walks every root of one frame and fills the transform graph. It
// registers transforms and queues effects; nothing is evaluated until the
// graph is resolved after the last root.
type traversal struct {
	graph    *transformGraph
	anchors  *anchorTable
	origins  *originTable
	models   ModelProvider
	regs     *registries
	textures map[uint32]TextureBinding
	cfg      *Config
	log      *slog.Logger
	debug    bool
	absorb   func(id GlobalID, err error)
	dt       float32

	// instances persist across frames; live collects the ones used this
	// frame so the rest can be pruned.
	instances map[GlobalID]*ModelInstance
	live      map[GlobalID]struct{}

	root       *rootState
	visited    map[GlobalID]struct{}
	hands      map[GlobalID]Hand
	renderList RenderList
	nodeCount  int
}

// traverseRoot walks one application's graph starting at node 0.
func (t *traversal) traverseRoot(rs *rootState) {
	if len(rs.Nodes) == 0 {
		return
	}
	t.root = rs
	defer func() { t.root = nil }()

	var ctx traversalContext
	if rs.Hook != "" {
		if m, ok := t.origins.lookup(rs.Hook); ok {
			hook := hookGlobalID(rs.Owner)
			t.graph.register(hook, rootLink(m), nil)
			ctx.parent, ctx.hasParent = hook, true
			ctx.hand = handForPath(rs.Hook)
		} else {
			t.log.Debug("hook origin not tracked",
				slog.Uint64("owner", uint64(rs.Owner)), slog.String("hook", rs.Hook))
		}
	}
	t.traverseNode(&rs.Nodes[0], ctx)
}

// traverseNode registers n and recurses into its children.
func (t *traversal) traverseNode(n *Node, ctx traversalContext) {
	id, err := t.globalID(n)
	if err != nil {
		t.absorb(0, err)
		return
	}
	if _, seen := t.visited[id]; seen {
		t.log.Debug("node reached twice, skipping", slog.String("id", id.String()))
		return
	}
	t.visited[id] = struct{}{}
	t.nodeCount++

	child := ctx
	switch n.Kind {
	case NodeContainer:
		// structural only
	case NodeOrigin:
		t.visitOrigin(n, id, &child)
	case NodeTransform:
		t.graph.register(id, ctx.link(localMatrix(n.Transform)), nil)
	case NodeModel:
		t.visitModel(n, id, ctx)
	case NodePanel:
		t.visitPanel(n, id, ctx)
	case NodePoker:
		t.visitPoker(id, ctx)
	case NodeGrabbable:
		t.visitGrabbable(id, ctx, &child)
	case NodeHandle:
		t.visitHandle(n, id, ctx)
	case NodeGrabber:
		t.visitGrabber(n, id, ctx)
	default:
		t.log.Debug("unknown node kind", slog.String("id", id.String()), slog.String("kind", n.Kind.String()))
	}

	if !t.graph.registered(id) {
		t.graph.register(id, ctx.link(identityTransform), nil)
	}
	t.hands[id] = child.hand

	if len(n.Children) == 0 {
		return
	}
	if t.debug {
		debugCheckDepth(t.log, id, ctx.depth+1)
		debugCheckChildCount(t.log, id, len(n.Children))
	}
	child.parent, child.hasParent = id, true
	child.depth = ctx.depth + 1
	for _, childID := range n.Children {
		cn, ok := t.root.node(childID)
		if !ok {
			t.log.Debug("dangling child id",
				slog.String("parent", id.String()), slog.Uint64("child", uint64(childID)))
			continue
		}
		t.traverseNode(cn, child)
	}
}

// visitOrigin re-targets the node to a tracked origin and binds the hand
// device for the subtree. Unknown origins leave the node as a plain child.
func (t *traversal) visitOrigin(n *Node, id GlobalID, child *traversalContext) {
	m, ok := t.origins.lookup(n.Origin)
	if !ok {
		return
	}
	t.graph.register(id, rootLink(m), nil)
	child.hand = handForPath(n.Origin)
}

func (t *traversal) visitModel(n *Node, id GlobalID, ctx traversalContext) {
	inst := t.instanceFor(id, n.ModelURI)
	if inst == nil {
		return
	}
	t.renderList = append(t.renderList, inst)
	dt := t.dt
	t.graph.register(id, ctx.link(identityTransform), func(m mgl64.Mat4) {
		inst.place(m, dt)
	})
}

func (t *traversal) visitPanel(n *Node, id GlobalID, ctx traversalContext) {
	binding, hasBinding := t.textures[t.root.Owner]
	inst := t.instances[id]
	if hasBinding {
		uri := t.cfg.PanelModelURI
		if binding.InvertY {
			uri = t.cfg.PanelInvertedModelURI
		}
		if inst == nil || inst.uri != uri {
			inst = t.instanceFor(id, uri)
		}
	}
	if inst == nil {
		return
	}
	t.live[id] = struct{}{}

	if hasBinding {
		if inst.Texture == nil || *inst.Texture != binding {
			b := binding
			inst.Texture = &b
		}
	} else {
		inst.Texture = nil
	}

	t.renderList = append(t.renderList, inst)
	dt := t.dt
	interactive := n.Interactive
	regs := t.regs
	t.graph.register(id, ctx.link(identityTransform), func(m mgl64.Mat4) {
		inst.place(m, dt)
		if interactive {
			regs.addActivePanel(id, invert(m), panelScale(m))
		}
	})
}

func (t *traversal) visitPoker(id GlobalID, ctx traversalContext) {
	regs := t.regs
	t.graph.register(id, ctx.link(identityTransform), func(m mgl64.Mat4) {
		regs.addActivePoker(id, translationOf(m))
	})
}

// visitGrabbable makes the node the current grabbable of its subtree. An
// anchor overrides the structural parent; the structural parent stays
// recorded as the fallback for frames where the grabber is absent.
func (t *traversal) visitGrabbable(id GlobalID, ctx traversalContext, child *traversalContext) {
	child.grabbable, child.hasGrabbable = id, true
	a, ok := t.anchors.lookup(id)
	if !ok {
		return
	}
	t.graph.register(id, childLink(a.Grabber, a.GrabberFromGrabbable), nil)
	t.graph.setFallback(id, ctx.link(identityTransform))
}

func (t *traversal) visitHandle(n *Node, id GlobalID, ctx traversalContext) {
	if n.Volume == nil {
		t.absorb(id, fmt.Errorf("handle %v: volume: %w", id, ErrMissingProperty))
		return
	}
	if !ctx.hasGrabbable {
		t.log.Debug("handle outside any grabbable", slog.String("id", id.String()))
		return
	}
	vol := *n.Volume
	grabbable := ctx.grabbable
	regs := t.regs
	t.graph.register(id, ctx.link(identityTransform), func(m mgl64.Mat4) {
		regs.addGrabbableHandle(grabbable, m, vol)
	})
}

func (t *traversal) visitGrabber(n *Node, id GlobalID, ctx traversalContext) {
	if n.Volume == nil {
		t.absorb(id, fmt.Errorf("grabber %v: volume: %w", id, ErrMissingProperty))
		return
	}
	vol := *n.Volume
	pressed := t.origins.grabPressed(ctx.hand)
	regs := t.regs
	t.graph.register(id, ctx.link(identityTransform), func(m mgl64.Mat4) {
		regs.addGrabber(id, m, vol, pressed)
	})
}

// instanceFor returns the node's model instance for uri, creating it once the
// model provider has the model. A URI change replaces the instance.
func (t *traversal) instanceFor(id GlobalID, uri string) *ModelInstance {
	if inst, ok := t.instances[id]; ok && inst.uri == uri {
		t.live[id] = struct{}{}
		return inst
	}
	delete(t.instances, id)
	if t.models == nil || uri == "" {
		return nil
	}
	m, status := t.models.ResolveModel(uri)
	if status != ModelReady || m == nil {
		return nil
	}
	inst := newModelInstance(id, uri, m)
	t.instances[id] = inst
	t.live[id] = struct{}{}
	return inst
}

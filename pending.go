package grove

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Effect is a deferred side effect queued against a node. It runs once, with
// the node's resolved universe-from-node matrix, during resolution.
type Effect func(universeFromNode mgl64.Mat4)

type recordState uint8

const (
	stateUnresolved recordState = iota
	stateResolving
	stateResolved
	stateFailed
)

// parentLink is a dependency edge: an optional parent plus the node's matrix
// relative to it (relative to the universe when there is no parent).
type parentLink struct {
	parent         GlobalID
	hasParent      bool
	parentFromNode mgl64.Mat4
}

func rootLink(universeFromNode mgl64.Mat4) parentLink {
	return parentLink{parentFromNode: universeFromNode}
}

func childLink(parent GlobalID, parentFromNode mgl64.Mat4) parentLink {
	return parentLink{parent: parent, hasParent: true, parentFromNode: parentFromNode}
}

// pendingTransform is the per-frame record for one node.
type pendingTransform struct {
	id    GlobalID
	state recordState
	link  parentLink

	// fallback replaces link when link's parent is not registered this frame.
	fallback    parentLink
	hasFallback bool

	effects          []Effect
	universeFromNode mgl64.Mat4
	err              error
	inCycle          bool
}

// transformGraph holds every pending transform for one frame. Records live in
// a single slice in registration order and refer to their parents by id, so
// the table can be dropped wholesale at the start of the next frame.
type transformGraph struct {
	records  []pendingTransform
	slots    map[GlobalID]int
	resolved map[GlobalID]mgl64.Mat4

	// stack holds the slots currently being resolved, innermost last.
	stack []int
}

func newTransformGraph() *transformGraph {
	return &transformGraph{
		slots:    make(map[GlobalID]int),
		resolved: make(map[GlobalID]mgl64.Mat4),
	}
}

// reset discards every record. The previous resolved map is left to whoever
// holds it; a new one is allocated.
func (g *transformGraph) reset() {
	clear(g.records)
	g.records = g.records[:0]
	clear(g.slots)
	g.stack = g.stack[:0]
	g.resolved = make(map[GlobalID]mgl64.Mat4, len(g.resolved))
}

// registered reports whether id has a record this frame.
func (g *transformGraph) registered(id GlobalID) bool {
	_, ok := g.slots[id]
	return ok
}

// register inserts or updates the record for id. The dependency edge and
// local matrix are replaced; a non-nil effect is appended to the record's
// effect list. Nothing is evaluated here.
func (g *transformGraph) register(id GlobalID, link parentLink, effect Effect) {
	slot, ok := g.slots[id]
	if !ok {
		slot = len(g.records)
		g.records = append(g.records, pendingTransform{id: id})
		g.slots[id] = slot
	}
	r := &g.records[slot]
	r.link = link
	if effect != nil {
		r.effects = append(r.effects, effect)
	}
}

// setFallback records the edge to use when id's primary parent turns out to
// be missing at resolution time.
func (g *transformGraph) setFallback(id GlobalID, link parentLink) {
	slot, ok := g.slots[id]
	if !ok {
		return
	}
	g.records[slot].fallback = link
	g.records[slot].hasFallback = true
}

// resolve returns the universe-from-node matrix for id, resolving its parent
// chain first. Repeated calls return the cached result without re-running
// effects.
func (g *transformGraph) resolve(id GlobalID) (mgl64.Mat4, error) {
	slot, ok := g.slots[id]
	if !ok {
		return identityTransform, fmt.Errorf("resolve %v: %w", id, ErrUnknownNode)
	}
	return g.resolveSlot(slot)
}

func (g *transformGraph) resolveSlot(slot int) (mgl64.Mat4, error) {
	r := &g.records[slot]
	switch r.state {
	case stateResolved:
		return r.universeFromNode, nil
	case stateFailed:
		return identityTransform, r.err
	case stateResolving:
		g.markCycle(slot)
		r.state = stateFailed
		r.err = fmt.Errorf("resolve %v: %w", r.id, ErrDependencyCycle)
		return identityTransform, r.err
	}
	r.state = stateResolving

	g.stack = append(g.stack, slot)
	universe, err := g.compose(slot)
	g.stack = g.stack[:len(g.stack)-1]
	if err != nil {
		return g.fail(slot, err)
	}

	r = &g.records[slot]
	r.state = stateResolved
	r.universeFromNode = universe
	g.resolved[r.id] = universe
	for _, fx := range r.effects {
		fx(universe)
	}
	return universe, nil
}

// compose resolves the record's parent and applies its local matrix.
func (g *transformGraph) compose(slot int) (mgl64.Mat4, error) {
	r := &g.records[slot]
	link := r.link
	if link.hasParent && !g.registered(link.parent) && r.hasFallback {
		link = r.fallback
	}
	if !link.hasParent {
		return link.parentFromNode, nil
	}
	parentSlot, ok := g.slots[link.parent]
	if !ok {
		return identityTransform, fmt.Errorf("resolve %v: parent %v: %w", r.id, link.parent, ErrUnknownNode)
	}
	parentUniverse, err := g.resolveSlot(parentSlot)
	if err != nil {
		return identityTransform, err
	}
	return parentUniverse.Mul4(link.parentFromNode), nil
}

// markCycle flags the records on the resolution stack from slot to the top:
// the members of the cycle that just closed at slot.
func (g *transformGraph) markCycle(slot int) {
	for i := len(g.stack) - 1; i >= 0; i-- {
		g.records[g.stack[i]].inCycle = true
		if g.stack[i] == slot {
			return
		}
	}
}

// inCycle reports whether id is a member of a dependency cycle this frame.
// Records that failed only because an ancestor is on a cycle are not members.
func (g *transformGraph) inCycle(id GlobalID) bool {
	slot, ok := g.slots[id]
	return ok && g.records[slot].inCycle
}

func (g *transformGraph) fail(slot int, err error) (mgl64.Mat4, error) {
	r := &g.records[slot]
	if r.state != stateFailed {
		r.state = stateFailed
		r.err = err
	}
	return identityTransform, r.err
}

// resolveAll resolves every record in registration order and calls onFailure
// for each record that could not be resolved.
func (g *transformGraph) resolveAll(onFailure func(id GlobalID, err error)) {
	for slot := range g.records {
		if _, err := g.resolveSlot(slot); err != nil && onFailure != nil {
			onFailure(g.records[slot].id, err)
		}
	}
}

// count returns the number of registered records.
func (g *transformGraph) count() int {
	return len(g.records)
}

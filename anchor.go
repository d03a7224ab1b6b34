package grove

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Anchor rigidly attaches a grabbable to a grabber. While it exists the
// grabbable's structural parent is replaced by the grabber.
type Anchor struct {
	Grabber              GlobalID
	GrabberFromGrabbable mgl64.Mat4
}

// anchorTable maps a grabbable's GlobalID to its anchor. It is the only
// interaction state that outlives a frame.
type anchorTable struct {
	anchors map[GlobalID]Anchor
}

func newAnchorTable() *anchorTable {
	return &anchorTable{anchors: make(map[GlobalID]Anchor)}
}

// startGrab anchors grabbable to grabber using their poses from the last
// resolved frame. If either node is missing from lastFrame the table is left
// unchanged and ErrStaleReference is returned.
func (t *anchorTable) startGrab(lastFrame map[GlobalID]mgl64.Mat4, grabber, grabbable GlobalID) error {
	universeFromGrabbable, ok := lastFrame[grabbable]
	if !ok {
		return fmt.Errorf("start grab: grabbable %v: %w", grabbable, ErrStaleReference)
	}
	universeFromGrabber, ok := lastFrame[grabber]
	if !ok {
		return fmt.Errorf("start grab: grabber %v: %w", grabber, ErrStaleReference)
	}
	t.anchors[grabbable] = Anchor{
		Grabber:              grabber,
		GrabberFromGrabbable: invert(universeFromGrabber).Mul4(universeFromGrabbable),
	}
	return nil
}

// endGrab removes grabbable's anchor. Missing anchors are not an error.
func (t *anchorTable) endGrab(grabber, grabbable GlobalID) {
	delete(t.anchors, grabbable)
}

func (t *anchorTable) lookup(grabbable GlobalID) (Anchor, bool) {
	a, ok := t.anchors[grabbable]
	return a, ok
}

func (t *anchorTable) count() int {
	return len(t.anchors)
}

// snapshot returns a copy of the table.
func (t *anchorTable) snapshot() map[GlobalID]Anchor {
	out := make(map[GlobalID]Anchor, len(t.anchors))
	for k, v := range t.anchors {
		out[k] = v
	}
	return out
}

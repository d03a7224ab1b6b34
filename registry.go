package grove

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
)

// IntersectionRegistry receives the pokable state of a frame. Each eligible
// node is reported at most once per frame, from resolution.
type IntersectionRegistry interface {
	AddActivePanel(id GlobalID, worldToLocal mgl64.Mat4, scaleHint float64)
	AddActivePoker(id GlobalID, worldPosition mgl64.Vec3)
}

// CollisionRegistry receives the grabbable state of a frame.
type CollisionRegistry interface {
	AddGrabbableHandle(grabbable GlobalID, universeFromHandle mgl64.Mat4, vol Volume)
	AddGrabber(id GlobalID, universeFromGrabber mgl64.Mat4, vol Volume, pressed bool)
}

// Resetter is implemented by registries that hold per-frame state. The
// renderer calls Reset at the top of every frame.
type Resetter interface {
	Reset()
}

// PanelEntry is an interactive panel reported during resolution.
type PanelEntry struct {
	ID           GlobalID
	WorldToLocal mgl64.Mat4
	ScaleHint    float64
}

// PokerEntry is a poker reported during resolution.
type PokerEntry struct {
	ID       GlobalID
	Position mgl64.Vec3
}

// HandleEntry is a grabbable handle reported during resolution.
type HandleEntry struct {
	Grabbable          GlobalID
	UniverseFromHandle mgl64.Mat4
	Volume             Volume
}

// GrabberEntry is a grabber reported during resolution.
type GrabberEntry struct {
	ID                  GlobalID
	UniverseFromGrabber mgl64.Mat4
	Volume              Volume
	Pressed             bool
}

// FrameRegistry is an in-memory IntersectionRegistry and CollisionRegistry
// that keeps the entries of the current frame.
type FrameRegistry struct {
	Panels   []PanelEntry
	Pokers   []PokerEntry
	Handles  []HandleEntry
	Grabbers []GrabberEntry
}

// Reset implements Resetter.
func (r *FrameRegistry) Reset() {
	r.Panels = r.Panels[:0]
	r.Pokers = r.Pokers[:0]
	r.Handles = r.Handles[:0]
	r.Grabbers = r.Grabbers[:0]
}

// AddActivePanel implements IntersectionRegistry.
func (r *FrameRegistry) AddActivePanel(id GlobalID, worldToLocal mgl64.Mat4, scaleHint float64) {
	r.Panels = append(r.Panels, PanelEntry{ID: id, WorldToLocal: worldToLocal, ScaleHint: scaleHint})
}

// AddActivePoker implements IntersectionRegistry.
func (r *FrameRegistry) AddActivePoker(id GlobalID, worldPosition mgl64.Vec3) {
	r.Pokers = append(r.Pokers, PokerEntry{ID: id, Position: worldPosition})
}

// AddGrabbableHandle implements CollisionRegistry.
func (r *FrameRegistry) AddGrabbableHandle(grabbable GlobalID, universeFromHandle mgl64.Mat4, vol Volume) {
	r.Handles = append(r.Handles, HandleEntry{Grabbable: grabbable, UniverseFromHandle: universeFromHandle, Volume: vol})
}

// AddGrabber implements CollisionRegistry.
func (r *FrameRegistry) AddGrabber(id GlobalID, universeFromGrabber mgl64.Mat4, vol Volume, pressed bool) {
	r.Grabbers = append(r.Grabbers, GrabberEntry{ID: id, UniverseFromGrabber: universeFromGrabber, Volume: vol, Pressed: pressed})
}

// Grabber returns the entry for id, if one was reported this frame.
func (r *FrameRegistry) Grabber(id GlobalID) (GrabberEntry, bool) {
	for _, g := range r.Grabbers {
		if g.ID == id {
			return g, true
		}
	}
	return GrabberEntry{}, false
}

// HandlesOf returns the handles reported for grabbable this frame.
func (r *FrameRegistry) HandlesOf(grabbable GlobalID) []HandleEntry {
	var out []HandleEntry
	for _, h := range r.Handles {
		if h.Grabbable == grabbable {
			out = append(out, h)
		}
	}
	return out
}

// registries fans registry calls out to every attached sink.
type registries struct {
	intersections []IntersectionRegistry
	collisions    []CollisionRegistry
}

func (r *registries) reset() {
	var done []Resetter
	resetOnce := func(sink any) {
		rs, ok := sink.(Resetter)
		if !ok {
			return
		}
		// Sinks of map, slice or func type cannot be compared; they are
		// reset once per attachment.
		if reflect.TypeOf(rs).Comparable() {
			for _, d := range done {
				if reflect.TypeOf(d).Comparable() && d == rs {
					return
				}
			}
		}
		done = append(done, rs)
		rs.Reset()
	}
	for _, ir := range r.intersections {
		resetOnce(ir)
	}
	for _, cr := range r.collisions {
		resetOnce(cr)
	}
}

func (r *registries) addActivePanel(id GlobalID, worldToLocal mgl64.Mat4, scaleHint float64) {
	for _, ir := range r.intersections {
		ir.AddActivePanel(id, worldToLocal, scaleHint)
	}
}

func (r *registries) addActivePoker(id GlobalID, worldPosition mgl64.Vec3) {
	for _, ir := range r.intersections {
		ir.AddActivePoker(id, worldPosition)
	}
}

func (r *registries) addGrabbableHandle(grabbable GlobalID, universeFromHandle mgl64.Mat4, vol Volume) {
	for _, cr := range r.collisions {
		cr.AddGrabbableHandle(grabbable, universeFromHandle, vol)
	}
}

func (r *registries) addGrabber(id GlobalID, universeFromGrabber mgl64.Mat4, vol Volume, pressed bool) {
	for _, cr := range r.collisions {
		cr.AddGrabber(id, universeFromGrabber, vol, pressed)
	}
}

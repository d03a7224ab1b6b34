package grove

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type countingRegistry struct {
	FrameRegistry
	resets int
}

func (c *countingRegistry) Reset() {
	c.resets++
	c.FrameRegistry.Reset()
}

func TestFrameRegistryReset(t *testing.T) {
	r := &FrameRegistry{}
	r.AddActivePanel(MakeGlobalID(1, 1), mgl64.Ident4(), 1)
	r.AddActivePoker(MakeGlobalID(1, 2), mgl64.Vec3{})
	r.AddGrabbableHandle(MakeGlobalID(1, 3), mgl64.Ident4(), Sphere(1))
	r.AddGrabber(MakeGlobalID(1, 4), mgl64.Ident4(), Sphere(1), true)
	r.Reset()
	if len(r.Panels)+len(r.Pokers)+len(r.Handles)+len(r.Grabbers) != 0 {
		t.Errorf("entries survived Reset: %+v", r)
	}
}

func TestFrameRegistryLookups(t *testing.T) {
	r := &FrameRegistry{}
	a, b := MakeGlobalID(1, 3), MakeGlobalID(1, 9)
	r.AddGrabbableHandle(a, mgl64.Translate3D(1, 0, 0), Sphere(1))
	r.AddGrabbableHandle(b, mgl64.Ident4(), Sphere(1))
	r.AddGrabbableHandle(a, mgl64.Translate3D(2, 0, 0), Sphere(1))
	r.AddGrabber(MakeGlobalID(2, 1), mgl64.Ident4(), Sphere(0.1), true)

	if got := r.HandlesOf(a); len(got) != 2 {
		t.Errorf("HandlesOf = %d entries, want 2", len(got))
	}
	if got := r.HandlesOf(MakeGlobalID(5, 5)); got != nil {
		t.Errorf("HandlesOf unknown = %v, want nil", got)
	}
	g, ok := r.Grabber(MakeGlobalID(2, 1))
	if !ok || !g.Pressed {
		t.Errorf("Grabber = %+v, %v", g, ok)
	}
	if _, ok := r.Grabber(MakeGlobalID(2, 2)); ok {
		t.Error("found a grabber that was never reported")
	}
}

func TestRegistriesResetOncePerSink(t *testing.T) {
	shared := &countingRegistry{}
	other := &countingRegistry{}
	regs := registries{
		intersections: []IntersectionRegistry{shared},
		collisions:    []CollisionRegistry{shared, other},
	}
	regs.reset()
	if shared.resets != 1 || other.resets != 1 {
		t.Errorf("resets = %d, %d; want 1, 1", shared.resets, other.resets)
	}
}

func TestRegistriesFanOut(t *testing.T) {
	a, b := &FrameRegistry{}, &FrameRegistry{}
	regs := registries{
		intersections: []IntersectionRegistry{a, b},
		collisions:    []CollisionRegistry{a},
	}
	regs.addActivePoker(MakeGlobalID(1, 1), mgl64.Vec3{1, 2, 3})
	regs.addGrabber(MakeGlobalID(1, 2), mgl64.Ident4(), Sphere(1), false)
	if len(a.Pokers) != 1 || len(b.Pokers) != 1 {
		t.Errorf("pokers = %d, %d; want 1, 1", len(a.Pokers), len(b.Pokers))
	}
	if len(a.Grabbers) != 1 || len(b.Grabbers) != 0 {
		t.Errorf("grabbers = %d, %d; want 1, 0", len(a.Grabbers), len(b.Grabbers))
	}
}

func TestRendererReportsOncePerFrame(t *testing.T) {
	poses := &StaticPoses{}
	r, reg := newTestRenderer(poses)
	r.ApplyFrame(Frame{Roots: []Root{sceneRoot(), handsRoot()}})
	for i := 0; i < 3; i++ {
		r.ResolveFrame(0)
	}
	if len(reg.Handles) != 1 || len(reg.Grabbers) != 1 {
		t.Errorf("handles = %d, grabbers = %d; want 1, 1", len(reg.Handles), len(reg.Grabbers))
	}
}

// pokerMap is a registry whose dynamic type cannot be used as a map key.
type pokerMap map[GlobalID]mgl64.Vec3

func (p pokerMap) Reset() { clear(p) }

func (p pokerMap) AddActivePanel(GlobalID, mgl64.Mat4, float64) {}

func (p pokerMap) AddActivePoker(id GlobalID, worldPosition mgl64.Vec3) { p[id] = worldPosition }

func TestUncomparableRegistryReset(t *testing.T) {
	pokers := pokerMap{MakeGlobalID(9, 9): {}}
	r := NewRenderer(Options{Intersections: pokers})
	r.ApplyFrame(Frame{Roots: []Root{{Owner: 1, Nodes: []Node{
		NewTransform(0, Translation(0, 2, 0), 1),
		NewPoker(1),
	}}}})

	r.ResolveFrame(0)
	r.ResolveFrame(0)

	if len(pokers) != 1 {
		t.Fatalf("pokers = %v, want only this frame's poker", pokers)
	}
	assertVec(t, "poker", pokers[MakeGlobalID(1, 1)], mgl64.Vec3{0, 2, 0})
}

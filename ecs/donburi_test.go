package ecs

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiRegistry(t *testing.T) {
	world := donburi.NewWorld()
	reg := NewDonburiRegistry(world)
	if reg == nil {
		t.Fatal("NewDonburiRegistry returned nil")
	}
}

func TestDonburiRegistry_Publish(t *testing.T) {
	world := donburi.NewWorld()
	reg := NewDonburiRegistry(world)

	var pokers []grove.PokerEntry
	var grabbers []grove.GrabberEntry
	PokerEventType.Subscribe(world, func(w donburi.World, e grove.PokerEntry) {
		pokers = append(pokers, e)
	})
	GrabberEventType.Subscribe(world, func(w donburi.World, e grove.GrabberEntry) {
		grabbers = append(grabbers, e)
	})

	id := grove.MakeGlobalID(3, 7)
	reg.AddActivePoker(id, mgl64.Vec3{1, 2, 3})
	reg.AddGrabber(id, mgl64.Translate3D(0, 1, 0), grove.Sphere(0.1), true)

	// Events are queued until processed.
	if len(pokers) != 0 {
		t.Fatalf("expected no delivery before processing, got %d", len(pokers))
	}
	events.ProcessAllEvents(world)

	if len(pokers) != 1 {
		t.Fatalf("expected 1 poker event, got %d", len(pokers))
	}
	if pokers[0].ID != id || pokers[0].Position != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("poker event: %+v", pokers[0])
	}

	if len(grabbers) != 1 {
		t.Fatalf("expected 1 grabber event, got %d", len(grabbers))
	}
	if !grabbers[0].Pressed || grabbers[0].Volume.Type != grove.VolumeSphere {
		t.Errorf("grabber event: %+v", grabbers[0])
	}
}

func TestDonburiRegistry_FromRenderer(t *testing.T) {
	world := donburi.NewWorld()
	reg := NewDonburiRegistry(world)

	poses := &grove.StaticPoses{Pressed: map[grove.Hand]bool{grove.HandRight: true}}
	poses.Set(grove.PathRightHand, mgl64.Translate3D(0.2, 1.2, 0))

	r := grove.NewRenderer(grove.Options{Poses: poses})
	r.AddIntersectionRegistry(reg)
	r.AddCollisionRegistry(reg)

	r.ApplyFrame(grove.Frame{Roots: []grove.Root{{
		Owner: 1,
		Nodes: []grove.Node{
			grove.NewOrigin(0, grove.PathRightHand, 1, 2),
			grove.NewGrabber(1, grove.Sphere(0.05)),
			grove.NewPoker(2),
		},
	}}})

	var resets, handles int
	var grabbers []grove.GrabberEntry
	var pokers []grove.PokerEntry
	FrameResetEventType.Subscribe(world, func(w donburi.World, e FrameReset) { resets++ })
	HandleEventType.Subscribe(world, func(w donburi.World, e grove.HandleEntry) { handles++ })
	GrabberEventType.Subscribe(world, func(w donburi.World, e grove.GrabberEntry) {
		grabbers = append(grabbers, e)
	})
	PokerEventType.Subscribe(world, func(w donburi.World, e grove.PokerEntry) {
		pokers = append(pokers, e)
	})

	r.ResolveFrame(1.0 / 90)
	events.ProcessAllEvents(world)

	// Registered as both kinds of registry, but reset once per frame.
	if resets != 1 {
		t.Errorf("expected 1 reset, got %d", resets)
	}
	if handles != 0 {
		t.Errorf("expected no handles, got %d", handles)
	}
	if len(grabbers) != 1 {
		t.Fatalf("expected 1 grabber, got %d", len(grabbers))
	}
	if grabbers[0].ID != grove.MakeGlobalID(1, 1) || !grabbers[0].Pressed {
		t.Errorf("grabber: %+v", grabbers[0])
	}
	if len(pokers) != 1 {
		t.Fatalf("expected 1 poker, got %d", len(pokers))
	}
	if y := pokers[0].Position.Y(); math.Abs(y-1.2) > 1e-9 {
		t.Errorf("poker y = %v, want 1.2", y)
	}
}

func TestDonburiRegistry_ImplementsRegistries(t *testing.T) {
	world := donburi.NewWorld()
	var _ grove.IntersectionRegistry = NewDonburiRegistry(world)
	var _ grove.CollisionRegistry = NewDonburiRegistry(world)
}

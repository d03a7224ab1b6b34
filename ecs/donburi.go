// Package ecs provides ECS adapters for grove.
package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FrameReset is published when the renderer starts a new frame, before any
// entry of that frame.
type FrameReset struct{}

// Donburi event types for registry entries.
var (
	FrameResetEventType = events.NewEventType[FrameReset]()
	PanelEventType      = events.NewEventType[grove.PanelEntry]()
	PokerEventType      = events.NewEventType[grove.PokerEntry]()
	HandleEventType     = events.NewEventType[grove.HandleEntry]()
	GrabberEventType    = events.NewEventType[grove.GrabberEntry]()
)

// Registry is both an IntersectionRegistry and a CollisionRegistry.
type Registry interface {
	grove.IntersectionRegistry
	grove.CollisionRegistry
	grove.Resetter
}

type donburiRegistry struct {
	world donburi.World
}

// NewDonburiRegistry creates a registry backed by a Donburi world. Entries
// are queued on the event types above and delivered by ProcessEvents.
func NewDonburiRegistry(world donburi.World) Registry {
	return &donburiRegistry{world: world}
}

func (r *donburiRegistry) Reset() {
	FrameResetEventType.Publish(r.world, FrameReset{})
}

func (r *donburiRegistry) AddActivePanel(id grove.GlobalID, worldToLocal mgl64.Mat4, scaleHint float64) {
	PanelEventType.Publish(r.world, grove.PanelEntry{ID: id, WorldToLocal: worldToLocal, ScaleHint: scaleHint})
}

func (r *donburiRegistry) AddActivePoker(id grove.GlobalID, worldPosition mgl64.Vec3) {
	PokerEventType.Publish(r.world, grove.PokerEntry{ID: id, Position: worldPosition})
}

func (r *donburiRegistry) AddGrabbableHandle(grabbable grove.GlobalID, universeFromHandle mgl64.Mat4, vol grove.Volume) {
	HandleEventType.Publish(r.world, grove.HandleEntry{Grabbable: grabbable, UniverseFromHandle: universeFromHandle, Volume: vol})
}

func (r *donburiRegistry) AddGrabber(id grove.GlobalID, universeFromGrabber mgl64.Mat4, vol grove.Volume, pressed bool) {
	GrabberEventType.Publish(r.world, grove.GrabberEntry{ID: id, UniverseFromGrabber: universeFromGrabber, Volume: vol, Pressed: pressed})
}

package grove

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// GlobalID identifies a node across roots, frames and subsystems.
// The high 32 bits are the owning application's id, the low 32 bits the
// node's local id inside that application's root.
type GlobalID uint64

// Owner returns the id of the application that owns the node.
func (id GlobalID) Owner() uint32 { return uint32(id >> 32) }

// Local returns the node's id inside its root.
func (id GlobalID) Local() uint32 { return uint32(id) }

func (id GlobalID) String() string {
	return fmt.Sprintf("%d/%d", id.Owner(), id.Local())
}

// NodeKind selects how the traversal engine treats a Node.
type NodeKind uint8

const (
	NodeContainer NodeKind = iota // structural only
	NodeOrigin                    // re-targets to a named origin (hand, head, stage)
	NodeTransform                 // local translate/rotate/scale
	NodeModel                     // renders a model
	NodePanel                     // renders an application's shared texture, optionally pokable
	NodePoker                     // fingertip that pokes panels
	NodeGrabbable                 // something that can be grabbed
	NodeHandle                    // graspable region of the enclosing grabbable
	NodeGrabber                   // actor that grabs
)

var nodeKindNames = [...]string{
	NodeContainer: "container",
	NodeOrigin:    "origin",
	NodeTransform: "transform",
	NodeModel:     "model",
	NodePanel:     "panel",
	NodePoker:     "poker",
	NodeGrabbable: "grabbable",
	NodeHandle:    "handle",
	NodeGrabber:   "grabber",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

// ParseNodeKind returns the kind with the given lower-case name.
func ParseNodeKind(s string) (NodeKind, error) {
	for i, name := range nodeKindNames {
		if name == s {
			return NodeKind(i), nil
		}
	}
	return 0, fmt.Errorf("grove: unknown node kind %q", s)
}

// Hand identifies a tracked hand device.
type Hand uint8

const (
	HandNone  Hand = iota // no hand device in scope
	HandLeft              // /user/hand/left
	HandRight             // /user/hand/right
)

func (h Hand) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	default:
		return "none"
	}
}

// Well-known origin paths.
const (
	PathLeftHand  = "/user/hand/left"
	PathRightHand = "/user/hand/right"
	PathHead      = "/user/head"
	PathStage     = "/space/stage"
)

// handForPath maps an origin path to the hand device it binds. Origins that
// are not hands bind HandNone.
func handForPath(path string) Hand {
	switch path {
	case PathLeftHand:
		return HandLeft
	case PathRightHand:
		return HandRight
	default:
		return HandNone
	}
}

// VolumeType selects the shape of a Volume.
type VolumeType uint8

const (
	VolumeSphere VolumeType = iota // centered at the node origin
	VolumeBox                      // axis-aligned in node space
)

// Volume is a collision volume in node-local coordinates.
type Volume struct {
	Type   VolumeType
	Radius float64    // VolumeSphere
	Min    mgl64.Vec3 // VolumeBox
	Max    mgl64.Vec3 // VolumeBox
}

// Sphere returns a spherical volume of radius r.
func Sphere(r float64) Volume {
	return Volume{Type: VolumeSphere, Radius: r}
}

// Box returns an axis-aligned box volume.
func Box(min, max mgl64.Vec3) Volume {
	return Volume{Type: VolumeBox, Min: min, Max: max}
}

// Contains reports whether the node-local point p lies inside the volume.
// Points on the surface are considered inside.
func (v Volume) Contains(p mgl64.Vec3) bool {
	switch v.Type {
	case VolumeSphere:
		return p.LenSqr() <= v.Radius*v.Radius
	case VolumeBox:
		return p[0] >= v.Min[0] && p[0] <= v.Max[0] &&
			p[1] >= v.Min[1] && p[1] <= v.Max[1] &&
			p[2] >= v.Min[2] && p[2] <= v.Max[2]
	default:
		return false
	}
}

// TextureFormat is the pixel layout of a shared panel texture.
type TextureFormat uint8

const (
	TextureR8G8B8A8 TextureFormat = iota
	TextureB8G8R8A8
)

// TextureBinding describes the shared texture an application renders its
// panels into.
type TextureBinding struct {
	Owner   uint32
	Handle  uint64
	Width   uint32
	Height  uint32
	Format  TextureFormat
	InvertY bool
}

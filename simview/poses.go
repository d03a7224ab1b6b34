package simview

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/grove"
)

const (
	defaultHandHeight = 1.0
	defaultHeadHeight = 1.6
	wheelStep         = 0.05
)

// MousePoses is a grove.PoseProvider driven by mouse and keyboard. The right
// hand follows the cursor, the left hand stays where it was last placed with
// a right click, and the head sits above the universe origin. The left mouse
// button is the right hand's grab button and Space is the left hand's. The
// wheel raises and lowers the right hand.
//
// Poses and GrabPressed must be called on the goroutine that calls Update,
// which is what ebiten's Update and grove's ResolveFrame on the same loop do.
type MousePoses struct {
	View View

	right      mgl64.Vec3
	left       mgl64.Vec3
	headHeight float64
	pressed    [3]bool
	poses      map[string]mgl64.Mat4
}

// NewMousePoses returns a provider with both hands at the universe origin.
func NewMousePoses(view View) *MousePoses {
	p := &MousePoses{
		View:       view,
		right:      mgl64.Vec3{0.2, defaultHandHeight, 0},
		left:       mgl64.Vec3{-0.2, defaultHandHeight, 0},
		headHeight: defaultHeadHeight,
		poses:      make(map[string]mgl64.Mat4, 3),
	}
	p.refresh()
	return p
}

// Update samples ebiten's input state. Call once per tick before resolving.
func (p *MousePoses) Update() {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	height := p.right.Y() + wy*wheelStep
	p.MoveRight(p.View.ToUniverse(float64(mx), float64(my), height))
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		p.MoveLeft(p.View.ToUniverse(float64(mx), float64(my), p.left.Y()))
	}
	p.SetPressed(grove.HandRight, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	p.SetPressed(grove.HandLeft, ebiten.IsKeyPressed(ebiten.KeySpace))
}

// MoveRight places the right hand.
func (p *MousePoses) MoveRight(pos mgl64.Vec3) {
	p.right = pos
	p.refresh()
}

// MoveLeft places the left hand.
func (p *MousePoses) MoveLeft(pos mgl64.Vec3) {
	p.left = pos
	p.refresh()
}

// SetPressed sets the grab button state of h.
func (p *MousePoses) SetPressed(h grove.Hand, pressed bool) {
	if int(h) < len(p.pressed) {
		p.pressed[h] = pressed
	}
}

// Hand returns the position of h.
func (p *MousePoses) Hand(h grove.Hand) mgl64.Vec3 {
	if h == grove.HandLeft {
		return p.left
	}
	return p.right
}

func (p *MousePoses) refresh() {
	p.poses[grove.PathRightHand] = mgl64.Translate3D(p.right[0], p.right[1], p.right[2])
	p.poses[grove.PathLeftHand] = mgl64.Translate3D(p.left[0], p.left[1], p.left[2])
	p.poses[grove.PathHead] = mgl64.Translate3D(0, p.headHeight, 0)
}

// Poses implements grove.PoseProvider.
func (p *MousePoses) Poses() map[string]mgl64.Mat4 {
	return p.poses
}

// GrabPressed implements grove.PoseProvider.
func (p *MousePoses) GrabPressed(h grove.Hand) bool {
	if int(h) >= len(p.pressed) {
		return false
	}
	return p.pressed[h]
}

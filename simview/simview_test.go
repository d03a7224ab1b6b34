package simview

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/grove"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_RoundTrip(t *testing.T) {
	v := DefaultView(640, 480)
	x, y := v.ToScreen(mgl64.Vec3{0.5, 1.2, -0.25})
	assert.InDelta(t, 420, x, 1e-4)
	assert.InDelta(t, 190, y, 1e-4)

	p := v.ToUniverse(float64(x), float64(y), 1.2)
	assert.InDelta(t, 0.5, p.X(), 1e-6)
	assert.InDelta(t, 1.2, p.Y(), 1e-12)
	assert.InDelta(t, -0.25, p.Z(), 1e-6)
}

func TestView_ZeroScale(t *testing.T) {
	var v View
	p := v.ToUniverse(3, 4, 0)
	assert.Equal(t, mgl64.Vec3{3, 0, 4}, p)
}

func TestMousePoses(t *testing.T) {
	p := NewMousePoses(DefaultView(640, 480))
	p.MoveRight(mgl64.Vec3{1, 2, 3})
	p.SetPressed(grove.HandRight, true)

	poses := p.Poses()
	require.Contains(t, poses, grove.PathRightHand)
	require.Contains(t, poses, grove.PathLeftHand)
	require.Contains(t, poses, grove.PathHead)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, poses[grove.PathRightHand].Col(3).Vec3())
	assert.InDelta(t, defaultHeadHeight, poses[grove.PathHead].Col(3).Y(), 1e-12)

	assert.True(t, p.GrabPressed(grove.HandRight))
	assert.False(t, p.GrabPressed(grove.HandLeft))
	assert.False(t, p.GrabPressed(grove.Hand(9)))
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, p.Hand(grove.HandRight))
}

type grabCall struct {
	start              bool
	grabber, grabbable grove.GlobalID
}

type recordingSink struct{ calls []grabCall }

func (s *recordingSink) StartGrab(grabber, grabbable grove.GlobalID) {
	s.calls = append(s.calls, grabCall{true, grabber, grabbable})
}

func (s *recordingSink) EndGrab(grabber, grabbable grove.GlobalID) {
	s.calls = append(s.calls, grabCall{false, grabber, grabbable})
}

func TestGrabController(t *testing.T) {
	hand := grove.MakeGlobalID(2, 0)
	cube := grove.MakeGlobalID(1, 4)
	reg := &grove.FrameRegistry{}
	sink := &recordingSink{}
	c := NewGrabController()

	frame := func(grabberAt mgl64.Vec3, pressed bool) {
		reg.Reset()
		reg.AddGrabbableHandle(cube, mgl64.Translate3D(1, 1, 0), grove.Sphere(0.1))
		reg.AddGrabber(hand, mgl64.Translate3D(grabberAt[0], grabberAt[1], grabberAt[2]), grove.Sphere(0.02), pressed)
		c.Update(reg, sink)
	}

	// Pressing away from the handle grabs nothing, and holding the button
	// while moving in does not grab either.
	frame(mgl64.Vec3{0, 1, 0}, true)
	frame(mgl64.Vec3{1, 1, 0}, true)
	assert.Empty(t, sink.calls)

	frame(mgl64.Vec3{1, 1, 0}, false)
	frame(mgl64.Vec3{1.05, 1, 0}, true)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, grabCall{true, hand, cube}, sink.calls[0])
	held, ok := c.Holding(hand)
	require.True(t, ok)
	assert.Equal(t, cube, held)

	frame(mgl64.Vec3{3, 1, 0}, true)
	require.Len(t, sink.calls, 1)

	frame(mgl64.Vec3{3, 1, 0}, false)
	require.Len(t, sink.calls, 2)
	assert.Equal(t, grabCall{false, hand, cube}, sink.calls[1])
	_, ok = c.Holding(hand)
	assert.False(t, ok)
}

func TestGrabController_OneHolderPerGrabbable(t *testing.T) {
	left := grove.MakeGlobalID(2, 0)
	right := grove.MakeGlobalID(3, 0)
	cube := grove.MakeGlobalID(1, 4)
	reg := &grove.FrameRegistry{}
	reg.AddGrabbableHandle(cube, mgl64.Ident4(), grove.Box(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1}))
	reg.AddGrabber(left, mgl64.Ident4(), grove.Sphere(0.02), true)
	reg.AddGrabber(right, mgl64.Translate3D(0.5, 0, 0), grove.Sphere(0.02), true)

	sink := &recordingSink{}
	NewGrabController().Update(reg, sink)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, left, sink.calls[0].grabber)
}

// Package simview is a desktop stand-in for a VR runtime. It drives grove's
// hand origins from the mouse and draws a resolved frame top-down with
// ebiten, so scenes can be exercised without a headset.
package simview

import "github.com/go-gl/mathgl/mgl64"

// View maps the universe's X/Z floor plane to screen pixels. Universe +X is
// screen right and universe -Z is screen up.
type View struct {
	// CenterX, CenterY is the screen position of the universe origin.
	CenterX, CenterY float64
	// Scale is pixels per meter.
	Scale float64
}

// DefaultView centers the origin in a w x h window at 200 px/m.
func DefaultView(w, h int) View {
	return View{CenterX: float64(w) / 2, CenterY: float64(h) / 2, Scale: 200}
}

// ToScreen projects a universe point onto the screen.
func (v View) ToScreen(p mgl64.Vec3) (float32, float32) {
	return float32(v.CenterX + p.X()*v.Scale), float32(v.CenterY + p.Z()*v.Scale)
}

// ToUniverse lifts a screen point to the universe at the given height.
func (v View) ToUniverse(x, y, height float64) mgl64.Vec3 {
	s := v.Scale
	if s == 0 {
		s = 1
	}
	return mgl64.Vec3{(x - v.CenterX) / s, height, (y - v.CenterY) / s}
}

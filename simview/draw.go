package simview

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/grove"
)

// Palette colors used by the debug view.
var (
	ColorBackground = color.RGBA{R: 24, G: 24, B: 32, A: 255}
	ColorGrid       = color.RGBA{R: 48, G: 48, B: 60, A: 255}
	ColorModel      = color.RGBA{R: 80, G: 180, B: 255, A: 255}
	ColorPanel      = color.RGBA{R: 240, G: 200, B: 80, A: 255}
	ColorHandle     = color.RGBA{R: 120, G: 230, B: 120, A: 255}
	ColorGrabber    = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	ColorPressed    = color.RGBA{R: 255, G: 90, B: 90, A: 255}
	ColorPoker      = color.RGBA{R: 255, G: 140, B: 220, A: 255}
)

const (
	modelHalfSize = 0.05 // meters
	gridSpacing   = 0.5  // meters
)

// DrawGrid fills dst with the background and draws a floor grid.
func DrawGrid(dst *ebiten.Image, v View) {
	dst.Fill(ColorBackground)
	if v.Scale <= 0 {
		return
	}
	b := dst.Bounds()
	step := gridSpacing * v.Scale
	for x := v.CenterX - float64(int(v.CenterX/step))*step; x < float64(b.Max.X); x += step {
		vector.StrokeLine(dst, float32(x), 0, float32(x), float32(b.Max.Y), 1, ColorGrid, false)
	}
	for y := v.CenterY - float64(int(v.CenterY/step))*step; y < float64(b.Max.Y); y += step {
		vector.StrokeLine(dst, 0, float32(y), float32(b.Max.X), float32(y), 1, ColorGrid, false)
	}
}

// DrawRenderList draws every model instance as a square at its position,
// with a tick showing its local -Z axis.
func DrawRenderList(dst *ebiten.Image, v View, list grove.RenderList) {
	half := float32(modelHalfSize * v.Scale)
	for _, inst := range list {
		m := inst.Transform()
		x, y := v.ToScreen(m.Col(3).Vec3())
		clr := ColorModel
		if inst.Texture != nil {
			clr = ColorPanel
		}
		vector.DrawFilledRect(dst, x-half, y-half, 2*half, 2*half, clr, false)
		fx, fy := v.ToScreen(grove.LocalToWorld(m, mgl64.Vec3{0, 0, -2 * modelHalfSize}))
		vector.StrokeLine(dst, x, y, fx, fy, 2, clr, true)
	}
}

// DrawRegistry draws the handles, grabbers and pokers of a frame.
func DrawRegistry(dst *ebiten.Image, v View, reg *grove.FrameRegistry) {
	for _, h := range reg.Handles {
		drawVolume(dst, v, h.UniverseFromHandle, h.Volume, ColorHandle)
	}
	for _, g := range reg.Grabbers {
		clr := ColorGrabber
		if g.Pressed {
			clr = ColorPressed
		}
		drawVolume(dst, v, g.UniverseFromGrabber, g.Volume, clr)
		x, y := v.ToScreen(g.UniverseFromGrabber.Col(3).Vec3())
		vector.DrawFilledCircle(dst, x, y, 3, clr, true)
	}
	for _, p := range reg.Pokers {
		x, y := v.ToScreen(p.Position)
		vector.DrawFilledCircle(dst, x, y, 4, ColorPoker, true)
	}
}

func drawVolume(dst *ebiten.Image, v View, m mgl64.Mat4, vol grove.Volume, clr color.Color) {
	switch vol.Type {
	case grove.VolumeSphere:
		x, y := v.ToScreen(m.Col(3).Vec3())
		scale := m.Col(0).Vec3().Len()
		vector.StrokeCircle(dst, x, y, float32(vol.Radius*scale*v.Scale), 1.5, clr, true)
	case grove.VolumeBox:
		// Project the four floor-plane corners; rotated boxes draw as
		// quadrilaterals.
		corners := [4]mgl64.Vec3{
			{vol.Min[0], 0, vol.Min[2]},
			{vol.Max[0], 0, vol.Min[2]},
			{vol.Max[0], 0, vol.Max[2]},
			{vol.Min[0], 0, vol.Max[2]},
		}
		var xs, ys [4]float32
		for i, c := range corners {
			xs[i], ys[i] = v.ToScreen(grove.LocalToWorld(m, c))
		}
		for i := range corners {
			j := (i + 1) % len(corners)
			vector.StrokeLine(dst, xs[i], ys[i], xs[j], ys[j], 1.5, clr, true)
		}
	}
}

// DrawStats prints a frame's stats in the top-left corner.
func DrawStats(dst *ebiten.Image, s grove.FrameStats) {
	msg := fmt.Sprintf("frame %d  roots %d  nodes %d\nresolved %d  failed %d  items %d  anchors %d\ntraverse %v  resolve %v\nFPS %.1f",
		s.Frame, s.Roots, s.Nodes, s.Resolved, s.Failed, s.RenderItems, s.Anchors,
		s.TraverseTime, s.ResolveTime, ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(dst, msg, 8, 8)
}

package simview

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/grove"
)

// GrabSink receives grab decisions. *grove.Renderer implements it.
type GrabSink interface {
	StartGrab(grabber, grabbable grove.GlobalID)
	EndGrab(grabber, grabbable grove.GlobalID)
}

// GrabController turns a frame's registry into grab and release calls with
// a point-in-volume test: a grabber whose button goes down while its
// position is inside a handle grabs that handle's grabbable, and lets go
// when the button comes up.
type GrabController struct {
	OnGrab    func(grabber, grabbable grove.GlobalID)
	OnRelease func(grabber, grabbable grove.GlobalID)

	held       map[grove.GlobalID]grove.GlobalID // grabber -> grabbable
	wasPressed map[grove.GlobalID]bool
}

// NewGrabController returns a controller holding nothing.
func NewGrabController() *GrabController {
	return &GrabController{
		held:       make(map[grove.GlobalID]grove.GlobalID),
		wasPressed: make(map[grove.GlobalID]bool),
	}
}

// Holding returns what grabber currently holds.
func (c *GrabController) Holding(grabber grove.GlobalID) (grove.GlobalID, bool) {
	g, ok := c.held[grabber]
	return g, ok
}

// Update inspects the grabbers and handles reported for the frame that was
// just resolved.
func (c *GrabController) Update(reg *grove.FrameRegistry, sink GrabSink) {
	for _, gr := range reg.Grabbers {
		pressedNow := gr.Pressed && !c.wasPressed[gr.ID]
		c.wasPressed[gr.ID] = gr.Pressed

		if grabbable, ok := c.held[gr.ID]; ok {
			if !gr.Pressed {
				delete(c.held, gr.ID)
				sink.EndGrab(gr.ID, grabbable)
				if c.OnRelease != nil {
					c.OnRelease(gr.ID, grabbable)
				}
			}
			continue
		}
		if !pressedNow {
			continue
		}
		grabbable, ok := c.hit(reg, gr.UniverseFromGrabber.Col(3).Vec3())
		if !ok {
			continue
		}
		c.held[gr.ID] = grabbable
		sink.StartGrab(gr.ID, grabbable)
		if c.OnGrab != nil {
			c.OnGrab(gr.ID, grabbable)
		}
	}
}

// hit returns the first grabbable with a handle containing p that no other
// grabber holds.
func (c *GrabController) hit(reg *grove.FrameRegistry, p mgl64.Vec3) (grove.GlobalID, bool) {
	for _, h := range reg.Handles {
		if c.isHeld(h.Grabbable) {
			continue
		}
		if h.Volume.Contains(grove.WorldToLocal(h.UniverseFromHandle, p)) {
			return h.Grabbable, true
		}
	}
	return 0, false
}

func (c *GrabController) isHeld(grabbable grove.GlobalID) bool {
	for _, g := range c.held {
		if g == grabbable {
			return true
		}
	}
	return false
}

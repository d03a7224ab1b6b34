package grove

import "github.com/go-gl/mathgl/mgl64"

// PoseProvider supplies live tracked-device state. It is polled once at the
// top of every frame, before traversal.
type PoseProvider interface {
	// Poses returns universe-from-origin matrices keyed by origin path
	// (PathLeftHand, PathRightHand, PathHead, ...). Missing entries mean the
	// device is not tracked this frame.
	Poses() map[string]mgl64.Mat4

	// GrabPressed reports whether the grab button on hand is held.
	GrabPressed(hand Hand) bool
}

// HapticSink delivers haptic pulses to a hand device.
type HapticSink interface {
	TriggerHaptic(hand Hand, amplitude, frequency, duration float64)
}

// originTable is the per-frame snapshot of named reference frames and
// button state. It is read-only during traversal.
type originTable struct {
	origins map[string]mgl64.Mat4
	pressed [3]bool // indexed by Hand
}

// buildOriginTable merges fixed anchors with the provider's live poses. Live
// poses win on a path collision.
func buildOriginTable(fixed map[string]mgl64.Mat4, poses PoseProvider) *originTable {
	t := &originTable{origins: make(map[string]mgl64.Mat4, len(fixed)+3)}
	t.origins[PathStage] = identityTransform
	for path, m := range fixed {
		t.origins[path] = m
	}
	if poses == nil {
		return t
	}
	for path, m := range poses.Poses() {
		t.origins[path] = m
	}
	t.pressed[HandLeft] = poses.GrabPressed(HandLeft)
	t.pressed[HandRight] = poses.GrabPressed(HandRight)
	return t
}

func (t *originTable) lookup(path string) (mgl64.Mat4, bool) {
	m, ok := t.origins[path]
	return m, ok
}

func (t *originTable) grabPressed(h Hand) bool {
	if int(h) >= len(t.pressed) {
		return false
	}
	return t.pressed[h]
}

// StaticPoses is a PoseProvider with fixed values, useful for tests and
// headless tools.
type StaticPoses struct {
	Origins map[string]mgl64.Mat4
	Pressed map[Hand]bool
}

// Poses implements PoseProvider.
func (p *StaticPoses) Poses() map[string]mgl64.Mat4 { return p.Origins }

// GrabPressed implements PoseProvider.
func (p *StaticPoses) GrabPressed(h Hand) bool { return p.Pressed[h] }

// Set stores the pose for path.
func (p *StaticPoses) Set(path string, m mgl64.Mat4) {
	if p.Origins == nil {
		p.Origins = make(map[string]mgl64.Mat4)
	}
	p.Origins[path] = m
}

// Package grove resolves the world-space transforms of a shared scene built
// by many applications at once, one frame at a time.
//
// Each application contributes a [Root]: a flat list of [Node] values that
// refer to their children by local id. The [Renderer] walks every root once
// per frame, records a pending transform for each visited node and evaluates
// them lazily, parent first, so each transform is computed at most once no
// matter how often or in which order it is needed. Nodes from different
// applications are told apart by their [GlobalID].
//
// # Quick start
//
//	r := grove.NewRenderer(grove.Options{
//		Poses:         poses,
//		Models:        grove.NewModelCache(ctx, load, nil),
//		Collisions:    &grove.FrameRegistry{},
//	})
//	r.ApplyFrame(grove.Frame{Roots: []grove.Root{{
//		Owner: 1,
//		Nodes: []grove.Node{
//			grove.NewTransform(0, grove.Translation(0, 1, 0), 1),
//			grove.NewModel(1, "models/cube.glb"),
//		},
//	}}})
//	for {
//		list := r.ResolveFrame(dt)
//		// draw list
//	}
//
// # Origins and hands
//
// An Origin node re-roots its subtree at a named reference frame such as
// [PathRightHand] or [PathStage]. Poses come from a [PoseProvider] polled at
// the top of each frame. Nodes under a hand origin are assigned that hand,
// which is where [Renderer.SendHapticEvent] delivers pulses.
//
// # Grabbing
//
// Grabbable, Handle and Grabber nodes report their state to a
// [CollisionRegistry] as transforms resolve. When the host decides a grab
// happened it calls [Renderer.StartGrab]; from the next frame on the
// grabbable follows the grabber rigidly, even across applications, until
// [Renderer.EndGrab].
//
// # Models
//
// Model and Panel nodes resolve their assets through a [ModelProvider].
// [ModelCache] loads them on background goroutines and animates them with
// [gween] tweens when the model carries an [AnimationClip].
//
// # Errors
//
// Nothing a frame contains stops the frame. Unknown parents, missing volumes,
// cycles and stale grab requests are logged at debug level, counted in the
// absorbed_errors_total metric and skipped for that frame.
//
// [gween]: https://github.com/tanema/gween
package grove

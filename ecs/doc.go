// Package ecs provides ECS adapters for grove's interaction registries.
//
// The primary adapter is [NewDonburiRegistry], which publishes every panel,
// poker, handle and grabber reported during frame resolution into a [Donburi]
// world as typed events. Subscribe to [PanelEventType], [PokerEventType],
// [HandleEventType] or [GrabberEventType] in your ECS systems to receive them,
// and to [FrameResetEventType] to learn when a new frame begins.
//
// Usage:
//
//	reg := ecs.NewDonburiRegistry(world)
//	renderer.AddIntersectionRegistry(reg)
//	renderer.AddCollisionRegistry(reg)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

package grove

import "errors"

// Errors absorbed by the resolver. None of them stop a frame: the affected
// node or operation is skipped for the current frame and logged at debug
// level.
var (
	// ErrUnidentifiedContext is returned when a global id is requested while
	// no root is being traversed.
	ErrUnidentifiedContext = errors.New("grove: global id requested outside a traversal")

	// ErrUnknownNode is returned when resolving an id that was never
	// registered this frame, or whose parent was never registered.
	ErrUnknownNode = errors.New("grove: unknown node")

	// ErrStaleReference is returned when a grab or haptic request names a node
	// absent from the last resolved frame.
	ErrStaleReference = errors.New("grove: node absent from last frame")

	// ErrMissingProperty is returned when a Handle or Grabber has no volume.
	ErrMissingProperty = errors.New("grove: missing required property")

	// ErrDependencyCycle is returned when parent links loop back on
	// themselves, which grab anchors can cause.
	ErrDependencyCycle = errors.New("grove: transform dependency cycle")
)

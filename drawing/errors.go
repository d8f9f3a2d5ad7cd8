package drawing

import "errors"

var (
	// ErrLeased is returned by every mutating context operation while the
	// context is leased for raw access.
	ErrLeased = errors.New("drawing: context is leased")

	// ErrClosed is returned by operations on a closed context.
	ErrClosed = errors.New("drawing: context is closed")

	// ErrStackUnderflow is returned by a pop without a matching push, or
	// by a pop whose kind does not match the most recent push.
	ErrStackUnderflow = errors.New("drawing: pop without matching push")

	// ErrPaintAuxLimit is returned when a paint wrapper is asked to track
	// more auxiliary disposables than one draw call may create.
	ErrPaintAuxLimit = errors.New("drawing: too many auxiliary disposables for one paint")

	// ErrNoVisualBrushRenderer is returned when a visual brush is drawn on
	// a context that was created without a sub-scene renderer.
	ErrNoVisualBrushRenderer = errors.New("drawing: no visual brush renderer configured")

	// ErrNoBackingStore is returned when a context is created over a
	// surface that exposes no CPU pixels.
	ErrNoBackingStore = errors.New("drawing: surface has no CPU backing store")
)

// Package composition implements the retained-mode compositor: a scene
// graph of visuals mirrored between the UI thread and the render
// thread, a timer-driven render loop, dirty-region tracking, and hit
// testing.
//
// The UI thread builds and mutates [Visual] trees and records content
// into [DrawList]s. Changes never touch the render-side graph directly;
// [Compositor.Commit] snapshots them into a [Batch] that the render
// loop applies atomically at the start of a frame. The render side
// keeps its own mirror of the tree, rasterizes invalidated regions
// through a drawing.Context, and answers hit-test queries.
//
// A minimal session:
//
//	comp, err := composition.NewCompositor(composition.Options{
//	    Size: media.Size{Width: 800, Height: 600},
//	})
//	visual := comp.CreateVisual()
//	visual.SetSize(media.Size{Width: 100, Height: 100})
//	visual.SetDrawList(list)
//	comp.Root().AddChild(visual)
//	comp.Commit()
//	comp.Start()
package composition

// Package avalonia is the root of a retained-mode compositor and 2D drawing
// stack for UI toolkits.
//
// The root package holds only process-wide ambient state: the shared logger
// and the registered GPU context. The functionality lives in sub-packages:
//
//   - media: value types and declarative brushes, pens and geometries
//   - drawing: the immediate-mode drawing context over a surface
//   - surface: pixel surfaces, render targets, layers and DPI sizing
//   - composition: the compositor, dual scene graph, render loop, hit testing
//   - text: shaping, bidi segmentation and glyph rasterization
//
// # Quick start
//
//	comp, _ := composition.NewCompositor(composition.Options{})
//	target, _ := comp.CreateTarget(media.Size{Width: 800, Height: 600}, 96)
//
//	root := comp.CreateVisual()
//	b := composition.NewDrawListBuilder()
//	b.FillRectangle(media.NewSolidColorBrush(media.Red), media.NewRect(0, 0, 100, 100))
//	root.SetContent(b.Build())
//	target.SetRootVisual(root)
//
//	comp.Commit()
//	comp.Start()
//
// Scene construction happens on the UI thread through composition.Visual;
// committed changes cross to the render thread in ordered batches, where the
// compositor rasterizes invalidated regions through drawing.Context.
package avalonia

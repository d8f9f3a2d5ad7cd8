package media

// ImageBrush paints an image tiled, stretched and aligned into the target
// per the tile attributes. A nil Source resolves to a fully transparent
// paint rather than an error.
type ImageBrush struct {
	Source *Bitmap

	// SourceRect selects the portion of the image used as tile content.
	// The default covers the whole image.
	SourceRect RelativeRect

	// DestinationRect positions the tile inside the target bounds.
	// The default covers the whole target.
	DestinationRect RelativeRect

	TileMode   TileMode
	Stretch    Stretch
	AlignmentX AlignmentX
	AlignmentY AlignmentY

	Opacity         float64
	Transform       *Matrix
	TransformOrigin RelativePoint
}

// NewImageBrush creates a brush stretching the image over the whole target.
func NewImageBrush(source *Bitmap) *ImageBrush {
	return &ImageBrush{
		Source:          source,
		SourceRect:      RelativeFull,
		DestinationRect: RelativeFull,
		Stretch:         StretchFill,
		AlignmentX:      AlignmentXCenter,
		AlignmentY:      AlignmentYCenter,
		Opacity:         1,
	}
}

func (*ImageBrush) brushMarker() {}

// BrushOpacity implements Brush.
func (b *ImageBrush) BrushOpacity() float64 { return b.Opacity }

// BrushTransform implements Brush.
func (b *ImageBrush) BrushTransform() (*Matrix, RelativePoint) {
	return b.Transform, b.TransformOrigin
}

// VisualBrush paints an arbitrary sub-scene. The Visual field is an opaque
// reference understood by the sub-scene renderer collaborator supplied to
// the drawing context; drawing with a VisualBrush when no collaborator was
// supplied is an unsupported operation. A nil Visual resolves to a fully
// transparent paint.
type VisualBrush struct {
	Visual any

	SourceRect      RelativeRect
	DestinationRect RelativeRect

	TileMode   TileMode
	Stretch    Stretch
	AlignmentX AlignmentX
	AlignmentY AlignmentY

	Opacity         float64
	Transform       *Matrix
	TransformOrigin RelativePoint
}

// NewVisualBrush creates a brush rendering the visual over the whole target.
func NewVisualBrush(visual any) *VisualBrush {
	return &VisualBrush{
		Visual:          visual,
		SourceRect:      RelativeFull,
		DestinationRect: RelativeFull,
		Stretch:         StretchUniform,
		AlignmentX:      AlignmentXCenter,
		AlignmentY:      AlignmentYCenter,
		Opacity:         1,
	}
}

func (*VisualBrush) brushMarker() {}

// BrushOpacity implements Brush.
func (b *VisualBrush) BrushOpacity() float64 { return b.Opacity }

// BrushTransform implements Brush.
func (b *VisualBrush) BrushTransform() (*Matrix, RelativePoint) {
	return b.Transform, b.TransformOrigin
}

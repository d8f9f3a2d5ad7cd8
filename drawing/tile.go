package drawing

import (
	"github.com/0xDB6/Avalonia/media"
)

// tileLayout is the resolved geometry of one tile-brush render: where
// the content comes from, where one tile lands in the target, how the
// content is transformed into the intermediate surface, and how big
// that intermediate is.
type tileLayout struct {
	// SourceRect is the content region to draw, in content units.
	SourceRect media.Rect

	// DestRect is one tile in target logical units, relative to the
	// target origin.
	DestRect media.Rect

	// IntermediateSize is the logical size of the intermediate
	// surface: the whole target for TileModeNone, one tile otherwise.
	IntermediateSize media.Size

	// Transform maps content space into intermediate space.
	Transform media.Matrix

	// Clip bounds the content draw in intermediate space.
	Clip media.Rect

	// ScaleX, ScaleY and TranslateX, TranslateY are the stretch and
	// alignment terms of Transform, kept separate so the bitmap path
	// can prescale with a resampler instead of sampling on the fly.
	ScaleX, ScaleY         float64
	TranslateX, TranslateY float64
}

// computeTileLayout resolves the relative source/destination rects and
// stretch/alignment policy of a tile brush against a content and target
// size.
func computeTileLayout(
	mode media.TileMode,
	stretch media.Stretch,
	ax media.AlignmentX,
	ay media.AlignmentY,
	source, dest media.RelativeRect,
	contentSize, targetSize media.Size,
) tileLayout {
	sourceRect := source.ToAbsolute(media.RectFromSize(contentSize))
	destRect := dest.ToAbsolute(media.RectFromSize(targetSize))

	sx, sy := stretchScale(stretch, destRect.Size(), sourceRect.Size())
	tx, ty := alignTranslate(ax, ay, sourceRect.Size(), destRect.Size(), sx, sy)

	transform := media.Translate(tx, ty).
		Multiply(media.Scale(sx, sy)).
		Multiply(media.Translate(-sourceRect.X, -sourceRect.Y))

	var size media.Size
	var clip media.Rect
	if mode == media.TileModeNone {
		size = targetSize
		clip = destRect
		transform = media.Translate(destRect.X, destRect.Y).Multiply(transform)
	} else {
		size = destRect.Size()
		clip = media.RectFromSize(size)
	}

	return tileLayout{
		SourceRect:       sourceRect,
		DestRect:         destRect,
		IntermediateSize: size,
		Transform:        transform,
		Clip:             clip,
		ScaleX:           sx,
		ScaleY:           sy,
		TranslateX:       tx,
		TranslateY:       ty,
	}
}

// stretchScale returns the per-axis scale that fits content of size
// source into dest under the given stretch policy.
func stretchScale(stretch media.Stretch, dest, source media.Size) (sx, sy float64) {
	sx, sy = 1, 1
	if stretch == media.StretchNone || source.Width <= 0 || source.Height <= 0 {
		return sx, sy
	}
	sx = dest.Width / source.Width
	sy = dest.Height / source.Height
	switch stretch {
	case media.StretchUniform:
		if sx < sy {
			sy = sx
		} else {
			sx = sy
		}
	case media.StretchUniformToFill:
		if sx > sy {
			sy = sx
		} else {
			sx = sy
		}
	}
	return sx, sy
}

// alignTranslate positions scaled content of size source inside dest.
func alignTranslate(ax media.AlignmentX, ay media.AlignmentY, source, dest media.Size, sx, sy float64) (tx, ty float64) {
	w := source.Width * sx
	h := source.Height * sy
	switch ax {
	case media.AlignmentXCenter:
		tx = (dest.Width - w) / 2
	case media.AlignmentXRight:
		tx = dest.Width - w
	}
	switch ay {
	case media.AlignmentYCenter:
		ty = (dest.Height - h) / 2
	case media.AlignmentYBottom:
		ty = dest.Height - h
	}
	return tx, ty
}

package drawing

import (
	"math/rand"
	"sync"

	"github.com/0xDB6/Avalonia/internal/blend"
	"github.com/0xDB6/Avalonia/media"
	"github.com/0xDB6/Avalonia/surface"
)

// Acrylic noise weight. The texture is barely-there grain that keeps
// large tinted areas from banding.
const acrylicNoiseOpacity = 0.0225

const acrylicNoiseSize = 256

var (
	acrylicNoiseOnce sync.Once
	acrylicNoise     *surface.Pixmap
)

// acrylicNoisePixmap returns the process-wide noise tile, generating
// it on first use from a fixed seed so output is reproducible.
func acrylicNoisePixmap() *surface.Pixmap {
	acrylicNoiseOnce.Do(func() {
		pm := surface.NewPixmap(acrylicNoiseSize, acrylicNoiseSize)
		rng := rand.New(rand.NewSource(1))
		pix := pm.Pix()
		for i := 0; i < len(pix); i += 4 {
			v := uint8(rng.Intn(256))
			pix[i+0] = v
			pix[i+1] = v
			pix[i+2] = v
			pix[i+3] = 255
		}
		acrylicNoise = pm
	})
	return acrylicNoise
}

// acrylicNoiseShader samples the noise tile in device space so the
// grain stays screen-stable under transforms.
func acrylicNoiseShader() shader {
	return &imageShader{
		pixmap:  acrylicNoisePixmap(),
		tile:    media.NewRect(0, 0, acrylicNoiseSize, acrylicNoiseSize),
		spreadX: spreadRepeat,
		spreadY: spreadRepeat,
		inv:     media.Identity(),
		opacity: acrylicNoiseOpacity,
	}
}

// resolveAcrylic loads the acrylic material into the paint: effective
// tint, noise grain on top, and for the digger source a non-blending
// composite over the sampled backdrop.
func (c *Context) resolveAcrylic(p *Paint, b *media.AcrylicBrush) {
	m := b.Material
	tint := m.EffectiveTint()

	var background shader
	var opacity float64
	if m.BackgroundSource == media.AcrylicBackgroundDigger {
		// The digger replaces target content outright, so the ambient
		// opacity does not apply; coverage comes from the tint opacity.
		opacity = clamp01(b.Opacity) * clamp01(m.TintOpacity)
		p.blend = blend.Src
		if c.opts.background != nil {
			background = &samplerShader{fn: c.opts.background, opacity: 1}
		}
	} else {
		opacity = c.opacity * clamp01(b.Opacity) * clamp01(m.MaterialOpacity)
	}

	var sh shader = newSolidShader(tint, opacity)
	if background != nil {
		sh = &composedShader{background: background, foreground: sh}
	}
	p.shader = &composedShader{background: sh, foreground: acrylicNoiseShader()}
}

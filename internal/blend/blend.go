// Package blend implements Porter-Duff compositing and separable blend
// modes on premultiplied RGBA bytes.
package blend

// Mode identifies a compositing operation.
type Mode uint8

const (
	// Porter-Duff operators.
	Clear Mode = iota
	Src
	Dst
	SrcOver
	DstOver
	SrcIn
	DstIn
	SrcOut
	DstOut
	SrcAtop
	DstAtop
	Xor
	Plus
	Modulate

	// Separable blend modes.
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	Difference
	Exclusion
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Clear:
		return "clear"
	case Src:
		return "src"
	case Dst:
		return "dst"
	case SrcOver:
		return "src-over"
	case DstOver:
		return "dst-over"
	case SrcIn:
		return "src-in"
	case DstIn:
		return "dst-in"
	case SrcOut:
		return "src-out"
	case DstOut:
		return "dst-out"
	case SrcAtop:
		return "src-atop"
	case DstAtop:
		return "dst-atop"
	case Xor:
		return "xor"
	case Plus:
		return "plus"
	case Modulate:
		return "modulate"
	case Multiply:
		return "multiply"
	case Screen:
		return "screen"
	case Overlay:
		return "overlay"
	case Darken:
		return "darken"
	case Lighten:
		return "lighten"
	case Difference:
		return "difference"
	case Exclusion:
		return "exclusion"
	default:
		return "unknown"
	}
}

// Func blends one premultiplied source pixel with a premultiplied
// destination pixel. All channels are 0-255.
type Func func(sr, sg, sb, sa, dr, dg, db, da uint8) (r, g, b, a uint8)

// FuncFor returns the blend function for a mode. Unknown modes blend
// source-over.
func FuncFor(m Mode) Func {
	switch m {
	case Clear:
		return blendClear
	case Src:
		return blendSrc
	case Dst:
		return blendDst
	case SrcOver:
		return blendSrcOver
	case DstOver:
		return blendDstOver
	case SrcIn:
		return blendSrcIn
	case DstIn:
		return blendDstIn
	case SrcOut:
		return blendSrcOut
	case DstOut:
		return blendDstOut
	case SrcAtop:
		return blendSrcAtop
	case DstAtop:
		return blendDstAtop
	case Xor:
		return blendXor
	case Plus:
		return blendPlus
	case Modulate:
		return blendModulate
	case Multiply:
		return separable(chanMultiply)
	case Screen:
		return separable(chanScreen)
	case Overlay:
		return separable(chanOverlay)
	case Darken:
		return separable(chanDarken)
	case Lighten:
		return separable(chanLighten)
	case Difference:
		return separable(chanDifference)
	case Exclusion:
		return separable(chanExclusion)
	default:
		return blendSrcOver
	}
}

func blendClear(_, _, _, _, _, _, _, _ uint8) (uint8, uint8, uint8, uint8) {
	return 0, 0, 0, 0
}

func blendSrc(sr, sg, sb, sa, _, _, _, _ uint8) (uint8, uint8, uint8, uint8) {
	return sr, sg, sb, sa
}

func blendDst(_, _, _, _, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return dr, dg, db, da
}

// blendSrcOver is S + D*(1-Sa), the default compositing operator.
func blendSrcOver(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - sa
	return clampAdd(sr, mulDiv255(dr, inv)),
		clampAdd(sg, mulDiv255(dg, inv)),
		clampAdd(sb, mulDiv255(db, inv)),
		clampAdd(sa, mulDiv255(da, inv))
}

func blendDstOver(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - da
	return clampAdd(mulDiv255(sr, inv), dr),
		clampAdd(mulDiv255(sg, inv), dg),
		clampAdd(mulDiv255(sb, inv), db),
		clampAdd(mulDiv255(sa, inv), da)
}

func blendSrcIn(sr, sg, sb, sa, _, _, _, da uint8) (uint8, uint8, uint8, uint8) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

// blendDstIn is D*Sa; composited through a mask layer it multiplies
// destination alpha by mask alpha.
func blendDstIn(_, _, _, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

func blendSrcOut(sr, sg, sb, sa, _, _, _, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - da
	return mulDiv255(sr, inv), mulDiv255(sg, inv), mulDiv255(sb, inv), mulDiv255(sa, inv)
}

func blendDstOut(_, _, _, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - sa
	return mulDiv255(dr, inv), mulDiv255(dg, inv), mulDiv255(db, inv), mulDiv255(da, inv)
}

func blendSrcAtop(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - sa
	return clampAdd(mulDiv255(sr, da), mulDiv255(dr, inv)),
		clampAdd(mulDiv255(sg, da), mulDiv255(dg, inv)),
		clampAdd(mulDiv255(sb, da), mulDiv255(db, inv)),
		da
}

func blendDstAtop(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - da
	return clampAdd(mulDiv255(sr, inv), mulDiv255(dr, sa)),
		clampAdd(mulDiv255(sg, inv), mulDiv255(dg, sa)),
		clampAdd(mulDiv255(sb, inv), mulDiv255(db, sa)),
		sa
}

func blendXor(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	invDa := 255 - da
	invSa := 255 - sa
	return clampAdd(mulDiv255(sr, invDa), mulDiv255(dr, invSa)),
		clampAdd(mulDiv255(sg, invDa), mulDiv255(dg, invSa)),
		clampAdd(mulDiv255(sb, invDa), mulDiv255(db, invSa)),
		clampAdd(mulDiv255(sa, invDa), mulDiv255(da, invSa))
}

func blendPlus(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return clampAdd(sr, dr), clampAdd(sg, dg), clampAdd(sb, db), clampAdd(sa, da)
}

func blendModulate(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return mulDiv255(sr, dr), mulDiv255(sg, dg), mulDiv255(sb, db), mulDiv255(sa, da)
}

// separable lifts a per-channel function B on unmultiplied values into a
// full compositing operation:
//
//	out = S*(1-Da) + D*(1-Sa) + Sa*Da*B(Sc, Dc)
func separable(blendChan func(s, d uint8) uint8) Func {
	return func(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
		if sa == 0 {
			return dr, dg, db, da
		}
		if da == 0 {
			return sr, sg, sb, sa
		}

		sur := unpremul(sr, sa)
		sug := unpremul(sg, sa)
		sub := unpremul(sb, sa)
		dur := unpremul(dr, da)
		dug := unpremul(dg, da)
		dub := unpremul(db, da)

		invSa := 255 - sa
		invDa := 255 - da
		saDa := mulDiv255(sa, da)

		outA := clampAdd(sa, mulDiv255(da, invSa))
		outR := clampAdd(clampAdd(mulDiv255(sr, invDa), mulDiv255(dr, invSa)), mulDiv255(saDa, blendChan(sur, dur)))
		outG := clampAdd(clampAdd(mulDiv255(sg, invDa), mulDiv255(dg, invSa)), mulDiv255(saDa, blendChan(sug, dug)))
		outB := clampAdd(clampAdd(mulDiv255(sb, invDa), mulDiv255(db, invSa)), mulDiv255(saDa, blendChan(sub, dub)))
		return outR, outG, outB, outA
	}
}

func chanMultiply(s, d uint8) uint8 { return mulDiv255(s, d) }

func chanScreen(s, d uint8) uint8 {
	return 255 - mulDiv255(255-s, 255-d)
}

func chanOverlay(s, d uint8) uint8 {
	// HardLight with the layers swapped.
	if d <= 127 {
		return mulDiv255(2*d, s)
	}
	return 255 - mulDiv255(2*(255-d), 255-s)
}

func chanDarken(s, d uint8) uint8 {
	if s < d {
		return s
	}
	return d
}

func chanLighten(s, d uint8) uint8 {
	if s > d {
		return s
	}
	return d
}

func chanDifference(s, d uint8) uint8 {
	if s > d {
		return s - d
	}
	return d - s
}

func chanExclusion(s, d uint8) uint8 {
	// s + d - 2*s*d
	sum := uint16(s) + uint16(d)
	m := 2 * uint16(mulDiv255(s, d))
	if m >= sum {
		return 0
	}
	v := sum - m
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// mulDiv255 multiplies two bytes and divides by 255 with rounding.
func mulDiv255(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}

// clampAdd adds two bytes saturating at 255.
func clampAdd(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// unpremul converts a premultiplied channel back to straight alpha.
func unpremul(c, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	v := (uint16(c)*255 + uint16(a)/2) / uint16(a)
	if v > 255 {
		return 255
	}
	return uint8(v)
}

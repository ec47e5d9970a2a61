package layout

// Remap domains as fractions of the viewport size.
const (
	xDomainMin = 0.12
	xDomainMax = 0.88
	yDomainMin = 0.10
	yDomainMax = 0.90
)

// PointerOffset is the pointer position and the grid container size at the time of a move, in pixels.
type PointerOffset struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// RenderOffset is the translation applied to the grid, in pixels.
type RenderOffset struct {
	TranslateX float64
	TranslateY float64
}

// IsZero reports whether o is the origin.
func (o RenderOffset) IsZero() bool {
	return o.TranslateX == 0 && o.TranslateY == 0
}

// Remap maps v linearly from [inMin, inMax] to [outMin, outMax].
//
// Values outside the input range extrapolate unless clamp is set. A degenerate input
// range maps everything to outMin.
func Remap(v, inMin, inMax, outMin, outMax float64, clamp bool) float64 {
	if inMax == inMin {
		return outMin
	}
	t := (v - inMin) / (inMax - inMin)
	if clamp {
		t = min(max(t, 0), 1)
	}
	return outMin + t*(outMax-outMin)
}

// XDomain returns the pointer range that spans the full horizontal pan for vw.
func XDomain(vw float64) (lo, hi float64) {
	return xDomainMin * vw, xDomainMax * vw
}

// YDomain returns the pointer range that spans the full vertical pan for vh.
func YDomain(vh float64) (lo, hi float64) {
	return yDomainMin * vh, yDomainMax * vh
}

// Translate maps a pointer position to the grid translation for viewport vp.
//
// The x output range is [0, vw - width] and the y output range [0, vh - height]; both are
// negative when the grid is larger than the viewport, panning it toward the pointer.
func Translate(left, top float64, vp Viewport, width, height float64, clamp bool) RenderOffset {
	vw, vh := float64(vp.Width), float64(vp.Height)
	xlo, xhi := XDomain(vw)
	ylo, yhi := YDomain(vh)
	return RenderOffset{
		TranslateX: Remap(left, xlo, xhi, 0, vw-width, clamp),
		TranslateY: Remap(top, ylo, yhi, 0, vh-height, clamp),
	}
}

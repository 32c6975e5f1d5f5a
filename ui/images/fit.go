package images

import (
	"github.com/soocke/qr-measure-go/domain/geometry"
)

// FitMapping maps image pixel coordinates onto a view the image is fitted
// into, preserving aspect ratio and centring the image. Detection output is
// in image space; boxes and touches are in view space.
type FitMapping struct {
	Ratio   float64
	OffsetX float64
	OffsetY float64
}

// Fit computes the mapping for a w x h image shown in a maxW x maxH view.
// Degenerate sizes yield the identity mapping.
func Fit(w, h, maxW, maxH int) FitMapping {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return FitMapping{Ratio: 1}
	}
	ratioW := float64(maxW) / float64(w)
	ratioH := float64(maxH) / float64(h)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}
	return FitMapping{
		Ratio:   ratio,
		OffsetX: (float64(maxW) - float64(w)*ratio) / 2,
		OffsetY: (float64(maxH) - float64(h)*ratio) / 2,
	}
}

// ToView maps an image-space rectangle into view space.
func (m FitMapping) ToView(r geometry.Rect) geometry.Rect {
	return r.Scale(m.ratio(), m.ratio()).Offset(m.OffsetX, m.OffsetY)
}

// ToImage maps a view-space rectangle back into image space.
func (m FitMapping) ToImage(r geometry.Rect) geometry.Rect {
	inv := 1 / m.ratio()
	return r.Offset(-m.OffsetX, -m.OffsetY).Scale(inv, inv)
}

func (m FitMapping) ratio() float64 {
	if m.Ratio <= 0 {
		return 1
	}
	return m.Ratio
}

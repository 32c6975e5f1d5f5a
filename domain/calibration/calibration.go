// Package calibration derives a pixel-to-physical scale factor from a
// reference marker and converts pixel extents into physical dimensions.
//
// All functions are pure. The caller holds the resulting Calibration as the
// active one for the current image and discards it when a new image arrives.
package calibration

import (
	"fmt"
	"math"

	"github.com/soocke/qr-measure-go/domain/geometry"
)

// ComputeScaleFactor returns marker pixel perimeter over marker physical
// perimeter. The marker is square so the perimeters reduce to the widths.
// A ratio that overflows or underflows is rejected as ErrInvalidCalibration.
func ComputeScaleFactor(markerRect geometry.Rect, physicalWidth float64) (ScaleFactor, error) {
	if !(physicalWidth > 0) || math.IsInf(physicalWidth, 0) {
		return 0, fmt.Errorf("%w: marker physical width %v", ErrInvalidCalibration, physicalWidth)
	}
	pixelWidth := markerRect.Right() - markerRect.Left()
	if !(pixelWidth > 0) || math.IsInf(pixelWidth, 0) {
		return 0, fmt.Errorf("%w: %w: marker pixel width %v", ErrInvalidCalibration, ErrDegenerateGeometry, pixelWidth)
	}
	s := ScaleFactor(pixelWidth / physicalWidth)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: scale %v from %v px over %v", ErrInvalidCalibration, float64(s), pixelWidth, physicalWidth)
	}
	return s, nil
}

// ConvertToPhysical divides a pixel extent by s.
func ConvertToPhysical(w, h float64, s ScaleFactor, unit Unit) (PhysicalDimensions, error) {
	if !s.Valid() {
		return PhysicalDimensions{}, fmt.Errorf("%w: scale factor %v", ErrInvalidCalibration, float64(s))
	}
	if w < 0 || h < 0 || math.IsNaN(w) || math.IsNaN(h) {
		return PhysicalDimensions{}, fmt.Errorf("%w: pixel extent %vx%v", ErrDegenerateGeometry, w, h)
	}
	return PhysicalDimensions{
		Width:  w / float64(s),
		Height: h / float64(s),
		Unit:   unit.Or(DefaultUnit),
	}, nil
}

// Calibration is the active scale for one captured image.
type Calibration struct {
	Scale  ScaleFactor     `json:"scale"`
	Unit   Unit            `json:"unit"`
	Marker ReferenceMarker `json:"marker"`
}

// Calibrate computes the scale factor for marker.
func Calibrate(marker ReferenceMarker) (Calibration, error) {
	s, err := ComputeScaleFactor(marker.Bounds, marker.PhysicalWidth)
	if err != nil {
		return Calibration{}, err
	}
	return Calibration{Scale: s, Unit: marker.Unit.Or(DefaultUnit), Marker: marker}, nil
}

// Valid reports whether c may be used for conversion. The zero value is not.
func (c Calibration) Valid() bool { return c.Scale.Valid() }

// ToPhysical converts a pixel extent using c.
func (c Calibration) ToPhysical(w, h float64) (PhysicalDimensions, error) {
	return ConvertToPhysical(w, h, c.Scale, c.Unit)
}

// ToPixels is the inverse of ToPhysical.
func (c Calibration) ToPixels(d PhysicalDimensions) (w, h float64, err error) {
	if !c.Valid() {
		return 0, 0, fmt.Errorf("%w: scale factor %v", ErrInvalidCalibration, float64(c.Scale))
	}
	return d.Width * float64(c.Scale), d.Height * float64(c.Scale), nil
}

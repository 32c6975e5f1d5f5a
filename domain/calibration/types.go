package calibration

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/soocke/qr-measure-go/domain/geometry"
)

var (
	// ErrInvalidCalibration reports an unset, zero or negative scale factor or
	// physical reference size.
	ErrInvalidCalibration = errors.New("invalid calibration")
	// ErrDegenerateGeometry reports a rectangle with non-positive extent where
	// a positive one is needed.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// Unit tags a physical measurement.
type Unit string

// DefaultUnit applies when a marker payload names no unit.
const DefaultUnit Unit = "cm"

// Or returns u, or def when u is empty.
func (u Unit) Or(def Unit) Unit {
	if u == "" {
		return def
	}
	return u
}

// ReferenceMarker is a square reference object (a QR code) of known physical
// size and the pixel rectangle it occupies in the captured image.
type ReferenceMarker struct {
	PhysicalWidth  float64       `json:"physical_width"`
	PhysicalHeight float64       `json:"physical_height"`
	Unit           Unit          `json:"unit"`
	Bounds         geometry.Rect `json:"bounds"`
}

// ScaleFactor is pixels per physical unit.
type ScaleFactor float64

// Valid reports whether s may be divided by.
func (s ScaleFactor) Valid() bool {
	f := float64(s)
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// PhysicalDimensions is a width/height pair in physical units.
type PhysicalDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   Unit    `json:"unit"`
}

// Format renders "W x H unit" with the given number of decimals.
func (d PhysicalDimensions) Format(decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%s x %s %s",
		strconv.FormatFloat(d.Width, 'f', decimals, 64),
		strconv.FormatFloat(d.Height, 'f', decimals, 64),
		d.Unit.Or(DefaultUnit))
}

// String uses two decimals, e.g. "12.34 x 7.56 cm".
func (d PhysicalDimensions) String() string { return d.Format(2) }

// FormatPixels is the fallback label used when no calibration is active.
func FormatPixels(w, h float64) string {
	return fmt.Sprintf("%s x %s px",
		strconv.FormatFloat(w, 'f', 0, 64),
		strconv.FormatFloat(h, 'f', 0, 64))
}

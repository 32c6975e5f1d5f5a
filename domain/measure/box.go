// Package measure pairs screen boxes with labels showing their physical
// dimensions. Boxes are plain values; the caller owns the collection and the
// active calibration and threads them through these functions.
package measure

import (
	"github.com/google/uuid"

	"github.com/soocke/qr-measure-go/domain/calibration"
	"github.com/soocke/qr-measure-go/domain/geometry"
)

// Label is the text shown next to a box. Position always equals the box's
// top-left corner.
type Label struct {
	Text     string         `json:"text"`
	Position geometry.Point `json:"position"`
}

// Box is a user or detection placed rectangle in screen pixels.
type Box struct {
	ID     uuid.UUID     `json:"id"`
	Bounds geometry.Rect `json:"bounds"`
	// Title is the detection text, empty for manual boxes.
	Title string `json:"title,omitempty"`
	Label Label  `json:"label"`
}

// Detection is one object reported by the detection collaborator.
type Detection struct {
	Bounds     geometry.Rect `json:"bounds"`
	Text       string        `json:"text"`
	Confidence float64       `json:"confidence"`
}

// Options tune label formatting and drag behaviour.
type Options struct {
	Decimals int
	Resize   geometry.ResizePolicy
}

// DefaultOptions formats two decimals and clamps over-drags.
func DefaultOptions() Options {
	return Options{Decimals: 2, Resize: geometry.ResizeClamp}
}

// NewBox creates a box with a fresh ID and a synchronized label. cal may be
// nil when no calibration is active.
func NewBox(bounds geometry.Rect, title string, cal *calibration.Calibration, opts Options) Box {
	b := Box{ID: uuid.New(), Bounds: bounds, Title: title}
	return Relabel(b, cal, opts)
}

// FromDetection creates a box for a detection result.
func FromDetection(d Detection, cal *calibration.Calibration, opts Options) Box {
	return NewBox(d.Bounds, d.Text, cal, opts)
}

// Dimensions converts the box's current pixel extent. Inverted boxes are
// measured by their absolute extent.
func Dimensions(b Box, cal *calibration.Calibration) (calibration.PhysicalDimensions, error) {
	if cal == nil {
		return calibration.PhysicalDimensions{}, calibration.ErrInvalidCalibration
	}
	r := b.Bounds.Canon()
	return cal.ToPhysical(r.Width, r.Height)
}

// Relabel recomputes the label text and moves the label to the box. Without a
// usable calibration the label falls back to pixel dimensions.
func Relabel(b Box, cal *calibration.Calibration, opts Options) Box {
	r := b.Bounds.Canon()
	text := calibration.FormatPixels(r.Width, r.Height)
	if d, err := Dimensions(b, cal); err == nil {
		text = d.Format(opts.Decimals)
	}
	if b.Title != "" {
		text = b.Title + " " + text
	}
	b.Label = Label{Text: text, Position: b.Bounds.Position()}
	return b
}

// ApplyDrag moves the anchored edges of b by (dx, dy) and resynchronizes the
// label.
func ApplyDrag(b Box, anchor geometry.Anchor, dx, dy float64, cal *calibration.Calibration, opts Options) Box {
	b.Bounds = geometry.ApplyDragDelta(b.Bounds, anchor, dx, dy, opts.Resize)
	return Relabel(b, cal, opts)
}

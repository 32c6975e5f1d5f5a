// Package marker turns the output of the QR scanning collaborator into a
// reference marker, or says explicitly why it could not.
package marker

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/soocke/qr-measure-go/domain/calibration"
	"github.com/soocke/qr-measure-go/domain/geometry"
)

// Detection is what the QR scanner reports for one image.
type Detection struct {
	Found   bool          `json:"found"`
	Payload string        `json:"payload"`
	Bounds  geometry.Rect `json:"bounds"`
}

// Kind enumerates decode outcomes.
type Kind int

const (
	Absent Kind = iota
	Decoded
	Malformed
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Decoded:
		return "decoded"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Outcome is the result of Decode. Marker is only meaningful when Kind is
// Decoded; Err is only set when Kind is Malformed.
type Outcome struct {
	Kind   Kind
	Marker calibration.ReferenceMarker
	Err    error
}

// ErrMalformedPayload wraps every Malformed outcome's error.
var ErrMalformedPayload = errors.New("malformed marker payload")

// payload is the JSON form encoded in the QR code.
type payload struct {
	PhysicalWidth  *float64 `json:"physicalWidth"`
	PhysicalHeight *float64 `json:"physicalHeight"`
	Width          *float64 `json:"width"`
	Height         *float64 `json:"height"`
	Unit           string   `json:"unit"`
}

// compactRe matches "5x5cm", "5 x 5 cm", "2.5X2.5 in".
var compactRe = regexp.MustCompile(`^\s*([0-9]*\.?[0-9]+)\s*[xX]\s*([0-9]*\.?[0-9]+)\s*([A-Za-z]*)\s*$`)

// Decode parses det into an Outcome. defaultUnit applies when the payload
// names none.
func Decode(det Detection, defaultUnit calibration.Unit) Outcome {
	raw := strings.TrimSpace(det.Payload)
	if !det.Found || raw == "" {
		return Outcome{Kind: Absent}
	}
	w, h, unit, err := parsePayload(raw)
	if err != nil {
		return Outcome{Kind: Malformed, Err: fmt.Errorf("%w: %w", ErrMalformedPayload, err)}
	}
	if !(w > 0) || !(h > 0) {
		return Outcome{Kind: Malformed, Err: fmt.Errorf("%w: non-positive size %vx%v", ErrMalformedPayload, w, h)}
	}
	return Outcome{
		Kind: Decoded,
		Marker: calibration.ReferenceMarker{
			PhysicalWidth:  w,
			PhysicalHeight: h,
			Unit:           calibration.Unit(unit).Or(defaultUnit).Or(calibration.DefaultUnit),
			Bounds:         det.Bounds,
		},
	}
}

func parsePayload(raw string) (w, h float64, unit string, err error) {
	if strings.HasPrefix(raw, "{") {
		var p payload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return 0, 0, "", err
		}
		wp, hp := p.PhysicalWidth, p.PhysicalHeight
		if wp == nil {
			wp = p.Width
		}
		if hp == nil {
			hp = p.Height
		}
		if wp == nil || hp == nil {
			return 0, 0, "", errors.New("missing width or height")
		}
		return *wp, *hp, strings.TrimSpace(p.Unit), nil
	}
	m := compactRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0, "", fmt.Errorf("unrecognised payload %q", raw)
	}
	if w, err = strconv.ParseFloat(m[1], 64); err != nil {
		return 0, 0, "", err
	}
	if h, err = strconv.ParseFloat(m[2], 64); err != nil {
		return 0, 0, "", err
	}
	return w, h, m[3], nil
}

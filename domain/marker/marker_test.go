package marker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soocke/qr-measure-go/domain/calibration"
	"github.com/soocke/qr-measure-go/domain/geometry"
)

var bounds = geometry.RectFromLTRB(100, 100, 200, 200)

func TestDecode_Absent(t *testing.T) {
	require.Equal(t, Absent, Decode(Detection{}, "cm").Kind)
	require.Equal(t, Absent, Decode(Detection{Found: true, Payload: "   "}, "cm").Kind)
	// payload without a detection is still absent
	require.Equal(t, Absent, Decode(Detection{Payload: "5x5cm"}, "cm").Kind)
}

func TestDecode_JSON(t *testing.T) {
	out := Decode(Detection{Found: true, Payload: `{"physicalWidth":5,"physicalHeight":5,"unit":"cm"}`, Bounds: bounds}, "")
	require.Equal(t, Decoded, out.Kind)
	require.NoError(t, out.Err)
	require.Equal(t, calibration.ReferenceMarker{PhysicalWidth: 5, PhysicalHeight: 5, Unit: "cm", Bounds: bounds}, out.Marker)

	out = Decode(Detection{Found: true, Payload: `{"width":2,"height":3}`, Bounds: bounds}, "in")
	require.Equal(t, Decoded, out.Kind)
	require.Equal(t, calibration.Unit("in"), out.Marker.Unit)
	require.Equal(t, 3.0, out.Marker.PhysicalHeight)
}

func TestDecode_DefaultUnitFallsBackToCentimeters(t *testing.T) {
	out := Decode(Detection{Found: true, Payload: `{"physicalWidth":4,"physicalHeight":4}`}, "")
	require.Equal(t, Decoded, out.Kind)
	require.Equal(t, calibration.DefaultUnit, out.Marker.Unit)
}

func TestDecode_Compact(t *testing.T) {
	for payload, want := range map[string]calibration.ReferenceMarker{
		"5x5cm":         {PhysicalWidth: 5, PhysicalHeight: 5, Unit: "cm"},
		" 2.5 X 2.5 in": {PhysicalWidth: 2.5, PhysicalHeight: 2.5, Unit: "in"},
		"3x4":           {PhysicalWidth: 3, PhysicalHeight: 4, Unit: "mm"},
	} {
		out := Decode(Detection{Found: true, Payload: payload}, "mm")
		require.Equal(t, Decoded, out.Kind, payload)
		require.Equal(t, want, out.Marker, payload)
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, payload := range []string{
		"https://example.com",
		`{"physicalWidth":5`,
		`{"physicalWidth":5}`,
		`{"physicalWidth":0,"physicalHeight":5}`,
		`{"physicalWidth":-2,"physicalHeight":-2}`,
		"0x0cm",
		strings.Repeat("9", 400) + "x5cm",
	} {
		out := Decode(Detection{Found: true, Payload: payload}, "cm")
		require.Equal(t, Malformed, out.Kind, payload)
		require.ErrorIs(t, out.Err, ErrMalformedPayload, payload)
	}
}

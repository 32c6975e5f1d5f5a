package measure

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/soocke/qr-measure-go/domain/calibration"
	"github.com/soocke/qr-measure-go/domain/geometry"
)

func testCalibration(t *testing.T) *calibration.Calibration {
	t.Helper()
	cal, err := calibration.Calibrate(calibration.ReferenceMarker{
		PhysicalWidth:  5,
		PhysicalHeight: 5,
		Bounds:         geometry.RectFromLTRB(100, 100, 200, 200),
	})
	require.NoError(t, err)
	return &cal
}

func TestNewBox_LabelShowsPhysicalSize(t *testing.T) {
	b := NewBox(geometry.Rect{X: 10, Y: 20, Width: 200, Height: 150}, "", testCalibration(t), DefaultOptions())
	require.NotEqual(t, uuid.Nil, b.ID)
	require.Equal(t, "10.00 x 7.50 cm", b.Label.Text)
	require.Equal(t, geometry.Pt(10, 20), b.Label.Position)
}

func TestFromDetection_PrefixesTitle(t *testing.T) {
	b := FromDetection(Detection{Bounds: geometry.Rect{Width: 40, Height: 20}, Text: "cup 0.91"}, testCalibration(t), DefaultOptions())
	require.Equal(t, "cup 0.91 2.00 x 1.00 cm", b.Label.Text)
}

func TestRelabel_WithoutCalibrationFallsBackToPixels(t *testing.T) {
	b := NewBox(geometry.Rect{Width: 200, Height: 150}, "", nil, DefaultOptions())
	require.Equal(t, "200 x 150 px", b.Label.Text)

	zero := &calibration.Calibration{}
	b = Relabel(b, zero, DefaultOptions())
	require.Equal(t, "200 x 150 px", b.Label.Text)

	_, err := Dimensions(b, zero)
	require.ErrorIs(t, err, calibration.ErrInvalidCalibration)
}

func TestApplyDrag_LabelFollowsBox(t *testing.T) {
	cal := testCalibration(t)
	b := NewBox(geometry.Rect{X: 100, Y: 100, Width: 200, Height: 150}, "", cal, DefaultOptions())

	touch := geometry.Pt(120, 120)
	anchor := geometry.AnchorFor(b.Bounds, touch)
	require.Equal(t, geometry.AnchorLeftTop, anchor)

	b = ApplyDrag(b, anchor, -10, 0, cal, DefaultOptions())
	require.Equal(t, 210.0, b.Bounds.Width)
	require.Equal(t, 90.0, b.Bounds.X)
	require.Equal(t, b.Bounds.Position(), b.Label.Position)
	require.Equal(t, "10.50 x 7.50 cm", b.Label.Text)

	b = ApplyDrag(b, geometry.AnchorRightBottom, 20, 50, cal, DefaultOptions())
	require.Equal(t, geometry.Pt(90, 100), b.Label.Position)
	require.Equal(t, "11.50 x 10.00 cm", b.Label.Text)
}

func TestApplyDrag_InversionMeasuresAbsoluteExtent(t *testing.T) {
	cal := testCalibration(t)
	opts := Options{Decimals: 1, Resize: geometry.ResizeAllowInversion}
	b := NewBox(geometry.Rect{X: 0, Y: 0, Width: 20, Height: 20}, "", cal, opts)
	b = ApplyDrag(b, geometry.AnchorRightBottom, -60, 0, cal, opts)
	require.Equal(t, -40.0, b.Bounds.Width)
	require.Equal(t, "2.0 x 1.0 cm", b.Label.Text)
}

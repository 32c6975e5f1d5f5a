package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soocke/qr-measure-go/assets"
	"github.com/soocke/qr-measure-go/config"
	"github.com/soocke/qr-measure-go/domain/geometry"
	"github.com/soocke/qr-measure-go/domain/marker"
	"github.com/soocke/qr-measure-go/domain/measure"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func labels(boxes []measure.Box) []string {
	out := make([]string, len(boxes))
	for i, b := range boxes {
		out[i] = b.Label.Text
	}
	return out
}

func TestApp_RunSampleScene(t *testing.T) {
	data, err := assets.SampleScene()
	require.NoError(t, err)
	scene, err := ParseScene(data)
	require.NoError(t, err)

	var out bytes.Buffer
	boxes, err := NewApp(config.DefaultConfig(), discardLogger, &out).Run(context.Background(), scene)
	require.NoError(t, err)
	require.Equal(t, []string{
		"laptop 0.87 20.93 x 12.96 cm",
		"cup 0.64 7.50 x 10.00 cm",
		"10.46 x 5.00 cm",
	}, labels(boxes))
	for _, b := range boxes {
		require.Equal(t, b.Bounds.Position(), b.Label.Position)
	}
	require.True(t, strings.HasPrefix(out.String(), "Calibrated: 21.60 px/cm"))
	require.Contains(t, out.String(), "laptop 0.87 20.93 x 12.96 cm")
}

func TestApp_RunWithoutMarkerShowsPixels(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ViewWidth, cfg.ViewHeight = 100, 100
	scene := Scene{
		Image:      Size{Width: 100, Height: 100},
		Detections: []measure.Detection{{Bounds: geometry.Rect{X: 10, Y: 10, Width: 30, Height: 20}, Confidence: 1}},
		Gestures: []GestureScript{
			{Down: geometry.Pt(90, 90)}, // misses
			{Down: geometry.Pt(35, 25), Moves: []geometry.Point{geometry.Pt(45, 25)}},
		},
	}
	boxes, err := NewApp(cfg, discardLogger, nil).Run(context.Background(), scene)
	require.NoError(t, err)
	require.Equal(t, []string{"40 x 20 px"}, labels(boxes))
}

func TestApp_RunWithInversionPolicy(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ViewWidth, cfg.ViewHeight = 1000, 1000
	cfg.ClampResize = false
	scene := Scene{
		Image: Size{Width: 1000, Height: 1000},
		Marker: marker.Detection{
			Found:   true,
			Payload: "5x5cm",
			Bounds:  geometry.RectFromLTRB(100, 100, 200, 200),
		},
		ManualBoxes: []geometry.Rect{{X: 500, Y: 500, Width: 40, Height: 40}},
		Gestures: []GestureScript{
			{Down: geometry.Pt(530, 530), Moves: []geometry.Point{geometry.Pt(430, 530)}},
		},
	}
	boxes, err := NewApp(cfg, nil, nil).Run(context.Background(), scene)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	require.Equal(t, -60.0, boxes[0].Bounds.Width)
	require.Equal(t, "3.00 x 2.00 cm", boxes[0].Label.Text)
}

func TestApp_RunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// The scan may still land on the first tick; either outcome is fine as
	// long as Run returns.
	_, err := NewApp(nil, nil, nil).Run(ctx, Scene{Image: Size{Width: 10, Height: 10}})
	if err != nil {
		require.ErrorIs(t, err, context.Canceled)
	}
}

func TestParseScene_Errors(t *testing.T) {
	_, err := ParseScene([]byte(`{`))
	require.Error(t, err)
	_, err = ParseScene([]byte(`{"image":{"width":0,"height":10}}`))
	require.Error(t, err)
	_, err = LoadScene("does-not-exist.json")
	require.Error(t, err)
}

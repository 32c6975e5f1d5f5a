package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/soocke/qr-measure-go/domain/geometry"
	"github.com/soocke/qr-measure-go/domain/marker"
	"github.com/soocke/qr-measure-go/domain/measure"
	"github.com/soocke/qr-measure-go/ui/presenter"
)

// Size is a pixel size.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GestureScript is one recorded drag: a touch-down, the pointer positions
// that followed, and whether it ended in a cancel instead of a touch-up.
type GestureScript struct {
	Down   geometry.Point   `json:"touch_down"`
	Moves  []geometry.Point `json:"moves"`
	Cancel bool             `json:"cancel"`
}

// Scene is a recorded session: what the scanners reported for one captured
// image (image space) followed by user input (view space).
type Scene struct {
	Image       Size                `json:"image"`
	Marker      marker.Detection    `json:"marker"`
	Detections  []measure.Detection `json:"detections"`
	ManualBoxes []geometry.Rect     `json:"manual_boxes"`
	Gestures    []GestureScript     `json:"gestures"`
}

// ParseScene decodes scene JSON.
func ParseScene(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("parse scene: %w", err)
	}
	if s.Image.Width <= 0 || s.Image.Height <= 0 {
		return Scene{}, errors.New("parse scene: image size must be positive")
	}
	return s, nil
}

// LoadScene reads and decodes a scene file.
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, err
	}
	return ParseScene(data)
}

// sceneScanner replays a scene's recorded scanner output.
type sceneScanner struct{ scene Scene }

func (s sceneScanner) ScanMarker(presenter.Frame) (marker.Detection, error) {
	return s.scene.Marker, nil
}

func (s sceneScanner) DetectObjects(presenter.Frame) ([]measure.Detection, error) {
	out := make([]measure.Detection, len(s.scene.Detections))
	copy(out, s.scene.Detections)
	return out, nil
}

package assets

import (
	_ "embed"
	"fmt"
)

// SampleSceneJSON contains a scene with a 5 cm QR marker, three detections
// and two scripted drags.
//
//go:embed sample_scene.json
var SampleSceneJSON []byte

// SampleScene returns the embedded scene bytes.
func SampleScene() ([]byte, error) {
	if len(SampleSceneJSON) == 0 {
		return nil, fmt.Errorf("embedded sample_scene.json is empty")
	}
	return SampleSceneJSON, nil
}

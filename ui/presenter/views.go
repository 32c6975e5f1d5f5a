package presenter

import (
	"github.com/google/uuid"

	"github.com/soocke/qr-measure-go/config"
	"github.com/soocke/qr-measure-go/domain/calibration"
	"github.com/soocke/qr-measure-go/domain/geometry"
	"github.com/soocke/qr-measure-go/domain/measure"
)

// BoxView describes the UI surface that draws boxes and their labels.
type BoxView interface {
	ShowBox(b measure.Box)
	RemoveBox(id uuid.UUID)
	ClearBoxes()
}

// StatusView shows calibration and gesture status text.
type StatusView interface {
	SetStatus(string)
}

// CalibrationSource returns the active calibration or nil.
type CalibrationSource interface {
	Ptr() *calibration.Calibration
}

func activeCalibration(src CalibrationSource) *calibration.Calibration {
	if src == nil {
		return nil
	}
	return src.Ptr()
}

// OptionsFromConfig derives measurement options from cfg.
func OptionsFromConfig(cfg *config.Config) measure.Options {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	opts := measure.Options{Decimals: cfg.Decimals, Resize: geometry.ResizeAllowInversion}
	if cfg.ClampResize {
		opts.Resize = geometry.ResizeClamp
	}
	return opts
}

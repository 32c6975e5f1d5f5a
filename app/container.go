package app

import (
	"io"
	"log/slog"

	"github.com/soocke/qr-measure-go/config"
	"github.com/soocke/qr-measure-go/ui/model"
	"github.com/soocke/qr-measure-go/ui/presenter"
	"github.com/soocke/qr-measure-go/ui/view"
)

// AppContainer assembles models, presenters and the view.
type AppContainer struct {
	Config      *config.Config
	Logger      *slog.Logger
	Calibration *model.CalibrationModel
	Boxes       *model.BoxModel
	View        *view.ConsoleView

	// Presenters
	ScanPresenter    *presenter.ScanPresenter
	GesturePresenter *presenter.GesturePresenter
	BoxPresenter     *presenter.BoxPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. The scanners are the external
// QR and object detection collaborators.
func BuildContainer(cfg *config.Config, logger *slog.Logger, markers presenter.MarkerScanner, objects presenter.ObjectDetector, out io.Writer) *AppContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Calibration = &model.CalibrationModel{}
	c.Boxes = model.NewBoxModel()
	c.View = view.NewConsoleView(out, logger)
	c.ScanPresenter = presenter.NewScanPresenter(markers, objects, c.Boxes, c.Calibration, c.View, c.View, cfg, logger)
	// gesture status would overwrite the calibration line in the report
	c.GesturePresenter = presenter.NewGesturePresenter(c.Boxes, c.Calibration, c.View, nil, cfg, logger)
	c.BoxPresenter = presenter.NewBoxPresenter(c.Boxes, c.Calibration, c.View, cfg)
	c.Loop = presenter.NewLoop(c.ScanPresenter, nil)
	return c
}

// Close releases background workers.
func (c *AppContainer) Close() {
	if c == nil {
		return
	}
	c.ScanPresenter.Close()
}

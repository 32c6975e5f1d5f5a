package app

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/soocke/qr-measure-go/config"
	"github.com/soocke/qr-measure-go/domain/measure"
	"github.com/soocke/qr-measure-go/ui/presenter"
)

const (
	tick        = 10 * time.Millisecond
	scanTimeout = 5 * time.Second
)

// ErrScanTimeout is returned when the scan of a scene never completes.
var ErrScanTimeout = errors.New("scan did not complete")

// App replays scenes headlessly through the same presenters a UI would drive.
type App struct {
	config *config.Config
	logger *slog.Logger
	out    io.Writer
}

func NewApp(cfg *config.Config, logger *slog.Logger, out io.Writer) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &App{config: cfg, logger: logger, out: out}
}

// Run feeds the scene through scanning, manual placement and the recorded
// gestures, renders the result and returns the final boxes.
func (a *App) Run(ctx context.Context, s Scene) ([]measure.Box, error) {
	scanner := sceneScanner{scene: s}
	c := BuildContainer(a.config, a.logger, scanner, scanner, a.out)
	defer c.Close()

	const seq = 1
	c.ScanPresenter.Submit(presenter.Frame{
		Size:       image.Pt(s.Image.Width, s.Image.Height),
		CapturedAt: time.Now(),
		Sequence:   seq,
	})
	if err := a.waitForScan(ctx, c, seq); err != nil {
		return nil, err
	}

	for _, r := range s.ManualBoxes {
		c.BoxPresenter.AddManual(r)
	}

	for i, g := range s.Gestures {
		if !c.GesturePresenter.TouchDown(g.Down) {
			if a.logger != nil {
				a.logger.Warn("gesture missed every box", "gesture", i, "x", g.Down.X, "y", g.Down.Y)
			}
			continue
		}
		for _, pt := range g.Moves {
			if err := c.GesturePresenter.TouchMove(pt); err != nil {
				if a.logger != nil {
					a.logger.Warn("gesture move rejected", "gesture", i, "error", err)
				}
				break
			}
		}
		if g.Cancel {
			c.GesturePresenter.TouchCancel()
		} else {
			c.GesturePresenter.TouchUp()
		}
	}

	if err := c.View.Render(); err != nil {
		return nil, err
	}
	return c.Boxes.All(), nil
}

func (a *App) waitForScan(ctx context.Context, c *AppContainer, seq uint64) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	timeout := time.NewTimer(scanTimeout)
	defer timeout.Stop()
	for {
		c.Loop.Tick()
		if c.ScanPresenter.LastApplied() >= seq {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout.C:
			return ErrScanTimeout
		case <-ticker.C:
		}
	}
}

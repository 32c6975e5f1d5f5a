package presenter

import (
	"log/slog"
	"sync/atomic"

	"github.com/soocke/qr-measure-go/config"
	"github.com/soocke/qr-measure-go/domain/geometry"
	"github.com/soocke/qr-measure-go/domain/gesture"
	"github.com/soocke/qr-measure-go/domain/measure"
	"github.com/soocke/qr-measure-go/ui/model"
)

var ownerSeq atomic.Uint64

// GesturePresenter turns touch events into box drags. One presenter serves
// one pointer; it owns the box it drags until touch-up.
type GesturePresenter struct {
	boxes  *model.BoxModel
	cal    CalibrationSource
	view   BoxView
	status StatusView
	cfg    *config.Config
	logger *slog.Logger

	owner   uint64
	current gesture.Gesture
}

func NewGesturePresenter(boxes *model.BoxModel, cal CalibrationSource, view BoxView, status StatusView, cfg *config.Config, logger *slog.Logger) *GesturePresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &GesturePresenter{
		boxes:  boxes,
		cal:    cal,
		view:   view,
		status: status,
		cfg:    cfg,
		logger: logger,
		owner:  ownerSeq.Add(1),
	}
}

// State returns the current gesture phase.
func (p *GesturePresenter) State() gesture.State { return p.current.State }

// TouchDown starts a gesture on the topmost box under pt. It reports whether
// a box was grabbed.
func (p *GesturePresenter) TouchDown(pt geometry.Point) bool {
	if p == nil || p.boxes == nil {
		return false
	}
	if p.current.Active() {
		// a missed touch-up; finish the old gesture first
		p.finish()
	}
	b, ok := p.boxes.BoxAt(pt)
	if !ok {
		return false
	}
	if err := p.boxes.Acquire(b.ID, p.owner); err != nil {
		if p.logger != nil {
			p.logger.Debug("touch ignored", "box", b.ID, "error", err)
		}
		return false
	}
	p.current = gesture.Begin(b.ID, b.Bounds, pt)
	p.setStatus("Dragging " + p.current.Anchor.String())
	return true
}

// TouchMove applies the pointer movement since the last event to the
// grabbed box. Moves outside a gesture are ignored.
func (p *GesturePresenter) TouchMove(pt geometry.Point) error {
	if p == nil || !p.current.Active() {
		return nil
	}
	next, dx, dy, err := p.current.Move(pt)
	if err != nil {
		return err
	}
	p.current = next
	b, ok := p.boxes.Get(next.BoxID)
	if !ok {
		// removed while dragging
		p.current = p.current.End()
		return model.ErrBoxNotFound
	}
	b = measure.ApplyDrag(b, next.Anchor, dx, dy, activeCalibration(p.cal), OptionsFromConfig(p.cfg))
	if err := p.boxes.UpdateOwned(b, p.owner); err != nil {
		return err
	}
	if p.view != nil {
		p.view.ShowBox(b)
	}
	return nil
}

// TouchUp ends the gesture.
func (p *GesturePresenter) TouchUp() {
	if p == nil {
		return
	}
	p.finish()
}

// TouchCancel ends the gesture. The box keeps its geometry so far.
func (p *GesturePresenter) TouchCancel() {
	if p == nil {
		return
	}
	p.finish()
}

func (p *GesturePresenter) finish() {
	if !p.current.Active() {
		return
	}
	p.boxes.Release(p.current.BoxID, p.owner)
	if b, ok := p.boxes.Get(p.current.BoxID); ok && p.logger != nil {
		p.logger.Debug("gesture finished", "box", b.ID, "bounds", b.Bounds.String(), "label", b.Label.Text)
	}
	p.current = p.current.End()
	p.setStatus("")
}

func (p *GesturePresenter) setStatus(s string) {
	if p.status != nil {
		p.status.SetStatus(s)
	}
}

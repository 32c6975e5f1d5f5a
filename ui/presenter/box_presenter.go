package presenter

import (
	"github.com/google/uuid"

	"github.com/soocke/qr-measure-go/config"
	"github.com/soocke/qr-measure-go/domain/geometry"
	"github.com/soocke/qr-measure-go/domain/measure"
	"github.com/soocke/qr-measure-go/ui/model"
)

// BoxPresenter handles manual box placement and removal.
type BoxPresenter struct {
	boxes *model.BoxModel
	cal   CalibrationSource
	view  BoxView
	cfg   *config.Config
}

func NewBoxPresenter(boxes *model.BoxModel, cal CalibrationSource, view BoxView, cfg *config.Config) *BoxPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &BoxPresenter{boxes: boxes, cal: cal, view: view, cfg: cfg}
}

// AddManual places a new box at r (view space) and shows it.
func (p *BoxPresenter) AddManual(r geometry.Rect) measure.Box {
	b := measure.NewBox(r, "", activeCalibration(p.cal), OptionsFromConfig(p.cfg))
	p.boxes.Add(b)
	if p.view != nil {
		p.view.ShowBox(b)
	}
	return b
}

// Remove deletes a box.
func (p *BoxPresenter) Remove(id uuid.UUID) error {
	if err := p.boxes.Remove(id); err != nil {
		return err
	}
	if p.view != nil {
		p.view.RemoveBox(id)
	}
	return nil
}

// Relabel recomputes every label, for example after the decimals setting
// changed.
func (p *BoxPresenter) Relabel() {
	cal := activeCalibration(p.cal)
	opts := OptionsFromConfig(p.cfg)
	for _, b := range p.boxes.All() {
		b = measure.Relabel(b, cal, opts)
		if err := p.boxes.Update(b); err != nil {
			continue
		}
		if p.view != nil {
			p.view.ShowBox(b)
		}
	}
}

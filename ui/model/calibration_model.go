package model

import (
	"sync/atomic"

	"github.com/soocke/qr-measure-go/domain/calibration"
)

// CalibrationModel holds the active calibration for the current image. The
// zero value has none and is usable. Concurrency-safe because scan results
// and gesture handling may run on different goroutines.
type CalibrationModel struct {
	active atomic.Pointer[calibration.Calibration]
}

// Set stores c as active. An invalid calibration clears instead, so callers
// never read one that cannot be divided by.
func (m *CalibrationModel) Set(c calibration.Calibration) {
	if m == nil {
		return
	}
	if !c.Valid() {
		m.active.Store(nil)
		return
	}
	m.active.Store(&c)
}

// Clear drops the active calibration.
func (m *CalibrationModel) Clear() {
	if m == nil {
		return
	}
	m.active.Store(nil)
}

// Active returns the current calibration, if any.
func (m *CalibrationModel) Active() (calibration.Calibration, bool) {
	if m == nil {
		return calibration.Calibration{}, false
	}
	c := m.active.Load()
	if c == nil {
		return calibration.Calibration{}, false
	}
	return *c, true
}

// Ptr returns a copy of the active calibration or nil, the form the measure
// package takes.
func (m *CalibrationModel) Ptr() *calibration.Calibration {
	c, ok := m.Active()
	if !ok {
		return nil
	}
	return &c
}

package presenter

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/soocke/qr-measure-go/config"
	"github.com/soocke/qr-measure-go/domain/calibration"
	"github.com/soocke/qr-measure-go/domain/marker"
	"github.com/soocke/qr-measure-go/domain/measure"
	"github.com/soocke/qr-measure-go/ui/images"
	"github.com/soocke/qr-measure-go/ui/model"
)

// Frame is one captured image handed to the scanners.
type Frame struct {
	// Image may be nil when the scanners work from another source of pixels;
	// Size is always required.
	Image      image.Image
	Size       image.Point
	CapturedAt time.Time
	Sequence   uint64
}

// MarkerScanner finds and decodes the reference QR code in a frame. Bounds
// are reported in image pixels.
type MarkerScanner interface {
	ScanMarker(f Frame) (marker.Detection, error)
}

// ObjectDetector finds objects in a frame. Bounds are reported in image pixels.
type ObjectDetector interface {
	DetectObjects(f Frame) ([]measure.Detection, error)
}

type scanResult struct {
	sequence   uint64
	size       image.Point
	marker     marker.Detection
	detections []measure.Detection
	// err means the frame itself is unusable. detectErr only drops the
	// detected boxes, the marker still calibrates the new image.
	err       error
	detectErr error
	duration  time.Duration
}

// ScanPresenter runs marker and object scanning off the UI thread and applies
// the results on the UI thread via ProcessResults.
type ScanPresenter struct {
	Markers     MarkerScanner
	Objects     ObjectDetector
	Boxes       *model.BoxModel
	Calibration *model.CalibrationModel
	View        BoxView
	Status      StatusView
	Config      *config.Config
	logger      *slog.Logger

	workerOnce sync.Once
	closeOnce  sync.Once
	workCh     chan Frame
	resultCh   chan scanResult

	mu          sync.Mutex
	lastApplied uint64
}

// NewScanPresenter constructs a scan presenter.
func NewScanPresenter(markers MarkerScanner, objects ObjectDetector, boxes *model.BoxModel, cal *model.CalibrationModel, view BoxView, status StatusView, cfg *config.Config, logger *slog.Logger) *ScanPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &ScanPresenter{
		Markers:     markers,
		Objects:     objects,
		Boxes:       boxes,
		Calibration: cal,
		View:        view,
		Status:      status,
		Config:      cfg,
		logger:      logger,
		workCh:      make(chan Frame, 1),
		resultCh:    make(chan scanResult, 1),
	}
}

// Submit queues a frame for scanning. A frame still waiting in the queue is
// replaced, only the newest capture matters.
func (p *ScanPresenter) Submit(f Frame) {
	if p == nil {
		return
	}
	p.ensureWorker()
	select {
	case p.workCh <- f:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- f:
		default:
		}
	}
}

// ProcessResults applies any finished scan. It must be called from the
// thread that owns the models and views. Returns the number of results applied.
func (p *ScanPresenter) ProcessResults() int {
	if p == nil || p.resultCh == nil {
		return 0
	}
	applied := 0
	for {
		select {
		case res := <-p.resultCh:
			if p.handleResult(res) {
				applied++
			}
		default:
			return applied
		}
	}
}

// LastApplied returns the sequence of the most recently applied frame.
func (p *ScanPresenter) LastApplied() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastApplied
}

// Close stops the worker. Submit must not be called afterwards.
func (p *ScanPresenter) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() { close(p.workCh) })
}

func (p *ScanPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *ScanPresenter) runWorker() {
	for f := range p.workCh {
		res := p.scan(f)
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *ScanPresenter) scan(f Frame) (res scanResult) {
	res = scanResult{sequence: f.Sequence, size: f.Size}
	defer func() {
		if r := recover(); r != nil {
			res.err = fmt.Errorf("scan panic: %v", r)
			if p.logger != nil {
				p.logger.Error("scan panic", "error", r, "stack", string(debug.Stack()))
			}
		}
	}()
	if f.Size.X <= 0 || f.Size.Y <= 0 {
		res.err = errors.New("frame has no size")
		return res
	}
	start := time.Now()
	if p.Markers != nil {
		det, err := p.Markers.ScanMarker(f)
		if err != nil {
			// a failed scan is treated as no marker, objects are still useful
			if p.logger != nil {
				p.logger.Warn("marker scan failed", "sequence", f.Sequence, "error", err)
			}
			det = marker.Detection{}
		}
		res.marker = det
	}
	if p.Objects != nil {
		dets, err := p.Objects.DetectObjects(f)
		if err != nil {
			res.detectErr = fmt.Errorf("object detection: %w", err)
		} else {
			res.detections = dets
		}
	}
	res.duration = time.Since(start)
	return res
}

func (p *ScanPresenter) handleResult(res scanResult) bool {
	p.mu.Lock()
	stale := res.sequence != 0 && res.sequence < p.lastApplied
	p.mu.Unlock()
	if stale {
		if p.logger != nil {
			p.logger.Debug("dropping stale scan", "sequence", res.sequence)
		}
		return false
	}
	if res.err != nil {
		if p.logger != nil {
			p.logger.Error("scan", "sequence", res.sequence, "error", res.err)
		}
		return false
	}

	mapping := images.Fit(res.size.X, res.size.Y, p.Config.ViewWidth, p.Config.ViewHeight)
	p.applyMarker(res.marker, mapping)

	// new image, new boxes
	if p.Boxes != nil {
		p.Boxes.Reset()
	}
	if p.View != nil {
		p.View.ClearBoxes()
	}
	if res.detectErr != nil && p.logger != nil {
		p.logger.Error("scan", "sequence", res.sequence, "error", res.detectErr)
	}
	opts := OptionsFromConfig(p.Config)
	cal := p.Calibration.Ptr()
	for _, d := range res.detections {
		if d.Confidence < p.Config.MinConfidence {
			continue
		}
		d.Bounds = mapping.ToView(d.Bounds)
		b := measure.FromDetection(d, cal, opts)
		if p.Boxes != nil {
			p.Boxes.Add(b)
		}
		if p.View != nil {
			p.View.ShowBox(b)
		}
	}

	p.mu.Lock()
	p.lastApplied = res.sequence
	p.mu.Unlock()
	if p.logger != nil {
		p.logger.Info("scan applied", "sequence", res.sequence, "detections", len(res.detections), "duration", res.duration)
	}
	return true
}

// applyMarker decodes the marker and sets or clears the active calibration.
// The scale is computed in view pixels because boxes live in view space.
func (p *ScanPresenter) applyMarker(det marker.Detection, mapping images.FitMapping) {
	outcome := marker.Decode(det, calibration.Unit(p.Config.DefaultUnit))
	switch outcome.Kind {
	case marker.Decoded:
		m := outcome.Marker
		m.Bounds = mapping.ToView(m.Bounds)
		cal, err := calibration.Calibrate(m)
		if err != nil {
			p.Calibration.Clear()
			p.setStatus("Marker unusable, showing pixels")
			if p.logger != nil {
				p.logger.Warn("calibration rejected", "error", err)
			}
			return
		}
		p.Calibration.Set(cal)
		p.setStatus(fmt.Sprintf("Calibrated: %.2f px/%s", float64(cal.Scale), cal.Unit))
		if p.logger != nil {
			p.logger.Info("calibrated", "scale", float64(cal.Scale), "unit", string(cal.Unit))
		}
	case marker.Malformed:
		p.Calibration.Clear()
		p.setStatus("Marker unreadable, showing pixels")
		if p.logger != nil {
			p.logger.Warn("marker payload malformed", "error", outcome.Err)
		}
	default:
		p.Calibration.Clear()
		p.setStatus("No marker found, showing pixels")
	}
}

func (p *ScanPresenter) setStatus(s string) {
	if p.Status != nil {
		p.Status.SetStatus(s)
	}
}
